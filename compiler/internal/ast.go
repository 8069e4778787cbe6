package internal

import (
	"strconv"
	"strings"
)

// In this file, we defined all ast of the condition language according to its grammar:
//
// program    := ifStatement EOF
// ifStatement := 'if' '(' condition ')' '{' block '}' [ 'else' '{' block '}' ]
// condition  := ID OP (ID | NUMBER)
// block      := assignment*
// assignment := ID '=' (ID | NUMBER) ';'
//
// A program is exactly one if statement, and the bodies only contain assignments.

// Node is one of *Number, *Variable, *BinOp, *Assignment and *IfStatement. The set is closed,
// the checker and the code generator switch over exactly these kinds.
type Node interface {
	String() string
	node()
}

type Number struct {
	Value int
}

type Variable struct {
	Name string
}

type BinOp struct {
	Left  Node
	Op    string
	Right Node
}

// Assignment value is a *Number or a *Variable.
type Assignment struct {
	Name  string
	Value Node
}

type IfStatement struct {
	Condition *BinOp
	ThenBody  []*Assignment
	// ElseBody is nil when there is no else branch, an empty else branch is an empty slice.
	ElseBody []*Assignment
}

func (*Number) node()      {}
func (*Variable) node()    {}
func (*BinOp) node()       {}
func (*Assignment) node()  {}
func (*IfStatement) node() {}

func (n *Number) String() string {
	return strconv.Itoa(n.Value)
}

func (v *Variable) String() string {
	return v.Name
}

func (b *BinOp) String() string {
	return b.Left.String() + " " + b.Op + " " + b.Right.String()
}

func (a *Assignment) String() string {
	if a.Value == nil {
		return a.Name + " = ;"
	}
	return a.Name + " = " + a.Value.String() + ";"
}

func (i *IfStatement) String() string {
	builder := &strings.Builder{}
	builder.WriteString("if (")
	if i.Condition != nil {
		builder.WriteString(i.Condition.String())
	}
	builder.WriteString(") {")
	writeBody(builder, i.ThenBody)
	builder.WriteString("}")
	if i.ElseBody != nil {
		builder.WriteString(" else {")
		writeBody(builder, i.ElseBody)
		builder.WriteString("}")
	}
	return builder.String()
}

func writeBody(builder *strings.Builder, body []*Assignment) {
	for _, stm := range body {
		if stm == nil {
			continue
		}
		builder.WriteString(" " + stm.String())
	}
	if len(body) > 0 {
		builder.WriteString(" ")
	}
}
