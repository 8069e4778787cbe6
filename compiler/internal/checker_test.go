package internal

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCheck_Variable(t *testing.T) {
	_, err := Check(&Variable{Name: "x"}, SymbolTable{})
	var semanticErr *SemanticError
	assert.True(t, errors.As(err, &semanticErr))
	assert.Equal(t, "x", semanticErr.Name)
	assert.Equal(t, "semantic error: variable 'x' is not defined", err.Error())

	symbols, err := Check(&Variable{Name: "x"}, SymbolTable{"x": IntType})
	assert.Nil(t, err)
	assert.Equal(t, SymbolTable{"x": IntType}, symbols)
}

func TestCheck_NilSymbols(t *testing.T) {
	symbols, err := Check(&Number{Value: 1}, nil)
	assert.Nil(t, err)
	assert.Equal(t, SymbolTable{}, symbols)
}

func TestCheck_Assignment(t *testing.T) {
	testData := []SymbolTable{
		{},
		{"x": IntType},
		{"x": IntType, "y": IntType},
		{"a": "custom"},
	}
	for _, input := range testData {
		expected := input.Clone()
		expected["y"] = IntType
		symbols, err := Check(&Assignment{Name: "y", Value: &Number{Value: 5}}, input)
		assert.Nil(t, err)
		assert.Equal(t, expected, symbols)
	}
}

func TestCheck_AssignmentValueFirst(t *testing.T) {
	_, err := Check(&Assignment{Name: "y", Value: &Variable{Name: "y"}}, SymbolTable{})
	var semanticErr *SemanticError
	assert.True(t, errors.As(err, &semanticErr))
	assert.Equal(t, "y", semanticErr.Name)
}

func TestCheck_DoesNotModifyInput(t *testing.T) {
	input := SymbolTable{"x": IntType}
	ast, err := parseSource(t, "if (x > 10) { y = 5; } else { z = 0; }")
	assert.Nil(t, err)
	symbols, err := Check(ast, input)
	assert.Nil(t, err)
	assert.Equal(t, SymbolTable{"x": IntType}, input)
	assert.Equal(t, SymbolTable{"x": IntType, "y": IntType, "z": IntType}, symbols)

	ast, err = parseSource(t, "if (x > 10) { y = 5; } else { z = w; }")
	assert.Nil(t, err)
	symbols, err = Check(ast, input)
	assert.NotNil(t, err)
	assert.Nil(t, symbols)
	assert.Equal(t, SymbolTable{"x": IntType}, input)
}

func TestCheck_IfStatement(t *testing.T) {
	testData := []struct {
		content      string
		symbols      SymbolTable
		expectedName string
	}{
		{content: "if (x > 10) { y = 5; }", symbols: SymbolTable{}, expectedName: "x"},
		{content: "if (x > limit) { y = 5; }", symbols: SymbolTable{"x": IntType}, expectedName: "limit"},
		{content: "if (x > 1) { y = z; }", symbols: SymbolTable{"x": IntType}, expectedName: "z"},
		{content: "if (x > 1) { } else { y = z; }", symbols: SymbolTable{"x": IntType}, expectedName: "z"},
		// Pre-order: the condition is reported before the bodies.
		{content: "if (a > b) { c = d; }", symbols: SymbolTable{}, expectedName: "a"},
		{content: "if (x > 1) { c = d; } else { e = f; }", symbols: SymbolTable{"x": IntType}, expectedName: "d"},
	}
	for _, data := range testData {
		ast, err := parseSource(t, data.content)
		assert.Nil(t, err, data.content)
		_, err = Check(ast, data.symbols)
		var semanticErr *SemanticError
		assert.True(t, errors.As(err, &semanticErr), data.content)
		assert.Equal(t, data.expectedName, semanticErr.Name, data.content)
	}
}

// The branches are checked one after another with one table, so the else branch sees what
// the then branch assigned, and both assignments stay after the statement.
func TestCheck_BranchesShareTable(t *testing.T) {
	ast, err := parseSource(t, "if (x > 1) { y = 1; } else { z = y; }")
	assert.Nil(t, err)
	symbols, err := Check(ast, SymbolTable{"x": IntType})
	assert.Nil(t, err)
	assert.Equal(t, SymbolTable{"x": IntType, "y": IntType, "z": IntType}, symbols)

	ast, err = parseSource(t, "if (x > 1) { y = 1; z = y; } else { }")
	assert.Nil(t, err)
	_, err = Check(ast, SymbolTable{"x": IntType})
	assert.Nil(t, err)
}

func TestCheck_Redefinition(t *testing.T) {
	ast, err := parseSource(t, "if (x > 1) { x = 2; x = x; }")
	assert.Nil(t, err)
	symbols, err := Check(ast, SymbolTable{"x": IntType})
	assert.Nil(t, err)
	assert.Equal(t, SymbolTable{"x": IntType}, symbols)
}

type unknownNode struct{}

func (*unknownNode) node()          {}
func (*unknownNode) String() string { return "?" }

func TestCheck_UnhandledNode(t *testing.T) {
	_, err := Check(&unknownNode{}, SymbolTable{})
	var unhandled *UnhandledNodeError
	assert.True(t, errors.As(err, &unhandled))
	assert.Equal(t, "semantic checker", unhandled.Phase)

	_, err = Check(&Assignment{Name: "y", Value: &unknownNode{}}, SymbolTable{})
	assert.True(t, errors.As(err, &unhandled))
	assert.Equal(t, "internal error: semantic checker has no rule for node *internal.unknownNode", err.Error())
}

func TestCheck_MissingChild(t *testing.T) {
	testData := []*IfStatement{
		{},
		{ThenBody: []*Assignment{{Name: "y", Value: &Number{Value: 1}}}},
		{
			Condition: &BinOp{Left: &Variable{Name: "x"}, Op: ">", Right: &Number{Value: 1}},
			ThenBody:  []*Assignment{nil},
		},
		{
			Condition: &BinOp{Left: &Variable{Name: "x"}, Op: ">", Right: &Number{Value: 1}},
			ElseBody:  []*Assignment{{Name: "y", Value: nil}},
		},
	}
	for i, ast := range testData {
		var err error
		assert.NotPanics(t, func() { _, err = Check(ast, SymbolTable{"x": IntType}) }, i)
		var unhandled *UnhandledNodeError
		assert.True(t, errors.As(err, &unhandled), i)
		assert.Nil(t, unhandled.Node, i)
		assert.Equal(t, "internal error: semantic checker has no rule for node <nil>", err.Error(), i)
	}
	assert.Equal(t, "if () {}", (&IfStatement{}).String())
	assert.Equal(t, "if (x > 1) {} else { y = ; }", testData[3].String())
}
