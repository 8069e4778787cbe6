package ir

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"tiny_compiler/util"
)

// The instruction set of a single accumulator machine. Every value computation leaves its
// result in the accumulator, the operand of an instruction is a constant, a variable, a
// temporary or a label.
// * LOADI 10: acc = 10
// * LOAD x: acc = x
// * STORE x: x = acc
// * CMP t: flag = acc <cond> t
// * JMP_FALSE l: jump to l if flag is false
// * JMP l: jump to l
// * l: a label marker, it's not an executable instruction.

type Opcode int

const (
	LoadImmediateOp Opcode = iota // LOADI
	LoadOp                        // LOAD
	StoreOp                       // STORE
	CompareOp                     // CMP
	JumpIfFalseOp                 // JMP_FALSE
	JumpOp                        // JMP
	LabelOp                       // label:
)

var opcodeMnemonicMap = map[Opcode]string{
	LoadImmediateOp: "LOADI",
	LoadOp:          "LOAD",
	StoreOp:         "STORE",
	CompareOp:       "CMP",
	JumpIfFalseOp:   "JMP_FALSE",
	JumpOp:          "JMP",
}

var mnemonicOpcodeMap = map[string]Opcode{
	"LOADI":     LoadImmediateOp,
	"LOAD":      LoadOp,
	"STORE":     StoreOp,
	"CMP":       CompareOp,
	"JMP_FALSE": JumpIfFalseOp,
	"JMP":       JumpOp,
}

func (op Opcode) String() string {
	if op == LabelOp {
		return "LABEL"
	}
	mnemonic, ok := opcodeMnemonicMap[op]
	if !ok {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
	return mnemonic
}

// IsJump reports whether the operand of op is a label.
func (op Opcode) IsJump() bool {
	return op == JumpIfFalseOp || op == JumpOp
}

// Comparisons are the operators a CMP instruction can carry in its Cond.
var Comparisons = []string{">", "<", "==", "!=", ">=", "<="}

func IsComparison(op string) bool {
	for _, c := range Comparisons {
		if c == op {
			return true
		}
	}
	return false
}

type Instruction struct {
	Op      Opcode
	Operand string
	// Cond is the comparison operator of a CMP instruction. It is not part of the text form,
	// the text form of every comparison is the same `CMP <temp>`.
	Cond string
}

func LoadImmediate(value int) Instruction {
	return Instruction{Op: LoadImmediateOp, Operand: strconv.Itoa(value)}
}

func Load(name string) Instruction {
	return Instruction{Op: LoadOp, Operand: name}
}

func Store(name string) Instruction {
	return Instruction{Op: StoreOp, Operand: name}
}

func Compare(temp string, cond string) Instruction {
	return Instruction{Op: CompareOp, Operand: temp, Cond: cond}
}

func JumpIfFalse(label string) Instruction {
	return Instruction{Op: JumpIfFalseOp, Operand: label}
}

func Jump(label string) Instruction {
	return Instruction{Op: JumpOp, Operand: label}
}

func Label(name string) Instruction {
	return Instruction{Op: LabelOp, Operand: name}
}

func (i Instruction) String() string {
	if i.Op == LabelOp {
		return i.Operand + ":"
	}
	return i.Op.String() + " " + i.Operand
}

// Format renders instructions one per line.
func Format(instructions []Instruction) []string {
	lines := make([]string, 0, len(instructions))
	for _, instruction := range instructions {
		lines = append(lines, instruction.String())
	}
	return lines
}

var ErrEmptyLine = errors.New("empty instruction line")

// ParseLine parses the text form of a single instruction. A CMP may carry its comparison
// operator as a third field, `CMP temp_1 >`, otherwise the Cond of the parsed CMP is empty.
func ParseLine(line string) (Instruction, error) {
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return Instruction{}, ErrEmptyLine
	}
	if strings.HasSuffix(line, ":") {
		label := strings.TrimSuffix(line, ":")
		if !util.IsIdentifier(label) {
			return Instruction{}, fmt.Errorf("wrong label format: %q", line)
		}
		return Label(label), nil
	}
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 3 {
		return Instruction{}, fmt.Errorf("wrong instruction format: %q", line)
	}
	op, ok := mnemonicOpcodeMap[fields[0]]
	if !ok {
		return Instruction{}, fmt.Errorf("unknown mnemonic %s in %q", fields[0], line)
	}
	operand, cond := fields[1], ""
	if len(fields) == 3 {
		if op != CompareOp || !IsComparison(fields[2]) {
			return Instruction{}, fmt.Errorf("wrong instruction format: %q", line)
		}
		cond = fields[2]
	}
	switch op {
	case LoadImmediateOp:
		if !util.IsInteger(operand) {
			return Instruction{}, fmt.Errorf("wrong integer operand in %q", line)
		}
	default:
		if !util.IsIdentifier(operand) {
			return Instruction{}, fmt.Errorf("wrong operand in %q", line)
		}
	}
	return Instruction{Op: op, Operand: operand, Cond: cond}, nil
}
