package assembler

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"tiny_compiler/ir"
)

// A simple assembler which links the accumulator code produced by the compiler. It drops the
// label markers and replaces every jump label by the address of the instruction following
// the marker. A label can be used before it's declared.
//
// For example:
//
//	LOAD x            0: LOAD x
//	JMP_FALSE l_1     1: JMP_FALSE 3
//	LOADI 1     =>    2: LOADI 1
//	l_1:              3: STORE y
//	STORE y
//
// A label marker at the end of the listing gets the address len(program), which means halt.

type Command struct {
	Instruction ir.Instruction
	// Target is the resolved address of a jump, -1 for other instructions.
	Target int
	// Line is the line of the instruction in the listing, starting from 1.
	Line int
}

func (command Command) String() string {
	if command.Instruction.Op.IsJump() {
		return fmt.Sprintf("%s %d", command.Instruction.Op, command.Target)
	}
	return command.Instruction.String()
}

// Program is a linked listing, the index of a command is its address.
type Program struct {
	Commands []Command
	Labels   map[string]int
}

// Lines renders the program with addresses in place of labels.
func (p *Program) Lines() []string {
	lines := make([]string, 0, len(p.Commands))
	for _, command := range p.Commands {
		lines = append(lines, command.String())
	}
	return lines
}

type Assembler struct {
	line                   int
	currentInstructionAddr int
	labelLocationMap       map[string]int
	symbolLocations        []symbolLocation
	commands               []Command
}

type symbolLocation struct {
	symbol string
	addr   int
	line   int
}

func New() *Assembler {
	return &Assembler{
		line:             1,
		labelLocationMap: map[string]int{},
	}
}

var ErrDuplicateLabel = errors.New("duplicate label")
var ErrUndefinedLabel = errors.New("undefined label")

// Assemble links instructions, the i-th instruction is reported as line i+1.
func (asm *Assembler) Assemble(instructions []ir.Instruction) (*Program, error) {
	asm.reset()
	for _, instruction := range instructions {
		err := asm.transformInstruction(instruction)
		if err != nil {
			return nil, err
		}
		asm.line++
	}
	return asm.link()
}

// AssembleText parses and links a text listing. Blank lines and // comments are skipped.
func (asm *Assembler) AssembleText(rd io.Reader) (*Program, error) {
	asm.reset()
	bfReader := bufio.NewReader(rd)
	for {
		line, err := bfReader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if trimmed, hasRemainCharacter := asm.trimLine(line); hasRemainCharacter {
			instruction, parseErr := ir.ParseLine(string(trimmed))
			if parseErr != nil {
				return nil, asm.makeSyntaxErr(parseErr)
			}
			transformErr := asm.transformInstruction(instruction)
			if transformErr != nil {
				return nil, transformErr
			}
		}
		if err == io.EOF {
			return asm.link()
		}
		asm.line++
	}
}

func (asm *Assembler) reset() {
	asm.line, asm.currentInstructionAddr = 1, 0
	asm.labelLocationMap = map[string]int{}
	asm.symbolLocations, asm.commands = nil, nil
}

// trimLine will remove space from line, also remove comments if it has, then return whether
// those line has other characters after trimmed.
func (asm *Assembler) trimLine(line []byte) ([]byte, bool) {
	line = bytes.TrimSpace(line)
	index := bytes.Index(line, []byte("//"))
	if index != -1 {
		line = line[:index]
		line = bytes.TrimSpace(line)
	}
	if len(line) == 0 {
		return nil, false
	}
	return line, true
}

func (asm *Assembler) transformInstruction(instruction ir.Instruction) error {
	if instruction.Op == ir.LabelOp {
		return asm.transformLabelCommand(instruction)
	}
	command := Command{Instruction: instruction, Target: -1, Line: asm.line}
	if instruction.Op.IsJump() {
		// The label may be declared later, we resolve it after all labels are known.
		asm.symbolLocations = append(asm.symbolLocations, symbolLocation{
			symbol: instruction.Operand,
			addr:   asm.currentInstructionAddr,
			line:   asm.line,
		})
	}
	asm.commands = append(asm.commands, command)
	asm.currentInstructionAddr++
	return nil
}

// transformLabelCommand remembers the address of the next instruction for label. A label
// marker is not an instruction, so the address doesn't move.
func (asm *Assembler) transformLabelCommand(instruction ir.Instruction) error {
	label := instruction.Operand
	if _, exist := asm.labelLocationMap[label]; exist {
		return asm.makeSyntaxErr(fmt.Errorf("%w %s", ErrDuplicateLabel, label))
	}
	asm.labelLocationMap[label] = asm.currentInstructionAddr
	return nil
}

// link resolves the jump targets once every label is declared.
func (asm *Assembler) link() (*Program, error) {
	for _, location := range asm.symbolLocations {
		addr, exist := asm.labelLocationMap[location.symbol]
		if !exist {
			return nil, asm.makeSyntaxErrAtSpecificLine(location.line, fmt.Errorf("%w %s", ErrUndefinedLabel, location.symbol))
		}
		asm.commands[location.addr].Target = addr
	}
	return &Program{Commands: asm.commands, Labels: asm.labelLocationMap}, nil
}

func (asm *Assembler) makeSyntaxErr(err error) error {
	return asm.makeSyntaxErrAtSpecificLine(asm.line, err)
}

func (asm *Assembler) makeSyntaxErrAtSpecificLine(line int, err error) error {
	return fmt.Errorf("syntax err at line %d: %w", line, err)
}
