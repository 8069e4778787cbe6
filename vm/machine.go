package vm

import (
	"errors"
	"fmt"
	"strconv"
	"tiny_compiler/assembler"
	"tiny_compiler/ir"
)

// A simple machine to run a linked program of accumulator code.

// The machine has three registers and a memory:
// * acc: the accumulator, every instruction reads or writes it.
// * flag: the result of the last CMP.
// * pc: the address of the next instruction, the program halts once pc leaves the program.
// * memory: variables and temporaries by name.

// DefaultStepLimit is far above what a program without loops can execute.
const DefaultStepLimit = 1 << 16

var ErrStepLimit = errors.New("step limit exceeded")

type Machine struct {
	program   *assembler.Program
	memory    map[string]int
	acc       int
	flag      bool
	pc        int
	steps     int
	stepLimit int
}

// NewMachine prepares program to run over a copy of memory.
func NewMachine(program *assembler.Program, memory map[string]int) *Machine {
	m := &Machine{
		program:   program,
		memory:    map[string]int{},
		stepLimit: DefaultStepLimit,
	}
	for name, value := range memory {
		m.memory[name] = value
	}
	return m
}

func (m *Machine) SetStepLimit(limit int) {
	m.stepLimit = limit
}

// Run executes until the program halts or an instruction fails.
func (m *Machine) Run() error {
	for m.pc >= 0 && m.pc < len(m.program.Commands) {
		if m.steps >= m.stepLimit {
			return m.makeError(m.program.Commands[m.pc], ErrStepLimit)
		}
		m.steps++
		err := m.step(m.program.Commands[m.pc])
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) step(command assembler.Command) (err error) {
	instruction := command.Instruction
	next := m.pc + 1
	switch instruction.Op {
	case ir.LoadImmediateOp:
		m.acc, err = strconv.Atoi(instruction.Operand)
	case ir.LoadOp:
		m.acc, err = m.read(instruction.Operand)
	case ir.StoreOp:
		m.memory[instruction.Operand] = m.acc
	case ir.CompareOp:
		err = m.compare(instruction)
	case ir.JumpIfFalseOp:
		if !m.flag {
			next = command.Target
		}
	case ir.JumpOp:
		next = command.Target
	default:
		err = fmt.Errorf("unknown instruction %s", instruction.Op)
	}
	if err != nil {
		return m.makeError(command, err)
	}
	m.pc = next
	return nil
}

func (m *Machine) read(name string) (int, error) {
	value, ok := m.memory[name]
	if !ok {
		return 0, fmt.Errorf("read of unset variable %s", name)
	}
	return value, nil
}

// compare sets flag to acc <cond> operand.
func (m *Machine) compare(instruction ir.Instruction) error {
	right, err := m.read(instruction.Operand)
	if err != nil {
		return err
	}
	left := m.acc
	switch instruction.Cond {
	case ">":
		m.flag = left > right
	case "<":
		m.flag = left < right
	case "==":
		m.flag = left == right
	case "!=":
		m.flag = left != right
	case ">=":
		m.flag = left >= right
	case "<=":
		m.flag = left <= right
	case "":
		return errors.New("comparison operator is unknown, the program was linked from text")
	default:
		return fmt.Errorf("unknown comparison operator %s", instruction.Cond)
	}
	return nil
}

func (m *Machine) makeError(command assembler.Command, err error) error {
	return fmt.Errorf("vm: error at address %d (%s): %w", m.pc, command.Instruction, err)
}

// Memory returns a copy of the memory.
func (m *Machine) Memory() map[string]int {
	ret := make(map[string]int, len(m.memory))
	for name, value := range m.memory {
		ret[name] = value
	}
	return ret
}

func (m *Machine) Acc() int {
	return m.acc
}

func (m *Machine) Steps() int {
	return m.steps
}
