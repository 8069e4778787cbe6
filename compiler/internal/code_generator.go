package internal

import (
	"fmt"
	"tiny_compiler/ir"
)

// codeGenerator translates an ast into accumulator code. The counters belong to one
// generation, so generating the same ast twice gives the same instructions.
type codeGenerator struct {
	instructions []ir.Instruction
	tempCounter  int
	labelCounter int
}

// GenerateCode translates a checked ast into instructions.
func GenerateCode(ast Node) ([]ir.Instruction, error) {
	generator := &codeGenerator{}
	err := generator.generate(ast)
	if err != nil {
		return nil, err
	}
	return generator.instructions, nil
}

// Generate translates a checked ast into instruction text, one instruction per line.
func Generate(ast Node) ([]string, error) {
	instructions, err := GenerateCode(ast)
	if err != nil {
		return nil, err
	}
	return ir.Format(instructions), nil
}

func (generator *codeGenerator) generate(node Node) error {
	switch n := node.(type) {
	case *Number:
		generator.writeOutput(ir.LoadImmediate(n.Value))
	case *Variable:
		generator.writeOutput(ir.Load(n.Name))
	case *Assignment:
		return generator.generateAssignmentCode(n)
	case *BinOp:
		return generator.generateBinOpCode(n)
	case *IfStatement:
		return generator.generateIfStatementCode(n)
	default:
		return &UnhandledNodeError{Phase: "code generator", Node: node}
	}
	return nil
}

// The value ends in the accumulator, then it's stored to the variable.
func (generator *codeGenerator) generateAssignmentCode(assignment *Assignment) error {
	err := generator.generate(assignment.Value)
	if err != nil {
		return err
	}
	generator.writeOutput(ir.Store(assignment.Name))
	return nil
}

// The right operand is computed first and spilled to a temp, then the left operand is loaded
// and compared against the temp.
func (generator *codeGenerator) generateBinOpCode(binOp *BinOp) error {
	err := generator.generate(binOp.Right)
	if err != nil {
		return err
	}
	temp := generator.newTemp()
	generator.writeOutput(ir.Store(temp))
	err = generator.generate(binOp.Left)
	if err != nil {
		return err
	}
	if !ir.IsComparison(binOp.Op) {
		return &UnhandledNodeError{Phase: "code generator", Node: binOp}
	}
	generator.writeOutput(ir.Compare(temp, binOp.Op))
	return nil
}

// condition
// JMP_FALSE else_label_n
// then statements
// JMP end_label_n
// else_label_n:
// else statements
// end_label_n:
//
// The else label is written even without an else branch, so both jumps always have a target.
func (generator *codeGenerator) generateIfStatementCode(stm *IfStatement) error {
	if stm.Condition == nil {
		return &UnhandledNodeError{Phase: "code generator"}
	}
	elseLabel, endLabel := generator.newLabels()
	err := generator.generate(stm.Condition)
	if err != nil {
		return err
	}
	generator.writeOutput(ir.JumpIfFalse(elseLabel))
	err = generator.generateStatementsCode(stm.ThenBody)
	if err != nil {
		return err
	}
	generator.writeOutput(ir.Jump(endLabel))
	generator.writeOutput(ir.Label(elseLabel))
	err = generator.generateStatementsCode(stm.ElseBody)
	if err != nil {
		return err
	}
	generator.writeOutput(ir.Label(endLabel))
	return nil
}

func (generator *codeGenerator) generateStatementsCode(stms []*Assignment) error {
	for _, stm := range stms {
		if stm == nil {
			return &UnhandledNodeError{Phase: "code generator"}
		}
		err := generator.generate(stm)
		if err != nil {
			return err
		}
	}
	return nil
}

func (generator *codeGenerator) newTemp() string {
	generator.tempCounter++
	return fmt.Sprintf("temp_%d", generator.tempCounter)
}

// newLabels allocates the label pair of one if statement, they share the same number.
func (generator *codeGenerator) newLabels() (elseLabel string, endLabel string) {
	generator.labelCounter++
	return fmt.Sprintf("else_label_%d", generator.labelCounter), fmt.Sprintf("end_label_%d", generator.labelCounter)
}

func (generator *codeGenerator) writeOutput(instruction ir.Instruction) {
	generator.instructions = append(generator.instructions, instruction)
}
