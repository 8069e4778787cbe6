package internal

// checker walks an ast and makes sure every variable is assigned before it's read.
type checker struct {
	symbolTable SymbolTable
}

// Check validates ast against a copy of symbols and returns the copy with every assigned
// variable declared. symbols itself is never modified.
//
// Both branches of an if statement are checked one after another with the same table, and
// nothing is merged afterwards. So a variable assigned in the then branch counts as defined
// while checking the else branch.
func Check(ast Node, symbols SymbolTable) (SymbolTable, error) {
	c := &checker{symbolTable: symbols.Clone()}
	err := c.check(ast)
	if err != nil {
		return nil, err
	}
	return c.symbolTable, nil
}

func (c *checker) check(node Node) error {
	switch n := node.(type) {
	case *Number:
		return nil
	case *Variable:
		return c.checkVariable(n)
	case *BinOp:
		return c.checkBinOp(n)
	case *Assignment:
		return c.checkAssignment(n)
	case *IfStatement:
		return c.checkIfStatement(n)
	default:
		return &UnhandledNodeError{Phase: "semantic checker", Node: node}
	}
}

func (c *checker) checkVariable(variable *Variable) error {
	if _, ok := c.symbolTable.lookUp(variable.Name); !ok {
		return makeSemanticError(variable.Name)
	}
	return nil
}

func (c *checker) checkBinOp(binOp *BinOp) error {
	err := c.check(binOp.Left)
	if err != nil {
		return err
	}
	return c.check(binOp.Right)
}

// The value is checked before the name is declared, so `x = x;` needs x defined before.
func (c *checker) checkAssignment(assignment *Assignment) error {
	err := c.check(assignment.Value)
	if err != nil {
		return err
	}
	c.symbolTable.declare(assignment.Name)
	return nil
}

// A hand-built IfStatement can miss its condition, it's reported as a node without a rule.
func (c *checker) checkIfStatement(stm *IfStatement) error {
	if stm.Condition == nil {
		return &UnhandledNodeError{Phase: "semantic checker"}
	}
	err := c.check(stm.Condition)
	if err != nil {
		return err
	}
	err = c.checkStatements(stm.ThenBody)
	if err != nil {
		return err
	}
	return c.checkStatements(stm.ElseBody)
}

func (c *checker) checkStatements(stms []*Assignment) error {
	for _, stm := range stms {
		if stm == nil {
			return &UnhandledNodeError{Phase: "semantic checker"}
		}
		err := c.check(stm)
		if err != nil {
			return err
		}
	}
	return nil
}
