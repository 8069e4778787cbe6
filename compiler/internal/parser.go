package internal

import (
	"strconv"
	"tiny_compiler/ir"
)

type Parser struct {
	currentTokenPos int
	currentTokens   []*Token
}

// Parse is a shortcut of running a fresh Parser over tokens.
func Parse(tokens []*Token) (*IfStatement, error) {
	parser := &Parser{}
	return parser.Parse(tokens)
}

// Parse builds the ast of a whole program. Tokens left after the if statement are a syntax error.
func (parser *Parser) Parse(tokens []*Token) (*IfStatement, error) {
	parser.reset()
	parser.currentTokens = tokens
	return parser.parseProgram()
}

func (parser *Parser) reset() {
	parser.currentTokenPos, parser.currentTokens = 0, nil
}

func (parser *Parser) parseProgram() (*IfStatement, error) {
	stm, err := parser.parseIfStatement()
	if err != nil {
		return nil, err
	}
	_, err = parser.eat(EOFTP)
	if err != nil {
		return nil, err
	}
	return stm, nil
}

// if (condition) { block } [else { block }]
func (parser *Parser) parseIfStatement() (*IfStatement, error) {
	err := parser.eatAll(IfTP, LeftParentThesesTP)
	if err != nil {
		return nil, err
	}
	condition, err := parser.parseCondition()
	if err != nil {
		return nil, err
	}
	err = parser.eatAll(RightParentThesesTP, LeftBraceTP)
	if err != nil {
		return nil, err
	}
	thenBody, err := parser.parseBlock()
	if err != nil {
		return nil, err
	}
	_, err = parser.eat(RightBraceTP)
	if err != nil {
		return nil, err
	}
	stm := &IfStatement{Condition: condition, ThenBody: thenBody}
	if parser.currentToken().tp != ElseTP {
		return stm, nil
	}
	stm.ElseBody, err = parser.parseElseStatement()
	if err != nil {
		return nil, err
	}
	return stm, nil
}

func (parser *Parser) parseElseStatement() ([]*Assignment, error) {
	err := parser.eatAll(ElseTP, LeftBraceTP)
	if err != nil {
		return nil, err
	}
	body, err := parser.parseBlock()
	if err != nil {
		return nil, err
	}
	_, err = parser.eat(RightBraceTP)
	if err != nil {
		return nil, err
	}
	if body == nil {
		body = []*Assignment{}
	}
	return body, nil
}

// ID OP (ID | NUMBER)
func (parser *Parser) parseCondition() (*BinOp, error) {
	leftToken, err := parser.eat(IdentifierTP)
	if err != nil {
		return nil, err
	}
	opToken, err := parser.eat(OpTP)
	if err != nil {
		return nil, err
	}
	if !ir.IsComparison(opToken.content) {
		return nil, &SyntaxError{Expected: []TokenType{OpTP}, Actual: opToken.tp, Lexeme: opToken.content,
			Reason: "not a comparison operator"}
	}
	right, err := parser.parseOperand()
	if err != nil {
		return nil, err
	}
	return &BinOp{Left: &Variable{Name: leftToken.content}, Op: opToken.content, Right: right}, nil
}

// parseOperand parses ID or NUMBER, which is the right side of a condition or an assignment.
func (parser *Parser) parseOperand() (Node, error) {
	token, err := parser.eat(IdentifierTP, NumberTP)
	if err != nil {
		return nil, err
	}
	if token.tp == IdentifierTP {
		return &Variable{Name: token.content}, nil
	}
	value, err := strconv.Atoi(token.content)
	if err != nil {
		return nil, &SyntaxError{Expected: []TokenType{NumberTP}, Actual: token.tp, Lexeme: token.content,
			Reason: "integer literal out of range"}
	}
	return &Number{Value: value}, nil
}

// A block is a sequence of assignments, it can be empty.
func (parser *Parser) parseBlock() (stms []*Assignment, err error) {
	for parser.currentToken().tp == IdentifierTP {
		stm, err := parser.parseAssignment()
		if err != nil {
			return nil, err
		}
		stms = append(stms, stm)
	}
	return stms, nil
}

// ID = (ID | NUMBER) ;
func (parser *Parser) parseAssignment() (*Assignment, error) {
	nameToken, err := parser.eat(IdentifierTP)
	if err != nil {
		return nil, err
	}
	_, err = parser.eat(AssignTP)
	if err != nil {
		return nil, err
	}
	value, err := parser.parseOperand()
	if err != nil {
		return nil, err
	}
	_, err = parser.eat(SemiColonTP)
	if err != nil {
		return nil, err
	}
	return &Assignment{Name: nameToken.content, Value: value}, nil
}

// currentToken peeks the token under the cursor. Running past the end looks like EOF, so a
// token sequence without a trailing EOF still fails with a syntax error.
func (parser *Parser) currentToken() *Token {
	if parser.currentTokenPos >= len(parser.currentTokens) {
		return &Token{tp: EOFTP}
	}
	return parser.currentTokens[parser.currentTokenPos]
}

// eat consumes the current token if it's one of expectedTokenTPs. This is the only place
// the cursor moves forward.
func (parser *Parser) eat(expectedTokenTPs ...TokenType) (*Token, error) {
	token := parser.currentToken()
	for _, tp := range expectedTokenTPs {
		if token.tp == tp {
			parser.currentTokenPos++
			return token, nil
		}
	}
	return nil, makeSyntaxError(token, expectedTokenTPs...)
}

func (parser *Parser) eatAll(expectedTokenTPs ...TokenType) error {
	for _, tp := range expectedTokenTPs {
		_, err := parser.eat(tp)
		if err != nil {
			return err
		}
	}
	return nil
}
