package internal

import (
	"fmt"
	"strings"
)

// LexicalError is returned by the tokenizer at the first character no token rule matches.
type LexicalError struct {
	Char   rune
	Offset int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error: unexpected character %q", e.Char)
}

// SyntaxError is returned by the parser at the first token of an unexpected kind.
type SyntaxError struct {
	Expected []TokenType
	Actual   TokenType
	Lexeme   string
	// Reason is set when the token kind is right but its content is not acceptable.
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("syntax error near %s: %s", e.Lexeme, e.Reason)
	}
	expected := make([]string, 0, len(e.Expected))
	for _, tp := range e.Expected {
		expected = append(expected, tp.String())
	}
	return fmt.Sprintf("syntax error: expected %s, found %s", strings.Join(expected, " or "), e.Actual)
}

// SemanticError is returned by the checker at the first use of an undefined variable.
type SemanticError struct {
	Name string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error: variable '%s' is not defined", e.Name)
}

// UnhandledNodeError means a phase met a node kind it has no rule for. The grammar never
// produces such a node, so this is a bug in the compiler rather than in the input.
// Node is nil when a required child of a hand-built ast is missing.
type UnhandledNodeError struct {
	Phase string
	Node  Node
}

func (e *UnhandledNodeError) Error() string {
	return fmt.Sprintf("internal error: %s has no rule for node %T", e.Phase, e.Node)
}

func makeSyntaxError(token *Token, expected ...TokenType) error {
	return &SyntaxError{Expected: expected, Actual: token.tp, Lexeme: token.content}
}

func makeSemanticError(name string) error {
	return &SemanticError{Name: name}
}
