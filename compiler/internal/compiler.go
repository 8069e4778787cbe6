package internal

import "tiny_compiler/ir"

// Result is everything the four phases produce for one source.
type Result struct {
	Tokens       []*Token
	AST          *IfStatement
	Symbols      SymbolTable
	Instructions []ir.Instruction
}

// Lines returns the instruction text.
func (r *Result) Lines() []string {
	return ir.Format(r.Instructions)
}

// Phase names one step of the pipeline.
type Phase int

const (
	PhaseLexing Phase = iota
	PhaseParsing
	PhaseChecking
	PhaseGenerating
)

func (p Phase) String() string {
	switch p {
	case PhaseLexing:
		return "lexical analysis"
	case PhaseParsing:
		return "syntax analysis"
	case PhaseChecking:
		return "semantic analysis"
	case PhaseGenerating:
		return "code generation"
	}
	return "unknown phase"
}

// Compile runs tokenize, parse, check and generate on source. symbols seeds the checker and
// is left untouched, the updated table is in the result. The error of the failing phase is
// returned as it is.
func Compile(source string, symbols SymbolTable) (*Result, error) {
	result, _, err := compile(source, symbols, nil)
	return result, err
}

// compile reports each finished phase to onPhase and returns the phase that failed.
func compile(source string, symbols SymbolTable, onPhase func(Phase, *Result)) (*Result, Phase, error) {
	result := &Result{}
	notify := func(phase Phase) {
		if onPhase != nil {
			onPhase(phase, result)
		}
	}
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, PhaseLexing, err
	}
	result.Tokens = tokens
	notify(PhaseLexing)

	ast, err := Parse(tokens)
	if err != nil {
		return nil, PhaseParsing, err
	}
	result.AST = ast
	notify(PhaseParsing)

	updated, err := Check(ast, symbols)
	if err != nil {
		return nil, PhaseChecking, err
	}
	result.Symbols = updated
	notify(PhaseChecking)

	instructions, err := GenerateCode(ast)
	if err != nil {
		return nil, PhaseGenerating, err
	}
	result.Instructions = instructions
	notify(PhaseGenerating)
	return result, PhaseGenerating, nil
}
