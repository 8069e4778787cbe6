package internal

import (
	"regexp"
	"tiny_compiler/util"
	"unicode/utf8"
)

// A simple Tokenizer for the condition language.

// The language has those elements:
// * KeyWord: if, else.
// * Number: a run of decimal digits.
// * Identifier: letters, digits, underscore, not starting with a digit.
// * Op: ==, !=, <=, >=, <, >.
// * Symbol: =, ;, (, ), {, }.
// * Whitespace: space, tab, carriage return and newline, they are never tokens.
// There is no comment.

type TokenType int

const (
	IfTP                TokenType = iota // if
	ElseTP                               // else
	NumberTP                             // 1010
	IdentifierTP                         // varA
	OpTP                                 // ==
	AssignTP                             // =
	SemiColonTP                          // ;
	LeftParentThesesTP                   // (
	RightParentThesesTP                  // )
	LeftBraceTP                          // {
	RightBraceTP                         // }
	EOFTP                                // end of input
)

var tokenTPNames = map[TokenType]string{
	IfTP:                "IF",
	ElseTP:              "ELSE",
	NumberTP:            "NUMBER",
	IdentifierTP:        "ID",
	OpTP:                "OP",
	AssignTP:            "ASSIGN",
	SemiColonTP:         "SEMI",
	LeftParentThesesTP:  "LPAREN",
	RightParentThesesTP: "RPAREN",
	LeftBraceTP:         "LBRACE",
	RightBraceTP:        "RBRACE",
	EOFTP:               "EOF",
}

func (tp TokenType) String() string {
	name, ok := tokenTPNames[tp]
	if !ok {
		return "UNKNOWN"
	}
	return name
}

type Token struct {
	content  string
	startPos int
	tp       TokenType
}

func NewToken(tp TokenType, content string) *Token {
	return &Token{tp: tp, content: content}
}

func (t *Token) Type() TokenType {
	return t.tp
}

// Content returns the matched text, it's empty for EOF.
func (t *Token) Content() string {
	return t.content
}

func (t *Token) Offset() int {
	return t.startPos
}

func (t *Token) String() string {
	if t.tp == EOFTP {
		return "Token(EOF)"
	}
	return "Token(" + t.tp.String() + ", '" + t.content + "')"
}

type tokenRule struct {
	tp      TokenType
	pattern *regexp.Regexp
	// wholeWord rules only match when not glued to a letter, digit or underscore on either side.
	wholeWord bool
	skip      bool
}

// tokenRules are tried in order at every position and the first match wins. Keywords come
// before identifiers and the two character operators come before the one character ones.
var tokenRules = []tokenRule{
	{tp: IfTP, pattern: regexp.MustCompile(`^if`), wholeWord: true},
	{tp: ElseTP, pattern: regexp.MustCompile(`^else`), wholeWord: true},
	{tp: NumberTP, pattern: regexp.MustCompile(`^[0-9]+`)},
	{tp: IdentifierTP, pattern: regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`)},
	{tp: OpTP, pattern: regexp.MustCompile(`^(?:==|!=|<=|>=|<|>)`)},
	{tp: AssignTP, pattern: regexp.MustCompile(`^=`)},
	{tp: SemiColonTP, pattern: regexp.MustCompile(`^;`)},
	{tp: LeftParentThesesTP, pattern: regexp.MustCompile(`^\(`)},
	{tp: RightParentThesesTP, pattern: regexp.MustCompile(`^\)`)},
	{tp: LeftBraceTP, pattern: regexp.MustCompile(`^\{`)},
	{tp: RightBraceTP, pattern: regexp.MustCompile(`^\}`)},
	{pattern: regexp.MustCompile(`^[ \t\r\n]+`), skip: true},
}

type Tokenizer struct {
	currentPos int
	source     string
	tokens     []*Token
}

// Tokenize is a shortcut of running a fresh Tokenizer over source.
func Tokenize(source string) ([]*Token, error) {
	tokenizer := &Tokenizer{}
	return tokenizer.Tokenize(source)
}

// Tokenize splits source into tokens from left to right and appends an EOF token. It stops at
// the first character no rule matches.
func (tokenizer *Tokenizer) Tokenize(source string) ([]*Token, error) {
	tokenizer.Reset()
	tokenizer.source = source
	for tokenizer.hasRemainCharacters() {
		token, err := tokenizer.getNextToken()
		if err != nil {
			return nil, err
		}
		if token != nil {
			tokenizer.tokens = append(tokenizer.tokens, token)
		}
	}
	tokenizer.tokens = append(tokenizer.tokens, &Token{tp: EOFTP, startPos: len(source)})
	return tokenizer.tokens, nil
}

// getNextToken consumes the next match at the current position. It returns nil token for
// skipped whitespace.
func (tokenizer *Tokenizer) getNextToken() (*Token, error) {
	remain := tokenizer.source[tokenizer.currentPos:]
	for _, rule := range tokenRules {
		loc := rule.pattern.FindStringIndex(remain)
		if loc == nil {
			continue
		}
		end := tokenizer.currentPos + loc[1]
		if rule.wholeWord && !tokenizer.isWordBoundary(tokenizer.currentPos, end) {
			continue
		}
		startPos := tokenizer.currentPos
		tokenizer.currentPos = end
		if rule.skip {
			return nil, nil
		}
		return &Token{
			content:  tokenizer.source[startPos:end],
			startPos: startPos,
			tp:       rule.tp,
		}, nil
	}
	return nil, tokenizer.makeError()
}

func (tokenizer *Tokenizer) isWordBoundary(start, end int) bool {
	if start > 0 && util.IsLetterOrUnderscoreOrNumber(tokenizer.source[start-1]) {
		return false
	}
	if end < len(tokenizer.source) && util.IsLetterOrUnderscoreOrNumber(tokenizer.source[end]) {
		return false
	}
	return true
}

func (tokenizer *Tokenizer) hasRemainCharacters() bool {
	return tokenizer.currentPos < len(tokenizer.source)
}

func (tokenizer *Tokenizer) makeError() error {
	char, _ := utf8.DecodeRuneInString(tokenizer.source[tokenizer.currentPos:])
	return &LexicalError{Char: char, Offset: tokenizer.currentPos}
}

func (tokenizer *Tokenizer) Reset() {
	tokenizer.currentPos, tokenizer.source = 0, ""
	tokenizer.tokens = nil
}
