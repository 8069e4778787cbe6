package internal

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"tiny_compiler/util"
)

var ErrEmptySource = errors.New("no code provided")

// Session compiles one source after another and keeps the symbol table between them, so a
// variable assigned by one program can be read by the next.
// A Session is not safe for concurrent use.
type Session struct {
	symbolTable SymbolTable
	listener    Listener
	history     HistoryStore
	logger      *slog.Logger
}

type SessionOption func(*Session)

// WithSymbols pre-declares names.
func WithSymbols(names ...string) SessionOption {
	return func(s *Session) {
		s.Define(names...)
	}
}

func WithListener(listener Listener) SessionOption {
	return func(s *Session) {
		s.listener = listener
	}
}

func WithHistory(history HistoryStore) SessionOption {
	return func(s *Session) {
		s.history = history
	}
}

func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		symbolTable: SymbolTable{},
		history:     NewMemoryHistory(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compile runs the pipeline with the session symbols. The symbols are updated only when the
// whole compilation succeeds. Every attempt is added to the history.
func (s *Session) Compile(ctx context.Context, source string) (*Result, error) {
	entry := newEntry(source)
	if strings.TrimSpace(source) == "" {
		s.record(ctx, entry, StatusFailed, ErrEmptySource)
		return nil, ErrEmptySource
	}
	s.logger.Debug("compiler: start compilation", "id", entry.ID, "predefined", s.symbolTable.Names())
	result, phase, err := compile(source, s.symbolTable, s.phaseCompleted)
	if err != nil {
		s.compilationFailed(phase, err)
		s.record(ctx, entry, StatusFailed, err)
		return nil, err
	}
	s.symbolTable.Merge(result.Symbols)
	entry.Instructions = len(result.Instructions)
	s.record(ctx, entry, StatusSuccess, nil)
	s.logger.Info("compiler: compilation succeeded", "id", entry.ID, "instructions", entry.Instructions)
	return result, nil
}

func (s *Session) phaseCompleted(phase Phase, result *Result) {
	switch phase {
	case PhaseLexing:
		s.logger.Debug("compiler: phase done", "phase", phase.String(), "tokens", len(result.Tokens)-1)
	case PhaseChecking:
		s.logger.Debug("compiler: phase done", "phase", phase.String(), "symbols", result.Symbols.Names())
	case PhaseGenerating:
		s.logger.Debug("compiler: phase done", "phase", phase.String(), "instructions", len(result.Instructions))
	default:
		s.logger.Debug("compiler: phase done", "phase", phase.String())
	}
	if s.listener != nil {
		s.listener.PhaseCompleted(phase, result)
	}
}

func (s *Session) compilationFailed(phase Phase, err error) {
	var unhandled *UnhandledNodeError
	if errors.As(err, &unhandled) {
		s.logger.Error("compiler: internal error", "phase", phase.String(), "err", err)
	} else {
		s.logger.Warn("compiler: compilation failed", "phase", phase.String(), "err", err)
	}
	if s.listener != nil {
		s.listener.CompilationFailed(phase, err)
	}
}

// record doesn't fail the compilation when the history can't be written.
func (s *Session) record(ctx context.Context, entry HistoryEntry, status Status, err error) {
	entry.Status = status
	if err != nil {
		entry.Error = err.Error()
	}
	if s.history == nil {
		return
	}
	if appendErr := s.history.Append(ctx, entry); appendErr != nil {
		s.logger.Warn("compiler: failed to record history", "id", entry.ID, "err", appendErr)
	}
}

// Define declares every valid identifier in names and returns the accepted ones.
func (s *Session) Define(names ...string) []string {
	var accepted []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if !util.IsIdentifier(name) {
			continue
		}
		s.symbolTable.declare(name)
		accepted = append(accepted, name)
	}
	return accepted
}

func (s *Session) Clear() {
	s.symbolTable = SymbolTable{}
}

// Symbols returns a copy of the session symbol table.
func (s *Session) Symbols() SymbolTable {
	return s.symbolTable.Clone()
}

func (s *Session) History(ctx context.Context) ([]HistoryEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx)
}
