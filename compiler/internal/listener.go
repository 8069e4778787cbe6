package internal

//go:generate mockgen -write_package_comment=false -package=$GOPACKAGE -destination=mock_listener_test.go tiny_compiler/compiler/internal Listener

// Listener is told about the progress of a Session compilation.
type Listener interface {
	// PhaseCompleted is called after each successful phase with the partial result.
	PhaseCompleted(phase Phase, result *Result)
	// CompilationFailed is called once with the phase that failed and its error.
	CompilationFailed(phase Phase, err error)
}
