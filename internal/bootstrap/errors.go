package bootstrap

import "fmt"

// Kind classifies why a FatalError happened, so the CLI layer can choose a
// prefix (and, eventually, a distinct exit code) without inspecting error
// text. Kind governs presentation only; nothing here is recoverable.
type Kind int

const (
	// Input marks a bad suite name or other caller-supplied mistake. An
	// empty package list is not an error: Run logs "Nothing to install".
	Input Kind = iota
	// Transport marks a network/fetch failure talking to a mirror or
	// keyring source.
	Transport
	// Integrity marks a checksum or signature verification failure.
	Integrity
	// Format marks a Release/Packages/ar/tar document that doesn't parse
	// the way this tool expects.
	Format
	// Environment marks a local filesystem failure (permissions, disk
	// full, missing scratch directory).
	Environment
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Transport:
		return "transport"
	case Integrity:
		return "integrity"
	case Format:
		return "format"
	case Environment:
		return "environment"
	default:
		return "unknown"
	}
}

// FatalError wraps a cause with a Kind so the CLI can render a single
// "[!] <message>" line and exit non-zero. It is the only error type that
// crosses the library/CLI boundary; everything else is wrapped into one
// of these at the orchestrator.
type FatalError struct {
	Kind Kind
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Fatal wraps err as a FatalError of the given Kind, or returns nil if err
// is nil.
func Fatal(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Kind: kind, Err: err}
}
