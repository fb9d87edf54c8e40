package collector

import "fmt"

// ErrorKind classifies collection failures.
type ErrorKind int

const (
	// ProcessFailed means a utility could not be launched or exited non-zero.
	ProcessFailed ErrorKind = iota + 1
	// ParseFailed means the sensor utility printed something other than a JSON object.
	ParseFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ProcessFailed:
		return "process failed"
	case ParseFailed:
		return "parse failed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by every source for fatal collection failures.
type Error struct {
	Kind    ErrorKind
	Command string
	Err     error
}

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrProcessFailed = &Error{Kind: ProcessFailed}
	ErrParseFailed   = &Error{Kind: ParseFailed}
)

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Command, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Command, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
