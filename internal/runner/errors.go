package runner

import (
	"errors"
	"fmt"
)

// Sentinel errors for runner operations.
// These can be checked with errors.Is().
var (
	// ErrUnsupportedOption means the caller supplied an option the chosen
	// runner cannot honor. Raised before any external invocation.
	ErrUnsupportedOption = errors.New("unsupported option")

	// ErrNotSupported means a strategy method was called on a runner that
	// does not implement that execution path. This is a misuse of the
	// abstraction, not a data problem.
	ErrNotSupported = errors.New("operation not supported by this runner")

	// ErrUnknownRunner means the requested runner name is not registered
	ErrUnknownRunner = errors.New("unknown runner")
)

func unsupportedOptionError(runnerType, option string) error {
	return fmt.Errorf("%w: %s does not accept %s", ErrUnsupportedOption, runnerType, option)
}
