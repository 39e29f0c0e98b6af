package regex

import (
	"fmt"

	"github.com/gopike/regex/syntax"
	"github.com/gopike/regex/vm"
)

// Errors surfaced by the syntax, config, and vm layers are re-exported
// here so callers of this package never need to import those packages
// just to compare against a sentinel.
var (
	// ErrTooManyClasses is returned when a pattern defines more character
	// classes than Config.MaxClasses allows (at most 32).
	ErrTooManyClasses = syntax.ErrTooManyClasses

	// ErrRecursionLimit is returned when a pattern nests parentheses or
	// alternations deeper than the configured limit.
	ErrRecursionLimit = syntax.ErrRecursionLimit

	// ErrInvalidArgument is what the vm layer returns when a match is
	// attempted against a nil or empty program. The matching methods of
	// Regex report such a failure as no match.
	ErrInvalidArgument = vm.ErrInvalidArgument
)

// CompileError wraps a failure to compile a pattern, recording the
// pattern text alongside the underlying cause.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("regex: error compiling pattern %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// MatchError wraps a failure during matching. The matching methods of
// Regex report no errors, so none of them returns a MatchError.
type MatchError struct {
	Err error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("regex: error during match: %v", e.Err)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}
