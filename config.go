package regex

import "fmt"

// Config controls the hard resource limits the parser, compiler, and
// prefilter enforce, and whether the prefilter optimization runs at all.
//
// Example:
//
//	config := regex.DefaultConfig()
//	config.EnablePrefilter = false // force the plain VM loop
//	re, err := regex.CompileWithConfig(`[a-z]+@[a-z]+`, config)
type Config struct {
	// MaxClasses caps the number of distinct `[...]` character classes a
	// pattern may define. The class table reserves one bit per class, so
	// this can never exceed 32.
	// Default: 32
	MaxClasses int

	// MaxCaptureGroups caps which capture groups emit Save instructions.
	// Groups beyond this index still compile, they just aren't
	// retrievable from FindSubmatch.
	// Default: 9
	MaxCaptureGroups int

	// MaxRecursionDepth bounds how deeply nested parentheses and
	// alternations may go before Compile rejects the pattern.
	// Default: 1000
	MaxRecursionDepth int

	// EnablePrefilter enables literal-based skip-ahead before invoking
	// the VM. Disabling it never changes which match is found, only how
	// fast the engine finds it.
	// Default: true
	EnablePrefilter bool
}

// DefaultConfig returns a configuration with the engine's built-in
// limits: the 32-class hard cap the class table's bitmask imposes, nine
// capture groups, a generous recursion depth, and prefiltering on.
func DefaultConfig() Config {
	return Config{
		MaxClasses:        32,
		MaxCaptureGroups:  9,
		MaxRecursionDepth: 1000,
		EnablePrefilter:   true,
	}
}

// Validate checks that every field is within the ranges the engine's
// data structures can actually represent.
//
// Valid ranges:
//   - MaxClasses: 1 to 32
//   - MaxCaptureGroups: 0 to 9
//   - MaxRecursionDepth: 1 to 100,000
func (c Config) Validate() error {
	if c.MaxClasses < 1 || c.MaxClasses > 32 {
		return &ConfigError{Field: "MaxClasses", Err: fmt.Errorf("must be between 1 and 32, got %d", c.MaxClasses)}
	}
	if c.MaxCaptureGroups < 0 || c.MaxCaptureGroups > 9 {
		return &ConfigError{Field: "MaxCaptureGroups", Err: fmt.Errorf("must be between 0 and 9, got %d", c.MaxCaptureGroups)}
	}
	if c.MaxRecursionDepth < 1 || c.MaxRecursionDepth > 100000 {
		return &ConfigError{Field: "MaxRecursionDepth", Err: fmt.Errorf("must be between 1 and 100,000, got %d", c.MaxRecursionDepth)}
	}
	return nil
}

// ConfigError reports which Config field failed validation.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("regex: invalid config field %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
