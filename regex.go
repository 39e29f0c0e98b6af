// Package regex provides a regular expression engine built around a
// compact bytecode virtual machine: a recursive-descent parser produces
// an AST, a linear compiler lowers it to a threaded instruction program,
// and a Pike VM runs that program breadth-first with no backtracking.
//
// Syntax is a small byte-oriented subset: literals, `.`, `[...]`
// character classes, `?`/`*`/`+` and their non-greedy `??`/`*?`/`+?`
// counterparts, `|` alternation, `(...)` capture groups (the first nine,
// `$1`-`$9`; `$0` is always the whole match), `^` anchoring the start,
// and `$` anchoring the end. There is no Unicode awareness, no
// backreferences, no lookaround, and no case-insensitivity.
//
// Basic usage:
//
//	re, err := regex.Compile(`[A-Z][a-z]+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.MatchString("Hello") {
//	    fmt.Println("matched")
//	}
package regex

import (
	"github.com/gopike/regex/prefilter"
	"github.com/gopike/regex/prog"
	"github.com/gopike/regex/syntax"
	"github.com/gopike/regex/vm"
)

// Regex is a compiled pattern. A *Regex is immutable after Compile
// returns and safe to use concurrently from multiple goroutines.
type Regex struct {
	prog      *prog.Program
	prefilter prefilter.Prefilter
	pattern   string
}

// Compile compiles pattern with DefaultConfig.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if pattern fails to compile.
// Intended for patterns known to be valid at init time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// CompileWithConfig compiles pattern under the limits and options
// described by config.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	result, err := syntax.Parse([]byte(pattern), config.MaxRecursionDepth, config.MaxClasses)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	program := prog.Compile(result, len(pattern), config.MaxCaptureGroups)

	re := &Regex{prog: program, pattern: pattern}
	// Skipping ahead only preserves the result when the program carries its
	// own `.*?` search preamble; a `^`-anchored program gets no prefilter.
	unanchored := result.Root.Op == syntax.OpConcat && result.Root.X.Op == syntax.OpWeakStar
	if config.EnablePrefilter && unanchored {
		re.prefilter = prefilter.Build(result.Root)
	}
	return re, nil
}

// String returns the source pattern re was compiled from.
func (re *Regex) String() string {
	return re.pattern
}

// Program returns the compiled instruction program backing re, for use
// with the debug package's disassembler.
func (re *Regex) Program() *prog.Program {
	return re.prog
}

// NumSubexp returns the number of capture groups that record positions,
// not counting group 0 (the whole match). Groups beyond
// Config.MaxCaptureGroups are not counted.
func (re *Regex) NumSubexp() int {
	if re.prog.NumCaptures == 0 {
		return 0
	}
	return re.prog.NumCaptures - 1
}

// run searches b starting no earlier than from, honoring the prefilter
// when one is available, and returns the raw capture slots (offsets
// relative to b) and whether a match was found.
func (re *Regex) run(b []byte, from int) (saved [vm.NumSaved]int, ok bool) {
	start := from
	if re.prefilter != nil {
		cand := re.prefilter.Next(b, from)
		if cand == -1 {
			return saved, false
		}
		start = cand
	}
	matched, err := vm.Run(re.prog, b[start:], &saved)
	if err != nil || !matched {
		return saved, false
	}
	for i := range saved {
		if saved[i] >= 0 {
			saved[i] += start
		}
	}
	return saved, true
}

// Match reports whether b contains any match of re.
func (re *Regex) Match(b []byte) bool {
	_, ok := re.run(b, 0)
	return ok
}

// MatchString reports whether s contains any match of re.
func (re *Regex) MatchString(s string) bool {
	return re.Match([]byte(s))
}

// Find returns the leftmost match in b, or nil if there is none.
func (re *Regex) Find(b []byte) []byte {
	saved, ok := re.run(b, 0)
	if !ok {
		return nil
	}
	return b[saved[0]:saved[1]]
}

// FindString is Find for a string argument.
func (re *Regex) FindString(s string) string {
	m := re.Find([]byte(s))
	if m == nil {
		return ""
	}
	return string(m)
}

// FindIndex returns a two-element slice giving the leftmost match's
// [start, end) in b, or nil if there is none.
func (re *Regex) FindIndex(b []byte) []int {
	saved, ok := re.run(b, 0)
	if !ok {
		return nil
	}
	return []int{saved[0], saved[1]}
}

// FindStringIndex is FindIndex for a string argument.
func (re *Regex) FindStringIndex(s string) []int {
	return re.FindIndex([]byte(s))
}

// FindSubmatchIndex returns index pairs for the leftmost match and its
// capture groups: result[2*i:2*i+2] is group i's [start, end), or
// [-1, -1] if group i did not participate. Returns nil if there is no
// match.
func (re *Regex) FindSubmatchIndex(b []byte) []int {
	saved, ok := re.run(b, 0)
	if !ok {
		return nil
	}
	n := re.prog.NumCaptures
	if n == 0 {
		n = 1
	}
	result := make([]int, n*2)
	copy(result, saved[:n*2])
	return result
}

// FindStringSubmatchIndex is FindSubmatchIndex for a string argument.
func (re *Regex) FindStringSubmatchIndex(s string) []int {
	return re.FindSubmatchIndex([]byte(s))
}

// FindSubmatch returns the leftmost match and its capture groups:
// result[0] is the whole match, result[i] is group i. An unmatched group
// is nil. Returns nil if there is no match.
func (re *Regex) FindSubmatch(b []byte) [][]byte {
	idx := re.FindSubmatchIndex(b)
	if idx == nil {
		return nil
	}
	result := make([][]byte, len(idx)/2)
	for i := range result {
		s, e := idx[2*i], idx[2*i+1]
		if s < 0 || e < 0 {
			continue
		}
		result[i] = b[s:e]
	}
	return result
}

// FindStringSubmatch is FindSubmatch for a string argument.
func (re *Regex) FindStringSubmatch(s string) []string {
	groups := re.FindSubmatch([]byte(s))
	if groups == nil {
		return nil
	}
	result := make([]string, len(groups))
	for i, g := range groups {
		if g != nil {
			result[i] = string(g)
		}
	}
	return result
}

// FindAll returns all successive non-overlapping matches in b. If n >= 0
// it returns at most n matches; n < 0 means unlimited.
func (re *Regex) FindAll(b []byte, n int) [][]byte {
	if n == 0 {
		return nil
	}
	var matches [][]byte
	pos := 0
	for pos <= len(b) {
		saved, ok := re.run(b, pos)
		if !ok {
			break
		}
		matches = append(matches, b[saved[0]:saved[1]])
		if saved[1] > pos {
			pos = saved[1]
		} else {
			pos++
		}
		if n > 0 && len(matches) >= n {
			break
		}
	}
	return matches
}

// FindAllString is FindAll for a string argument.
func (re *Regex) FindAllString(s string, n int) []string {
	matches := re.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = string(m)
	}
	return result
}
