// Package prefilter narrows the positions a search needs to try against
// the VM down to the ones where a match could possibly begin, by
// extracting a required literal set from a compiled pattern's AST.
//
// A prefilter never changes which match is reported. It only lets a
// caller skip ahead to the next position where a required literal
// occurs, instead of invoking the VM at every byte offset.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
	"github.com/gopike/regex/syntax"
)

// Prefilter narrows candidate match-start positions.
type Prefilter interface {
	// Next returns the first position at or after from where a match
	// could begin, or -1 if no such position exists in haystack.
	Next(haystack []byte, from int) int
}

// Build extracts a required-literal set from root — the AST produced by
// syntax.Parse, still wrapped in its group-0 Capture and optional `.*?`
// preamble and trailing Dollar — and returns a Prefilter for it.
//
// It returns nil when no usable literal set exists: some top-level
// alternative can start with something other than a fixed literal (`.`,
// a character class, a quantified subexpression), so every position is a
// legitimate candidate and a prefilter buys nothing.
func Build(root *syntax.Node) Prefilter {
	capture := findCapture(root)
	if capture == nil {
		return nil
	}
	lits := extractLiterals(capture.X)
	if lits == nil {
		return nil
	}
	switch len(lits) {
	case 0:
		return nil
	case 1:
		return &singleLiteral{lit: lits[0]}
	default:
		builder := ahocorasick.NewBuilder()
		for _, lit := range lits {
			builder.AddPattern(lit)
		}
		auto, err := builder.Build()
		if err != nil {
			return nil
		}
		return &multiLiteral{auto: auto}
	}
}

// findCapture walks the Concat spine parseRegex builds around the actual
// pattern body (`.*?` preamble, group-0 Capture, trailing Dollar) and
// returns the Capture node, or nil if root is somehow not one of the
// shapes Parse produces.
func findCapture(n *syntax.Node) *syntax.Node {
	switch n.Op {
	case syntax.OpCapture:
		return n
	case syntax.OpConcat:
		if c := findCapture(n.X); c != nil {
			return c
		}
		return findCapture(n.Y)
	default:
		return nil
	}
}

// extractLiterals returns one required literal per top-level alternative
// of body, or nil if any alternative lacks one.
func extractLiterals(body *syntax.Node) [][]byte {
	branches := alternatives(body)
	lits := make([][]byte, 0, len(branches))
	for _, b := range branches {
		lit := leadingLiteral(b)
		if len(lit) == 0 {
			return nil
		}
		lits = append(lits, lit)
	}
	return lits
}

// alternatives flattens a chain of Either nodes into its branches, looking
// through capture groups that wrap an alternation.
func alternatives(n *syntax.Node) []*syntax.Node {
	if n.Op == syntax.OpCapture {
		return alternatives(n.X)
	}
	if n.Op != syntax.OpEither {
		return []*syntax.Node{n}
	}
	return append(alternatives(n.X), alternatives(n.Y)...)
}

// leadingLiteral returns the run of bytes guaranteed to open every match
// of n: the literal characters up to the first point where the match
// could take a different path (a quantifier, `.`, a character class, or
// the end of a fully-literal subtree).
func leadingLiteral(n *syntax.Node) []byte {
	switch n.Op {
	case syntax.OpOneChar:
		return []byte{n.Char}
	case syntax.OpCapture:
		return leadingLiteral(n.X)
	case syntax.OpConcat:
		left := leadingLiteral(n.X)
		if !isPureLiteral(n.X) {
			return left
		}
		return append(left, leadingLiteral(n.Y)...)
	default:
		return nil
	}
}

// isPureLiteral reports whether every path through n is the same fixed
// run of literal bytes, with no branching and no optional span.
func isPureLiteral(n *syntax.Node) bool {
	switch n.Op {
	case syntax.OpOneChar:
		return true
	case syntax.OpCapture:
		return isPureLiteral(n.X)
	case syntax.OpConcat:
		return isPureLiteral(n.X) && isPureLiteral(n.Y)
	default:
		return false
	}
}

// singleLiteral scans for one required literal using a first-byte SWAR
// scan followed by a full-literal comparison at each candidate.
type singleLiteral struct {
	lit []byte
}

func (s *singleLiteral) Next(haystack []byte, from int) int {
	i := from
	for {
		idx := indexByte(haystack, i, s.lit[0])
		if idx == -1 {
			return -1
		}
		if idx+len(s.lit) <= len(haystack) && bytes.Equal(haystack[idx:idx+len(s.lit)], s.lit) {
			return idx
		}
		i = idx + 1
	}
}

// multiLiteral scans for any of several required literals at once using
// an Aho-Corasick automaton, for patterns whose top-level alternation has
// two or more branches.
type multiLiteral struct {
	auto *ahocorasick.Automaton
}

func (m *multiLiteral) Next(haystack []byte, from int) int {
	match := m.auto.Find(haystack, from)
	if match == nil {
		return -1
	}
	return match.Start
}
