// Package debug prints a compiled program in human-readable form, for
// inspecting what the compiler produced from a pattern.
package debug

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/gopike/regex/prog"
	"github.com/gopike/regex/syntax"
)

// ErrEmptyProgram is returned by Fprint when the program has no
// instructions.
var ErrEmptyProgram = errors.New("debug: program has no instructions")

// Fprint writes one line per instruction to w: a three-digit decimal
// address, the opcode mnemonic, and its operands. Byte operands print as
// characters where printable, jump/split targets print as decimal
// addresses, and character classes print reconstructed as `[abc]`,
// `[^abc]`, or range notation like `[a-z]`.
func Fprint(w io.Writer, p *prog.Program) error {
	if p == nil || p.Size() < 1 {
		return ErrEmptyProgram
	}
	for i, inst := range p.Code {
		if _, err := fmt.Fprintf(w, "%03d ", i); err != nil {
			return err
		}
		if err := fprintInst(w, inst); err != nil {
			return err
		}
	}
	return nil
}

func fprintInst(w io.Writer, inst prog.Instruction) error {
	switch inst.Op {
	case prog.OpChar:
		_, err := fmt.Fprintf(w, "Char %s\n", formatByte(inst.Char))
		return err
	case prog.OpAnyChar:
		_, err := fmt.Fprintln(w, "AnyChar")
		return err
	case prog.OpCharSet:
		_, err := fmt.Fprintf(w, "CharSet %s\n", formatClass(inst.Classes, inst.Mask))
		return err
	case prog.OpMatch:
		_, err := fmt.Fprintln(w, "Match")
		return err
	case prog.OpMatchEnd:
		_, err := fmt.Fprintln(w, "MatchEnd")
		return err
	case prog.OpJump:
		_, err := fmt.Fprintf(w, "Jump %03d\n", inst.X)
		return err
	case prog.OpSplit:
		_, err := fmt.Fprintf(w, "Split %03d %03d\n", inst.X, inst.Y)
		return err
	case prog.OpSave:
		_, err := fmt.Fprintf(w, "Save %d\n", inst.Slot)
		return err
	default:
		panic("debug: unknown instruction opcode")
	}
}

func formatByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(b)
	}
	return fmt.Sprintf("\\x%02x", b)
}

// formatClass reconstructs a printable form for the class identified by
// mask within classes: positive notation ("[abc]", "[a-z]") when at most
// half the byte space (1..255, NUL is never a member) belongs to the
// class, negated notation ("[^abc]") otherwise.
func formatClass(classes *syntax.ClassTable, mask uint32) string {
	if classes == nil {
		return "[]"
	}
	var members []byte
	for b := 1; b <= 255; b++ {
		if classes.Bits[b]&mask != 0 {
			members = append(members, byte(b))
		}
	}
	if len(members) <= 127 {
		return "[" + formatByteSet(members) + "]"
	}

	memberSet := make(map[byte]bool, len(members))
	for _, b := range members {
		memberSet[b] = true
	}
	var complement []byte
	for b := 1; b <= 255; b++ {
		if !memberSet[byte(b)] {
			complement = append(complement, byte(b))
		}
	}
	return "[^" + formatByteSet(complement) + "]"
}

// formatByteSet renders a sorted set of bytes as a mix of literal
// characters and a-z style ranges, collapsing runs of three or more
// consecutive bytes.
func formatByteSet(set []byte) string {
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })

	var out []byte
	i := 0
	for i < len(set) {
		j := i
		for j+1 < len(set) && set[j+1] == set[j]+1 {
			j++
		}
		runLen := j - i + 1
		if runLen >= 3 {
			out = appendByte(out, set[i])
			out = append(out, '-')
			out = appendByte(out, set[j])
			i = j + 1
			continue
		}
		for k := i; k <= j; k++ {
			out = appendByte(out, set[k])
		}
		i = j + 1
	}
	return string(out)
}

func appendByte(out []byte, b byte) []byte {
	if b >= 0x20 && b < 0x7f {
		return append(out, b)
	}
	return append(out, []byte(fmt.Sprintf("\\x%02x", b))...)
}
