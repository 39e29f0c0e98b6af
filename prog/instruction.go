// Package prog compiles a parsed syntax tree (a syntax.Result) into a
// linear, threaded program of typed instructions that the vm package
// executes.
package prog

import "github.com/gopike/regex/syntax"

// Opcode identifies the operation an Instruction performs.
type Opcode int

const (
	OpChar    Opcode = iota // die unless the next input byte equals Char
	OpAnyChar               // accept the current input byte unconditionally
	OpCharSet               // die unless Classes.Bits[next byte]&Mask != 0
	OpMatch                 // the regex matched
	OpMatchEnd              // the regex matched iff positioned at the end of input
	OpJump                  // unconditional transfer to X
	OpSplit                 // fork: try X first (higher priority), then Y
	OpSave                  // record the current input position in slot Slot
)

// Instruction is one program step. Fields not relevant to Op are zero.
type Instruction struct {
	Op      Opcode
	Char    byte
	Mask    uint32
	Classes *syntax.ClassTable
	X, Y    int // absolute instruction addresses (Jump/Split targets)
	Slot    int // Save slot index
}

// Program is the compiler's output: an immutable, ordered instruction
// sequence plus the character-class table its CharSet instructions
// reference. A Program is read-only after Compile returns and may be
// shared across concurrent matches.
type Program struct {
	Code    []Instruction
	Classes *syntax.ClassTable

	// NumCaptures is the number of groups (including group 0, the whole
	// match) that actually emitted Save instructions. Groups beyond the
	// compiler's maxSave cap compiled their body but are not counted
	// here, since no position of theirs is ever recorded.
	NumCaptures int
}

// Size returns the number of instructions in the program.
func (p *Program) Size() int {
	return len(p.Code)
}
