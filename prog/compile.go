package prog

import "github.com/gopike/regex/syntax"

// DefaultMaxCaptureGroups is the hard limit on capturable groups: $0 (the
// whole match) through $9.
const DefaultMaxCaptureGroups = 9

// compiler walks an AST once, emitting instructions into a pre-sized
// buffer and resolving jump/split targets as absolute instruction
// addresses as it goes.
type compiler struct {
	code     []Instruction
	matchend bool
	nextSave int
	maxSave  int
}

// Compile linearises tree into a Program. patternLen is the length, in
// bytes, of the source pattern the tree was parsed from; it sizes the
// instruction buffer to the proven bound of 2*patternLen+6. maxSave selects
// the highest capturable group index (negative selects
// DefaultMaxCaptureGroups; 0 means only group $0 is captured); groups
// beyond it still compile their body, just without Save markers.
func Compile(tree syntax.Result, patternLen, maxSave int) *Program {
	if maxSave < 0 {
		maxSave = DefaultMaxCaptureGroups
	}
	max := 2*patternLen + 6
	if max < 6 {
		max = 6
	}
	c := &compiler{
		code:    make([]Instruction, max),
		maxSave: maxSave,
	}

	pc := c.emit(tree.Root, 0)
	op := OpMatch
	if c.matchend {
		op = OpMatchEnd
	}
	c.code[pc] = Instruction{Op: op}
	pc++

	return &Program{
		Code:        c.code[:pc:pc],
		Classes:     tree.Classes,
		NumCaptures: c.nextSave,
	}
}

// emit compiles t starting at instruction address pc and returns the
// address of the next free instruction. Concat chains are walked
// iteratively (a tail loop on the right child) so long literal runs don't
// recurse one stack frame per character.
func (c *compiler) emit(t *syntax.Node, pc int) int {
	for {
		switch t.Op {
		case syntax.OpEpsilon:
			return pc

		case syntax.OpDollar:
			c.matchend = true
			return pc

		case syntax.OpOneChar:
			c.code[pc] = Instruction{Op: OpChar, Char: t.Char}
			return pc + 1

		case syntax.OpAnyChar:
			c.code[pc] = Instruction{Op: OpAnyChar}
			return pc + 1

		case syntax.OpCharset:
			c.code[pc] = Instruction{Op: OpCharSet, Mask: t.Mask, Classes: t.Classes}
			return pc + 1

		case syntax.OpConcat:
			pc = c.emit(t.X, pc)
			t = t.Y
			continue

		case syntax.OpEither:
			splitPC := pc
			xStart := pc + 1
			xEnd := c.emit(t.X, xStart)
			jumpPC := xEnd
			yStart := jumpPC + 1
			yEnd := c.emit(t.Y, yStart)
			c.code[splitPC] = Instruction{Op: OpSplit, X: xStart, Y: yStart}
			c.code[jumpPC] = Instruction{Op: OpJump, X: yEnd}
			return yEnd

		case syntax.OpOptional:
			splitPC := pc
			bodyStart := pc + 1
			end := c.emit(t.X, bodyStart)
			c.code[splitPC] = Instruction{Op: OpSplit, X: bodyStart, Y: end}
			return end

		case syntax.OpWeakOpt:
			splitPC := pc
			bodyStart := pc + 1
			end := c.emit(t.X, bodyStart)
			c.code[splitPC] = Instruction{Op: OpSplit, X: end, Y: bodyStart}
			return end

		case syntax.OpStar:
			l := pc
			bodyStart := pc + 1
			bodyEnd := c.emit(t.X, bodyStart)
			jumpPC := bodyEnd
			end := jumpPC + 1
			c.code[l] = Instruction{Op: OpSplit, X: bodyStart, Y: end}
			c.code[jumpPC] = Instruction{Op: OpJump, X: l}
			return end

		case syntax.OpWeakStar:
			l := pc
			bodyStart := pc + 1
			bodyEnd := c.emit(t.X, bodyStart)
			jumpPC := bodyEnd
			end := jumpPC + 1
			c.code[l] = Instruction{Op: OpSplit, X: end, Y: bodyStart}
			c.code[jumpPC] = Instruction{Op: OpJump, X: l}
			return end

		case syntax.OpPlus:
			l := pc
			bodyEnd := c.emit(t.X, l)
			splitPC := bodyEnd
			end := splitPC + 1
			c.code[splitPC] = Instruction{Op: OpSplit, X: l, Y: end}
			return end

		case syntax.OpWeakPlus:
			l := pc
			bodyEnd := c.emit(t.X, l)
			splitPC := bodyEnd
			end := splitPC + 1
			c.code[splitPC] = Instruction{Op: OpSplit, X: end, Y: l}
			return end

		case syntax.OpCapture:
			if c.nextSave > c.maxSave {
				t = t.X
				continue
			}
			savepoint := 2 * c.nextSave
			c.nextSave++
			c.code[pc] = Instruction{Op: OpSave, Slot: savepoint}
			pc++
			bodyEnd := c.emit(t.X, pc)
			c.code[bodyEnd] = Instruction{Op: OpSave, Slot: savepoint + 1}
			return bodyEnd + 1

		default:
			panic("prog: unknown AST opcode reachable from compiler dispatch")
		}
	}
}
