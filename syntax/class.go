package syntax

import "errors"

// MaxClasses is the hard limit on the number of distinct `[...]` character
// classes a single pattern may define — one bit per class in a 32-bit mask
// word.
const MaxClasses = 32

// ErrTooManyClasses is returned when a pattern defines more character
// classes than the parser's configured limit (at most MaxClasses).
var ErrTooManyClasses = errors.New("syntax: pattern defines too many character classes")

// ClassTable holds, for every possible input byte, the bitmask of classes
// that byte belongs to. Membership of byte b in the class identified by
// mask m is table.Bits[b]&m != 0.
//
// Entry 0 is reserved: while parsing it holds the next free mask bit; once
// parsing completes the parser forces it to zero so the NUL byte can never
// satisfy any class.
type ClassTable struct {
	Bits [256]uint32

	limit int // configured cap on classes this table may allocate, <= MaxClasses
	count int
}

// newClassTable returns a table ready for parsing: Bits[0] holds 1, the
// first bit a class may claim. limit caps how many classes the pattern
// may define; values outside 1..MaxClasses are clamped to MaxClasses.
func newClassTable(limit int) *ClassTable {
	if limit <= 0 || limit > MaxClasses {
		limit = MaxClasses
	}
	return &ClassTable{Bits: [256]uint32{0: 1}, limit: limit}
}

// seal is called once parsing succeeds. The NUL byte must never match any
// class, so entry 0 (which only ever held the allocator's bookkeeping bit)
// is zeroed.
func (c *ClassTable) seal() {
	c.Bits[0] = 0
}

// allocMask claims the next free class bit, advancing the allocator.
// Returns ErrTooManyClasses once the configured budget is exhausted.
func (c *ClassTable) allocMask() (uint32, error) {
	if c.count >= c.limit {
		return 0, ErrTooManyClasses
	}
	mask := c.Bits[0]
	c.Bits[0] <<= 1
	c.count++
	return mask, nil
}

// parseClass parses a bracketed character class starting just after the
// opening '[' and returns the Charset node for it. *sp is advanced past the
// closing ']' (or to the end of input, if the class is unterminated).
func parseClass(t *Tree, classes *ClassTable, sp []byte) (*Node, []byte, error) {
	mask, err := classes.allocMask()
	if err != nil {
		return nil, sp, err
	}

	if len(sp) > 0 && sp[0] == '^' {
		sp = sp[1:]
		for i := 1; i < len(classes.Bits); i++ {
			classes.Bits[i] ^= mask
		}
	}
	if len(sp) > 0 && sp[0] == ']' {
		classes.Bits[sp[0]] ^= mask
		sp = sp[1:]
	}

loop:
	for {
		if len(sp) == 0 {
			break loop
		}
		c := sp[0]
		sp = sp[1:]
		switch c {
		case ']':
			break loop
		default:
			if len(sp) == 0 || sp[0] != '-' || len(sp) < 2 || sp[1] == ']' {
				classes.Bits[c] ^= mask
			} else {
				// a range like "A-Z"
				hi := sp[1]
				for b := int(c); b <= int(hi); b++ {
					classes.Bits[b] ^= mask
				}
				sp = sp[2:]
			}
		}
	}

	x := t.push()
	x.Op = OpCharset
	x.Mask = mask
	x.Classes = classes
	return x, sp, nil
}
