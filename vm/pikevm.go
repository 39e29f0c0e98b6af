// Package vm executes a compiled prog.Program against an input buffer
// using Pike's breadth-first NFA simulation: every active thread advances
// one input byte per round, so the match runs in time linear in the
// product of program size and input length with no backtracking.
package vm

import (
	"errors"

	"github.com/gopike/regex/prog"
)

// NumSaved is the number of capture slots a thread carries: a start and
// end position for each of the ten capturable groups, $0 through $9.
const NumSaved = 20

// ErrInvalidArgument is returned when Run is called with a nil program, a
// nil input, or a program with no instructions.
var ErrInvalidArgument = errors.New("vm: invalid argument")

// thread is one point in the simulation: a program counter and the
// capture positions accumulated along the path that reached it. An unset
// slot holds -1.
type thread struct {
	pc    int
	saved [NumSaved]int
}

// threadList is the active thread set for one generation, kept in
// priority order (earlier threads were reached along higher-priority
// Split branches) with O(1) membership testing keyed by instruction
// address. mark[pc] == id iff pc has already been explored this
// generation; bumping id instead of clearing mark on every reset keeps
// addThread's dedup check O(1) regardless of program size.
type threadList struct {
	threads []thread
	mark    []int
	id      int

	// savePos is the input position addThread records into a thread's
	// saved array when it inlines a Save instruction while building this
	// generation's thread list.
	savePos int
}

func newThreadList(size int) *threadList {
	return &threadList{
		threads: make([]thread, 0, size),
		mark:    make([]int, size),
		id:      1,
	}
}

func (l *threadList) reset() {
	l.threads = l.threads[:0]
	l.id++
	if l.id == 0 {
		for i := range l.mark {
			l.mark[i] = 0
		}
		l.id = 1
	}
}

// visit claims pc for the current generation, reporting whether it was
// unclaimed. A claimed pc must not be explored again this generation:
// every path to it has already been threaded in priority order, and
// exploring it again would only re-add it with a strictly lower-priority
// set of captures.
func (l *threadList) visit(pc int) bool {
	if l.mark[pc] == l.id {
		return false
	}
	l.mark[pc] = l.id
	return true
}

// addThread threads pc into list, inlining every Jump, Split, and Save it
// passes through on the way (the NFA's epsilon closure) so only
// input-consuming or terminal instructions ever appear as queued threads.
// saved is passed by value; each recursive call mutating it (Save) only
// affects the branch that call explores.
func addThread(list *threadList, p *prog.Program, pc int, saved [NumSaved]int) {
	if !list.visit(pc) {
		return
	}
	inst := &p.Code[pc]
	switch inst.Op {
	case prog.OpJump:
		addThread(list, p, inst.X, saved)
	case prog.OpSplit:
		addThread(list, p, inst.X, saved)
		addThread(list, p, inst.Y, saved)
	case prog.OpSave:
		if inst.Slot < NumSaved {
			saved[inst.Slot] = list.savePos
		}
		addThread(list, p, pc+1, saved)
	default:
		list.threads = append(list.threads, thread{pc: pc, saved: saved})
	}
}

// Run searches input for a match against p, starting the simulation at
// input's first byte. p is expected to already encode its own unanchored
// search prefix (the `.*?` preamble Parse wires in ahead of capture group
// zero), so a single anchored pass over input suffices to find the
// leftmost match; among threads sharing a leftmost start, the one
// following higher-priority Split branches wins, matching the quantifier
// preference baked in at compile time.
//
// On a match, captures holds the ten groups' [start0, end0, start1,
// end1, ...] positions (-1 where a group did not participate) and Run
// returns true. On no match, captures is left untouched and Run returns
// false.
func Run(p *prog.Program, input []byte, captures *[NumSaved]int) (bool, error) {
	if p == nil || input == nil || p.Size() < 1 || captures == nil {
		return false, ErrInvalidArgument
	}

	clist := newThreadList(p.Size())
	nlist := newThreadList(p.Size())

	var initial [NumSaved]int
	for i := range initial {
		initial[i] = -1
	}

	matched := false
	var bestSaved [NumSaved]int

	clist.savePos = 0
	addThread(clist, p, 0, initial)

	pos := 0
	for {
		for i := 0; i < len(clist.threads); i++ {
			t := clist.threads[i]
			inst := &p.Code[t.pc]
			switch inst.Op {
			case prog.OpChar:
				if pos < len(input) && input[pos] == inst.Char {
					nlist.savePos = pos + 1
					addThread(nlist, p, t.pc+1, t.saved)
				}
			case prog.OpAnyChar:
				if pos < len(input) {
					nlist.savePos = pos + 1
					addThread(nlist, p, t.pc+1, t.saved)
				}
			case prog.OpCharSet:
				if pos < len(input) && inst.Classes.Bits[input[pos]]&inst.Mask != 0 {
					nlist.savePos = pos + 1
					addThread(nlist, p, t.pc+1, t.saved)
				}
			case prog.OpMatchEnd:
				if pos != len(input) {
					continue
				}
				fallthrough
			case prog.OpMatch:
				matched = true
				bestSaved = t.saved
				// Every later thread in this generation started no
				// earlier than t (threads are added in priority order
				// and addThread only grows saved[0] forward), so they
				// can only ever produce a worse (later-starting or
				// equal but lower-priority) match. Drop them.
				clist.threads = clist.threads[:i+1]
			default:
				panic("vm: unexpected opcode reachable from thread dispatch")
			}
		}

		if pos >= len(input) || len(nlist.threads) == 0 {
			break
		}
		pos++
		clist, nlist = nlist, clist
		nlist.reset()
	}

	if matched {
		*captures = bestSaved
	}
	return matched, nil
}
