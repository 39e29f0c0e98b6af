package syntax

import "testing"

// walk collects every Op reachable from n, depth-first, for assertions
// that don't want to hand-build the whole tree shape.
func walk(n *Node, out *[]Op) {
	if n == nil {
		return
	}
	*out = append(*out, n.Op)
	walk(n.X, out)
	walk(n.Y, out)
}

func TestParseLiteral(t *testing.T) {
	res, err := Parse([]byte("^abc$"), 0, 0)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	var ops []Op
	walk(res.Root, &ops)
	// root = Concat(Capture(Concat(a, Concat(b, c))), Dollar) — concat
	// folds right-leaning, two elements at a time off the top of the
	// stack, so "abc" becomes Concat(a, Concat(b, c)).
	want := []Op{OpConcat, OpCapture, OpConcat, OpOneChar, OpConcat, OpOneChar, OpOneChar, OpDollar}
	if !equalOps(ops, want) {
		t.Errorf("ops = %v, want %v", ops, want)
	}
}

func TestParseUnanchoredHasWeakStarPreamble(t *testing.T) {
	res, err := Parse([]byte("abc"), 0, 0)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Root.Op != OpConcat {
		t.Fatalf("root.Op = %v, want OpConcat (preamble + capture)", res.Root.Op)
	}
	if res.Root.X.Op != OpWeakStar || res.Root.X.X.Op != OpAnyChar {
		t.Errorf("preamble = %+v, want WeakStar(AnyChar)", res.Root.X)
	}
	if res.Root.Y.Op != OpCapture {
		t.Errorf("root.Y.Op = %v, want OpCapture", res.Root.Y.Op)
	}
}

func TestParseQuantifiers(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantOp  Op
	}{
		{"star", "^a*$", OpStar},
		{"weak star", "^a*?$", OpWeakStar},
		{"plus", "^a+$", OpPlus},
		{"weak plus", "^a+?$", OpWeakPlus},
		{"optional", "^a?$", OpOptional},
		{"weak optional", "^a??$", OpWeakOpt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse([]byte(tt.pattern), 0, 0)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.pattern, err)
			}
			// root = Concat(Capture(quantifier(a)), Dollar)
			capture := res.Root.X
			if capture.Op != OpCapture {
				t.Fatalf("root.X.Op = %v, want OpCapture", capture.Op)
			}
			if capture.X.Op != tt.wantOp {
				t.Errorf("quantifier op = %v, want %v", capture.X.Op, tt.wantOp)
			}
		})
	}
}

func TestParseLeadingQuantifierIsLiteral(t *testing.T) {
	// A quantifier with nothing to its left degrades to a literal
	// metacharacter, matching parselevel's `if(top(t) == bot)` guard.
	res, err := Parse([]byte("^*a$"), 0, 0)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	capture := res.Root.X
	// body = Concat(OneChar('*'), OneChar('a'))
	if capture.X.Op != OpConcat || capture.X.X.Op != OpOneChar || capture.X.X.Char != '*' {
		t.Errorf("leading '*' was not treated as a literal: %+v", capture.X)
	}
}

func TestParseAlternation(t *testing.T) {
	res, err := Parse([]byte("^a|b$"), 0, 0)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	capture := res.Root.X
	if capture.X.Op != OpEither {
		t.Fatalf("capture.X.Op = %v, want OpEither", capture.X.Op)
	}
}

func TestParseAlternationWithEmptyBranchBecomesOptional(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"x|", "^ab|$"},
		{"|y", "^|ab$"},
		{"both empty", "^|$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse([]byte(tt.pattern), 0, 0)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.pattern, err)
			}
			capture := res.Root.X
			switch capture.X.Op {
			case OpOptional, OpEpsilon:
			default:
				t.Errorf("capture.X.Op = %v, want OpOptional or OpEpsilon", capture.X.Op)
			}
		})
	}
}

func TestParseCaptureGroup(t *testing.T) {
	res, err := Parse([]byte("^(ab)c$"), 0, 0)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	capture := res.Root.X // group 0
	// body = Concat(Capture(ab), OneChar('c'))
	if capture.X.Op != OpConcat {
		t.Fatalf("capture.X.Op = %v, want OpConcat", capture.X.Op)
	}
	if capture.X.X.Op != OpCapture {
		t.Errorf("nested group op = %v, want OpCapture", capture.X.X.Op)
	}
}

func TestParseCharClass(t *testing.T) {
	res, err := Parse([]byte("^[a-c]$"), 0, 0)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	capture := res.Root.X
	if capture.X.Op != OpCharset {
		t.Fatalf("capture.X.Op = %v, want OpCharset", capture.X.Op)
	}
	classes := capture.X.Classes
	mask := capture.X.Mask
	for _, b := range []byte("abc") {
		if classes.Bits[b]&mask == 0 {
			t.Errorf("class does not contain %q", b)
		}
	}
	if classes.Bits['d']&mask != 0 {
		t.Error("class unexpectedly contains 'd'")
	}
}

func TestParseNegatedCharClass(t *testing.T) {
	res, err := Parse([]byte("^[^a]$"), 0, 0)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	capture := res.Root.X
	classes := capture.X.Classes
	mask := capture.X.Mask
	if classes.Bits['a']&mask != 0 {
		t.Error("negated class unexpectedly contains 'a'")
	}
	if classes.Bits['b']&mask == 0 {
		t.Error("negated class should contain 'b'")
	}
	if classes.Bits[0]&mask != 0 {
		t.Error("NUL must never satisfy any class, even a negated one")
	}
}

func TestParseTooManyClasses(t *testing.T) {
	pattern := ""
	for i := 0; i < MaxClasses+1; i++ {
		pattern += "[a]"
	}
	_, err := Parse([]byte(pattern), 0, 0)
	if err != ErrTooManyClasses {
		t.Fatalf("Parse() error = %v, want ErrTooManyClasses", err)
	}
}

func TestParseRecursionLimit(t *testing.T) {
	pattern := ""
	for i := 0; i < 50; i++ {
		pattern += "("
	}
	_, err := Parse([]byte(pattern), 10, 0)
	if err != ErrRecursionLimit {
		t.Fatalf("Parse() error = %v, want ErrRecursionLimit", err)
	}
}

func TestParseUnterminatedGroupDegradesGracefully(t *testing.T) {
	if _, err := Parse([]byte("(abc"), 0, 0); err != nil {
		t.Fatalf("Parse() error = %v, want nil (malformed metacharacters degrade)", err)
	}
}

func equalOps(a, b []Op) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
