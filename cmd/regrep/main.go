// Command regrep matches a pattern against one or more files (or stdin),
// printing every line that matches.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gopike/regex"
	"github.com/gopike/regex/debug"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("regrep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dump := fs.Bool("d", false, "dump the compiled program to stderr before matching")
	format := fs.String("o", "", "print FORMAT per match instead of the whole line ($0-$9, $$ for a literal $)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [-d] [-o FORMAT] PATTERN [FILE...]\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}
	pattern := fs.Arg(0)
	files := fs.Args()[1:]

	re, err := regex.Compile(pattern)
	if err != nil {
		fmt.Fprintf(stderr, "regrep: %v\n", err)
		return 2
	}

	if *dump {
		if err := debug.Fprint(stderr, re.Program()); err != nil {
			fmt.Fprintf(stderr, "regrep: %v\n", err)
			return 2
		}
	}

	anyMatch := false
	ok := true
	scanOne := func(name string, r *os.File) bool {
		matched, err := scan(r, re, *format, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "regrep: %s: %v\n", name, err)
			ok = false
			return false
		}
		return matched
	}

	if len(files) == 0 {
		anyMatch = scanOne("-", os.Stdin)
	} else {
		for _, name := range files {
			if name == "-" {
				anyMatch = scanOne("-", os.Stdin) || anyMatch
				continue
			}
			f, err := os.Open(name)
			if err != nil {
				fmt.Fprintf(stderr, "regrep: %s: %v\n", name, err)
				ok = false
				continue
			}
			matched := scanOne(name, f)
			f.Close()
			anyMatch = matched || anyMatch
		}
	}
	if !ok {
		return 2
	}

	if !anyMatch {
		return 1
	}
	return 0
}

// scan reads r line by line, printing every matching line (or, with
// format set, the substituted format string) to w.
func scan(r *os.File, re *regex.Regex, format string, w *os.File) (bool, error) {
	matched := false
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		idx := re.FindStringSubmatchIndex(line)
		if idx == nil {
			continue
		}
		matched = true
		if format == "" {
			fmt.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, substitute(format, line, idx))
	}
	return matched, scanner.Err()
}

// substitute expands $0-$9 in format to the corresponding capture group
// of line (using the index pairs in idx), $$ to a literal $, and passes
// any other $X through unchanged.
func substitute(format, line string, idx []int) string {
	var out strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '$' || i+1 >= len(format) {
			out.WriteByte(c)
			continue
		}
		next := format[i+1]
		if next == '$' {
			out.WriteByte('$')
			i++
			continue
		}
		if d, err := strconv.Atoi(string(next)); err == nil {
			i++
			start, end := groupBounds(idx, d)
			if start >= 0 && end >= 0 {
				out.WriteString(line[start:end])
			}
			continue
		}
		out.WriteByte(c)
	}
	return out.String()
}

func groupBounds(idx []int, group int) (int, int) {
	lo := group * 2
	if lo+1 >= len(idx) {
		return -1, -1
	}
	return idx[lo], idx[lo+1]
}
