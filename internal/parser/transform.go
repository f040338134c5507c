package parser

import (
	"fmt"
	"go/ast"
	"strconv"
)

// Extract projects an accepted match onto the unescaped literal values.
// Part 1 is the first element in source order, part 2 the second.
func Extract(m *Accepted) Scenarios {
	return Scenarios{
		Simple: values(m.Simple),
		Full:   values(m.Full),
	}
}

func values(lit *ast.CompositeLit) [2]string {
	var out [2]string
	for i := range out {
		out[i] = unquote(lit.Elts[i].(*ast.BasicLit).Value)
	}
	return out
}

// unquote panics on malformed input; go/parser never produces a STRING
// literal that strconv rejects.
func unquote(raw string) string {
	s, err := strconv.Unquote(raw)
	if err != nil {
		panic(fmt.Sprintf("parser: string literal %s: %v", raw, err))
	}
	return s
}
