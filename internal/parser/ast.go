package parser

import (
	"fmt"
	"go/ast"
	"go/token"
)

// Layer 1: annotated definitions lifted out of a Go file.

// Form identifies which body grammar an accepted definition used.
type Form int

const (
	FormLegacy    Form = iota + 1 // magic([2]string{...}, [2]string{...})
	FormCanonical                 // simple := ...; full := ...; //advent:magic call
)

func (f Form) String() string {
	switch f {
	case FormLegacy:
		return "legacy"
	case FormCanonical:
		return "canonical"
	}
	return fmt.Sprintf("Form(%d)", int(f))
}

// Definition is a function tagged with an //advent:test directive.
type Definition struct {
	Name       string
	Package    string
	Fset       *token.FileSet
	Decl       *ast.FuncDecl
	Directives []Marker // //advent:test lines from the doc comment
	Markers    []Marker // //advent: lines inside the body, in source order
}

// Marker is a single //advent:<name> [args...] directive comment.
type Marker struct {
	Name    string
	Args    []string
	Comment *ast.Comment
	Group   *ast.CommentGroup // set for markers inside a function body
}

func (m Marker) Pos() token.Pos { return m.Comment.Pos() }
func (m Marker) End() token.Pos { return m.Comment.End() }

// Accepted is the structure of a definition body that passed every check.
type Accepted struct {
	Def    *Definition
	Day    int
	Form   Form
	Simple *ast.CompositeLit
	Full   *ast.CompositeLit
}

// Scenarios holds the expected outputs for part 1 and part 2 of each fixture.
type Scenarios struct {
	Simple [2]string
	Full   [2]string
}

// Diagnostic reports the first structural mismatch in a definition body.
type Diagnostic struct {
	Pos     token.Position
	End     token.Position
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// ConfigError reports a missing or malformed //advent:test directive.
// Nothing can be generated for the definition it belongs to.
type ConfigError struct {
	Pos     token.Position
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}
