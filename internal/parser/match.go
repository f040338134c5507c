package parser

import (
	"fmt"
	"go/ast"
	"go/token"
)

const (
	simpleName = "simple"
	fullName   = "full"
)

// Match validates a definition body against the accepted grammar.
//
// A body is either a single legacy call
//
//	magic([2]string{"a", "b"}, [2]string{"c", "d"})
//
// or two bindings followed by a marked call
//
//	simple := [2]string{"a", "b"}
//	full := [2]string{"c", "d"}
//	//advent:magic
//	magic(simple, full)
//
// Checks run in a fixed order and the first failure is returned. The error is
// a *ConfigError when the //advent:test directive is unusable and a
// *Diagnostic for any structural mismatch.
func Match(def *Definition) (*Accepted, error) {
	day, err := def.day()
	if err != nil {
		return nil, err
	}

	m := &matcher{def: def}
	if d := m.signature(); d != nil {
		return nil, d
	}

	body := def.Decl.Body
	var (
		form         Form
		simple, full *ast.CompositeLit
		d            *Diagnostic
	)
	switch n := len(body.List); {
	case n == 1:
		form = FormLegacy
		simple, full, d = m.legacy(body.List[0])
	case n == 3:
		form = FormCanonical
		simple, full, d = m.canonical(body.List)
	case n > 3:
		return nil, m.errorf(body.List[3], "unexpected statement after magic call")
	default:
		return nil, m.errorf(body, "expected exactly one statement or three statements")
	}
	if d != nil {
		return nil, d
	}

	return &Accepted{Def: def, Day: day, Form: form, Simple: simple, Full: full}, nil
}

type matcher struct {
	def *Definition
}

func (m *matcher) errorf(n ast.Node, format string, args ...any) *Diagnostic {
	return m.errorAt(n.Pos(), n.End(), format, args...)
}

func (m *matcher) errorAt(pos, end token.Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Pos:     m.def.Fset.Position(pos),
		End:     m.def.Fset.Position(end),
		Message: fmt.Sprintf(format, args...),
	}
}

func (d *Definition) configErrorf(n ast.Node, format string, args ...any) *ConfigError {
	return &ConfigError{Pos: d.Fset.Position(n.Pos()), Message: fmt.Sprintf(format, args...)}
}

func (m *matcher) signature() *Diagnostic {
	fn := m.def.Decl
	switch {
	case fn.Recv != nil:
		return m.errorf(fn.Recv, "expected a function, not a method")
	case fn.Type.TypeParams.NumFields() > 0:
		return m.errorf(fn.Type.TypeParams, "expected no type parameters")
	case fn.Type.Params.NumFields() > 0:
		return m.errorf(fn.Type.Params, "expected no arguments")
	case fn.Type.Results.NumFields() > 0:
		return m.errorf(fn.Type.Results, "expected no return type")
	case fn.Body == nil:
		return m.errorf(fn, "expected function body")
	case ast.IsExported(fn.Name.Name):
		// The generated test is named Test + the capitalized name.
		return m.errorf(fn.Name, "expected an unexported function name")
	}
	return nil
}

func (m *matcher) legacy(stmt ast.Stmt) (simple, full *ast.CompositeLit, d *Diagnostic) {
	call, d := m.magicCall(stmt)
	if d != nil {
		return nil, nil, d
	}
	if len(m.def.Markers) > 0 {
		mk := m.def.Markers[0]
		return nil, nil, m.errorf(mk, "unexpected %s in single-statement form", mk.Comment.Text)
	}
	if d := m.arity(call); d != nil {
		return nil, nil, d
	}
	if simple, d = m.pair(call.Args[0]); d != nil {
		return nil, nil, d
	}
	if full, d = m.pair(call.Args[1]); d != nil {
		return nil, nil, d
	}
	return simple, full, nil
}

func (m *matcher) canonical(stmts []ast.Stmt) (simple, full *ast.CompositeLit, d *Diagnostic) {
	bound := make(map[string]*ast.CompositeLit, 2)
	for _, stmt := range stmts[:2] {
		name, lit, d := m.binding(stmt)
		if d != nil {
			return nil, nil, d
		}
		if _, dup := bound[name.Name]; dup {
			return nil, nil, m.errorf(name, "duplicate binding %s", name.Name)
		}
		bound[name.Name] = lit
	}

	call, d := m.magicCall(stmts[2])
	if d != nil {
		return nil, nil, d
	}
	if d := m.marker(stmts[1], stmts[2]); d != nil {
		return nil, nil, d
	}
	if d := m.arity(call); d != nil {
		return nil, nil, d
	}
	for i, want := range []string{simpleName, fullName} {
		if d := m.reference(call.Args[i], want, i+1); d != nil {
			return nil, nil, d
		}
	}
	return bound[simpleName], bound[fullName], nil
}

func (m *matcher) magicCall(stmt ast.Stmt) (*ast.CallExpr, *Diagnostic) {
	es, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return nil, m.errorf(stmt, "expected expression")
	}
	call, ok := es.X.(*ast.CallExpr)
	if !ok {
		return nil, m.errorf(es.X, "expected call to magic(simple, full)")
	}
	if !isFuncName(call.Fun) {
		return nil, m.errorf(call.Fun, "expected call to magic(simple, full)")
	}
	return call, nil
}

func (m *matcher) arity(call *ast.CallExpr) *Diagnostic {
	if len(call.Args) != 2 {
		return m.errorAt(call.Lparen, call.Rparen+1, "expected exactly two arguments")
	}
	if call.Ellipsis.IsValid() {
		return m.errorAt(call.Ellipsis, call.Ellipsis+3, "unexpected variadic argument")
	}
	return nil
}

// marker checks that exactly one bare //advent:magic sits on its own line
// after the last binding, in the comment block directly above the call.
func (m *matcher) marker(prev, call ast.Stmt) *Diagnostic {
	var found bool
	for _, mk := range m.def.Markers {
		switch {
		case mk.Name != magicDirective:
			return m.errorf(mk, "unknown directive %s", mk.Comment.Text)
		case !m.precedes(mk, prev, call):
			return m.errorf(mk, "%s%s must immediately precede the magic call", directivePrefix, magicDirective)
		case found:
			return m.errorf(mk, "duplicate %s%s marker", directivePrefix, magicDirective)
		case len(mk.Args) > 0:
			return m.errorf(mk, "unexpected arguments to %s%s marker", directivePrefix, magicDirective)
		}
		found = true
	}
	if !found {
		return m.errorf(call, "expected %s%s marker on magic call", directivePrefix, magicDirective)
	}
	return nil
}

func (m *matcher) precedes(mk Marker, prev, call ast.Stmt) bool {
	if mk.Pos() < prev.End() || mk.Pos() > call.Pos() {
		return false
	}
	if m.line(mk.Pos()) <= m.line(prev.End()) {
		return false
	}
	return m.line(mk.Group.End()) == m.line(call.Pos())-1
}

func (m *matcher) line(p token.Pos) int {
	return m.def.Fset.Position(p).Line
}

func (m *matcher) binding(stmt ast.Stmt) (*ast.Ident, *ast.CompositeLit, *Diagnostic) {
	as, ok := stmt.(*ast.AssignStmt)
	if !ok || as.Tok != token.DEFINE {
		return nil, nil, m.errorf(stmt, "expected binding of the form simple := [2]string{...}")
	}
	if len(as.Lhs) != 1 || len(as.Rhs) != 1 {
		return nil, nil, m.errorf(as, "expected a single name bound to a single value")
	}
	name, ok := as.Lhs[0].(*ast.Ident)
	if !ok || (name.Name != simpleName && name.Name != fullName) {
		return nil, nil, m.errorf(as.Lhs[0], "expected binding named %s or %s", simpleName, fullName)
	}
	lit, d := m.pair(as.Rhs[0])
	if d != nil {
		return nil, nil, d
	}
	return name, lit, nil
}

func (m *matcher) reference(arg ast.Expr, want string, pos int) *Diagnostic {
	switch a := arg.(type) {
	case *ast.Ident:
		if a.Name != want {
			return m.errorf(a, "expected %s as argument %d, found %s", want, pos, a.Name)
		}
		return nil
	case *ast.CompositeLit:
		return m.errorf(a, "expected reference to %s, not an array literal", want)
	}
	return m.errorf(arg, "expected reference to %s", want)
}

// pair accepts a [2]string, []string or [...]string literal holding exactly
// two string literals.
func (m *matcher) pair(expr ast.Expr) (*ast.CompositeLit, *Diagnostic) {
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return nil, m.errorf(expr, "expected array literal")
	}
	arr, ok := lit.Type.(*ast.ArrayType)
	if !ok {
		return nil, m.errorf(expr, "expected array literal")
	}
	if !isStringArray(arr) {
		return nil, m.errorf(arr, "expected [2]string array")
	}
	for _, elt := range lit.Elts {
		if b, ok := elt.(*ast.BasicLit); !ok || b.Kind != token.STRING {
			return nil, m.errorf(elt, "expected string literal")
		}
	}
	if len(lit.Elts) != 2 {
		return nil, m.errorf(lit, "expected exactly two elements")
	}
	return lit, nil
}

func isStringArray(arr *ast.ArrayType) bool {
	if elt, ok := arr.Elt.(*ast.Ident); !ok || elt.Name != "string" {
		return false
	}
	switch n := arr.Len.(type) {
	case nil, *ast.Ellipsis:
		return true
	case *ast.BasicLit:
		return n.Kind == token.INT && n.Value == "2"
	}
	return false
}

func isFuncName(fun ast.Expr) bool {
	switch f := fun.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := f.X.(*ast.Ident)
		return ok
	}
	return false
}
