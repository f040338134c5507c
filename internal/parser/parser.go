package parser

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strconv"
	"strings"
)

const (
	directivePrefix = "//advent:"
	testDirective   = "test"
	magicDirective  = "magic"
)

// ParseFile parses Go source and returns every function whose doc comment
// carries an //advent:test directive. Files without directives yield no
// definitions and no error.
func ParseFile(filename string, src []byte) ([]*Definition, error) {
	fset := token.NewFileSet()
	f, err := goparser.ParseFile(fset, filename, src, goparser.ParseComments|goparser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	var defs []*Definition
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}

		var directives []Marker
		for _, c := range fn.Doc.List {
			if m, ok := parseMarker(c); ok && m.Name == testDirective {
				directives = append(directives, m)
			}
		}
		if len(directives) == 0 {
			continue
		}

		defs = append(defs, &Definition{
			Name:       fn.Name.Name,
			Package:    f.Name.Name,
			Fset:       fset,
			Decl:       fn,
			Directives: directives,
			Markers:    bodyMarkers(f.Comments, fn.Body),
		})
	}
	return defs, nil
}

// HasDirective reports whether src mentions an //advent:test directive at all.
// It lets directory scans skip parsing most files.
func HasDirective(src []byte) bool {
	return strings.Contains(string(src), directivePrefix+testDirective)
}

func parseMarker(c *ast.Comment) (Marker, bool) {
	if !strings.HasPrefix(c.Text, directivePrefix) {
		return Marker{}, false
	}
	fields := strings.Fields(strings.TrimPrefix(c.Text, directivePrefix))
	if len(fields) == 0 {
		return Marker{}, false
	}
	return Marker{Name: fields[0], Args: fields[1:], Comment: c}, true
}

func bodyMarkers(groups []*ast.CommentGroup, body *ast.BlockStmt) []Marker {
	if body == nil {
		return nil
	}
	var markers []Marker
	for _, g := range groups {
		if g.End() < body.Lbrace || g.Pos() > body.Rbrace {
			continue
		}
		for _, c := range g.List {
			if m, ok := parseMarker(c); ok {
				m.Group = g
				markers = append(markers, m)
			}
		}
	}
	return markers
}

// day resolves the //advent:test argument to a day number.
func (d *Definition) day() (int, error) {
	if len(d.Directives) > 1 {
		return 0, d.configErrorf(d.Directives[1], "duplicate %s%s directive", directivePrefix, testDirective)
	}
	dir := d.Directives[0]
	switch {
	case len(dir.Args) == 0:
		return 0, d.configErrorf(dir, "expected day number as directive argument")
	case len(dir.Args) > 1:
		return 0, d.configErrorf(dir, "expected a single day number, found %d arguments", len(dir.Args))
	}
	n, err := strconv.ParseUint(dir.Args[0], 10, 31)
	if err != nil {
		return 0, d.configErrorf(dir, "invalid day number %q: expected a non-negative integer literal", dir.Args[0])
	}
	return int(n), nil
}
