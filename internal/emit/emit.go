// Package emit renders the Go test file for an accepted definition.
package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// Procedure is everything needed to render one generated test.
type Procedure struct {
	Day          int
	Name         string // declared name of the annotated function
	Package      string
	Source       string // base name of the annotated file, for the header
	SolverImport string // import path of the solver package for Day
	Simple       Fixture
	Full         Fixture
}

// Fixture is a fixture file's content and the expected output per part.
type Fixture struct {
	Input    string
	Expected [2]string
}

// DayString is the zero-padded two-digit day.
func (p Procedure) DayString() string {
	return fmt.Sprintf("%02d", p.Day)
}

// SimpleFixture is the file name of the small example input.
func (p Procedure) SimpleFixture() string {
	return FixtureName(p.Day, "simple")
}

// FullFixture is the file name of the full puzzle input.
func (p Procedure) FullFixture() string {
	return FixtureName(p.Day, "full")
}

// SolverPackage is the package name the generated file calls Run on.
func (p Procedure) SolverPackage() string {
	return SolverPackage(p.Day)
}

// TestName is the generated test function name. Name is unexported, so
// the result never equals it.
func (p Procedure) TestName() string {
	r, size := utf8.DecodeRuneInString(p.Name)
	return "Test" + string(unicode.ToUpper(r)) + p.Name[size:]
}

// ConstPrefix is the unexported prefix for the fixture constants.
func (p Procedure) ConstPrefix() string {
	r, size := utf8.DecodeRuneInString(p.Name)
	return string(unicode.ToLower(r)) + p.Name[size:]
}

// FixtureName returns "<NN>.<kind>.txt".
func FixtureName(day int, kind string) string {
	return fmt.Sprintf("%02d.%s.txt", day, kind)
}

// SolverPackage returns "day<NN>".
func SolverPackage(day int) string {
	return fmt.Sprintf("day%02d", day)
}

// OutputName returns the generated file name for a declared function name,
// e.g. "dec01" -> "dec01_advent_test.go".
func OutputName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String() + "_advent_test.go"
}

var testTemplate = template.Must(template.New("test").Funcs(template.FuncMap{
	"literal": literal,
	"quote":   strconv.Quote,
}).Parse(`// Code generated by adventgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"testing"

	"{{.SolverImport}}"
)

const {{.ConstPrefix}}SimpleInput = {{literal .Simple.Input}}

const {{.ConstPrefix}}FullInput = {{literal .Full.Input}}

func {{.TestName}}(t *testing.T) {
	fixtures := []struct {
		name     string
		input    string
		expected [2]string
	}{
		{ {{quote .SimpleFixture}}, {{.ConstPrefix}}SimpleInput, [2]string{ {{quote (index .Simple.Expected 0)}}, {{quote (index .Simple.Expected 1)}} } },
		{ {{quote .FullFixture}}, {{.ConstPrefix}}FullInput, [2]string{ {{quote (index .Full.Expected 0)}}, {{quote (index .Full.Expected 1)}} } },
	}

	for part := 1; part <= 2; part++ {
		for _, fixture := range fixtures {
			expected := fixture.expected[part-1]
			actual, err := {{.SolverPackage}}.Run(fixture.input, part)
			if err != nil {
				t.Fatalf("{{.SolverPackage}}.Run(%s, %d): %v", fixture.name, part, err)
			}
			if actual != expected {
				t.Errorf("{{.SolverPackage}}.Run(%s, %d) = %q, want %q", fixture.name, part, actual, expected)
			}
		}
	}
}
`))

// Render produces the gofmt-formatted test file for p. Rendering is a pure
// function of p.
func Render(p Procedure) ([]byte, error) {
	var buf bytes.Buffer
	if err := testTemplate.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", p.TestName(), err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", p.TestName(), err)
	}
	return out, nil
}

// literal prefers a raw string so fixtures stay readable in the generated
// file. gofmt drops carriage returns from raw strings, so those fall back to
// an interpreted literal along with backquotes and invalid UTF-8.
func literal(s string) string {
	if strings.ContainsAny(s, "`\r\ufeff\x00") || !utf8.ValidString(s) {
		return strconv.Quote(s)
	}
	return "`" + s + "`"
}
