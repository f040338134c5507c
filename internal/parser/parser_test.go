package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_FindsAnnotatedFunctions(t *testing.T) {
	src := []byte(`//go:build advent

package days

//advent:test 1
func dec01() {
	magic([2]string{"24000", "45000"}, [2]string{"69289", "205615"})
}

func helper() {}

// dec02 has a regular doc line too.
//
//advent:test 2
func dec02() {
	simple := [2]string{"15", "12"}
	full := [2]string{"11150", "8295"}
	//advent:magic
	magic(simple, full)
}
`)
	defs, err := ParseFile("days.go", src)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "dec01", defs[0].Name)
	assert.Equal(t, "days", defs[0].Package)
	require.Len(t, defs[0].Directives, 1)
	assert.Equal(t, []string{"1"}, defs[0].Directives[0].Args)
	assert.Empty(t, defs[0].Markers)

	assert.Equal(t, "dec02", defs[1].Name)
	require.Len(t, defs[1].Markers, 1)
	assert.Equal(t, "magic", defs[1].Markers[0].Name)
	assert.Empty(t, defs[1].Markers[0].Args)
}

func TestParseFile_NoDirectives(t *testing.T) {
	defs, err := ParseFile("plain.go", []byte("package days\n\nfunc f() {}\n"))
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestParseFile_IgnoresOtherDocDirectives(t *testing.T) {
	defs, err := ParseFile("days.go", []byte("package days\n\n//advent:other 1\nfunc f() {}\n"))
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestParseFile_SyntaxError(t *testing.T) {
	_, err := ParseFile("broken.go", []byte("package days\n\nfunc f( {\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.go:3")
}

func TestParseFile_MarkersScopedToBody(t *testing.T) {
	src := []byte(`package days

//advent:test 3
func dec03() {
	//advent:magic one
	//advent:magic
	magic(simple, full)
}

//advent:magic
var stray = 1
`)
	defs, err := ParseFile("days.go", src)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	require.Len(t, defs[0].Markers, 2)
	assert.Equal(t, []string{"one"}, defs[0].Markers[0].Args)
	assert.Equal(t, 5, defs[0].Fset.Position(defs[0].Markers[0].Pos()).Line)
	assert.Equal(t, 6, defs[0].Fset.Position(defs[0].Markers[1].Pos()).Line)
}

func TestHasDirective(t *testing.T) {
	assert.True(t, HasDirective([]byte("//advent:test 4\nfunc f() {}")))
	assert.False(t, HasDirective([]byte("//advent:magic\n")))
	assert.False(t, HasDirective([]byte("package days")))
}
