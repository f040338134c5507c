package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/advent/internal/db"
)

const daysSource = `//go:build advent

package days

import "example.com/aoc"

//advent:test 1
func dec01() {
	simple := [2]string{"24000", "45000"}
	full := [2]string{"69289", "205615"}
	//advent:magic
	aoc.Magic(simple, full)
}
`

const badDefinition = `
//advent:test 2
func dec02() {
	magic([2]string{1, 2, 3}, [2]string{"c", "d"})
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// setupProject lays out a module with one annotated day and its fixtures in
// the working directory.
func setupProject(t *testing.T) {
	t.Helper()
	writeFile(t, "go.mod", "module example.com/aoc\n\ngo 1.25\n")
	writeFile(t, "inputs/01.simple.txt", "1000\n\n2000\n")
	writeFile(t, "inputs/01.full.txt", "3000\n")
	writeFile(t, "days/days.go", daysSource)
}

func runGenerate(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunGenerate(context.Background(), &buf, args))
	return buf.String()
}

func TestGenerate_WritesTest(t *testing.T) {
	inTempDir(t)
	setupProject(t)

	out := runGenerate(t)

	assert.Contains(t, out, "gen  days/dec01_advent_test.go")
	assert.Contains(t, out, "generated 1 of 1 definitions")

	data, err := os.ReadFile("days/dec01_advent_test.go")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"example.com/aoc/days/day01"`)
	assert.Contains(t, string(data), "func TestDec01(t *testing.T) {")
}

func TestGenerate_ExplicitPaths(t *testing.T) {
	inTempDir(t)
	setupProject(t)
	writeFile(t, "other/days.go", daysSource)

	out := runGenerate(t, "days/days.go")

	assert.Contains(t, out, "generated 1 of 1 definitions")
	assert.FileExists(t, "days/dec01_advent_test.go")
	assert.NoFileExists(t, "other/dec01_advent_test.go")
}

func TestGenerate_DirectoryArgument(t *testing.T) {
	inTempDir(t)
	setupProject(t)
	writeFile(t, "other/days.go", daysSource)

	runGenerate(t, "other")

	assert.FileExists(t, "other/dec01_advent_test.go")
	assert.NoFileExists(t, "days/dec01_advent_test.go")
}

func TestGenerate_RecordsInLedger(t *testing.T) {
	inTempDir(t)
	runInit(t)
	setupProject(t)

	runGenerate(t)

	sqlDB, err := db.Open(".adventgen/adventgen.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	gens, err := db.Generations(sqlDB)
	require.NoError(t, err)
	require.Len(t, gens, 1)
	assert.Equal(t, "days/days.go", gens[0].Source)
	assert.Equal(t, "days/dec01_advent_test.go", gens[0].OutputPath)
	assert.Equal(t, "TestDec01", gens[0].TestName)
	assert.Equal(t, [2]string{"69289", "205615"}, gens[0].Full)
}

func TestGenerate_WithoutLedger(t *testing.T) {
	inTempDir(t)
	setupProject(t)

	runGenerate(t)

	assert.NoDirExists(t, ".adventgen")
}

func TestGenerate_ReportsFailures(t *testing.T) {
	inTempDir(t)
	setupProject(t)
	writeFile(t, "days/days.go", daysSource+badDefinition)

	var buf bytes.Buffer
	err := RunGenerate(context.Background(), &buf, nil)

	require.EqualError(t, err, "1 of 2 definitions failed")
	out := buf.String()
	assert.Contains(t, out, "gen  days/dec01_advent_test.go")
	assert.Contains(t, out, "days.go:17:18: expected string literal")
	assert.Contains(t, out, "generated 1 of 2 definitions")
	assert.NoFileExists(t, "days/dec02_advent_test.go")
}

func TestGenerate_MissingFixture(t *testing.T) {
	inTempDir(t)
	setupProject(t)
	require.NoError(t, os.Remove("inputs/01.full.txt"))

	var buf bytes.Buffer
	err := RunGenerate(context.Background(), &buf, nil)

	require.Error(t, err)
	assert.Contains(t, buf.String(), "01.full.txt")
	assert.NoFileExists(t, "days/dec01_advent_test.go")
}

func TestGenerate_ConfigMovesFixtures(t *testing.T) {
	inTempDir(t)
	setupProject(t)
	require.NoError(t, os.Rename("inputs", "fixtures"))
	writeFile(t, "adventgen.yaml", "inputs: fixtures\nsolvers: solutions\n")

	runGenerate(t)

	data, err := os.ReadFile("days/dec01_advent_test.go")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"example.com/aoc/solutions/day01"`)
}

func TestGenerate_RequiresGoMod(t *testing.T) {
	inTempDir(t)
	setupProject(t)
	require.NoError(t, os.Remove("go.mod"))

	var buf bytes.Buffer
	err := RunGenerate(context.Background(), &buf, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "go.mod")
}

func TestGenerate_NothingAnnotated(t *testing.T) {
	inTempDir(t)
	writeFile(t, "go.mod", "module example.com/aoc\n")
	writeFile(t, "main.go", "package main\n")

	out := runGenerate(t)

	assert.Contains(t, out, "generated 0 of 0 definitions")
}
