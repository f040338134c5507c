// Package gen runs generation passes: annotated source in, test files out.
package gen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chriserin/advent/internal/config"
	"github.com/chriserin/advent/internal/emit"
	"github.com/chriserin/advent/internal/parser"
)

// Generator turns annotated definitions into generated test files.
type Generator struct {
	Root   string // project root; fixtures are resolved against it
	Module string // module path used for solver imports
	Config *config.Config
	Logger *zap.Logger
}

// Result is the outcome of one annotated definition.
type Result struct {
	Source    string
	Name      string
	TestName  string
	Day       int
	Output    string // written file; empty unless Err is nil
	Scenarios parser.Scenarios
	SimpleSum string
	FullSum   string
	Err       error
}

func (g *Generator) log() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// Run generates every file in paths, at most Config.Parallel at a time.
// Definition failures are reported through Result.Err and never stop other
// definitions; the returned error is reserved for unreadable or unparsable
// source files.
func (g *Generator) Run(ctx context.Context, paths []string) ([]Result, error) {
	perFile := make([][]Result, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.Config.Parallel, 1))
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results, err := g.File(path)
			if err != nil {
				return err
			}
			perFile[i] = results
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []Result
	for _, results := range perFile {
		all = append(all, results...)
	}
	return all, nil
}

// File generates one test file per annotated definition in path.
func (g *Generator) File(path string) ([]Result, error) {
	defs, err := g.definitions(path)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(defs))
	for _, def := range defs {
		res := g.generate(path, def)
		if res.Err != nil {
			g.log().Debug("definition rejected", zap.String("source", path), zap.String("name", def.Name), zap.Error(res.Err))
		} else {
			g.log().Info("generated test", zap.String("source", path), zap.String("test", res.TestName), zap.String("output", res.Output))
		}
		results = append(results, res)
	}
	return results, nil
}

// Check matches every annotated definition in path without reading fixtures
// or writing output.
func (g *Generator) Check(path string) ([]Result, error) {
	defs, err := g.definitions(path)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(defs))
	for _, def := range defs {
		res := Result{Source: path, Name: def.Name}
		if m, err := parser.Match(def); err != nil {
			res.Err = err
		} else {
			res.Day = m.Day
			res.Scenarios = parser.Extract(m)
		}
		results = append(results, res)
	}
	return results, nil
}

func (g *Generator) definitions(path string) ([]*parser.Definition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !parser.HasDirective(src) {
		return nil, nil
	}
	defs, err := parser.ParseFile(path, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return defs, nil
}

func (g *Generator) generate(path string, def *parser.Definition) Result {
	res := Result{Source: path, Name: def.Name}

	m, err := parser.Match(def)
	if err != nil {
		res.Err = err
		return res
	}
	res.Day = m.Day
	res.Scenarios = parser.Extract(m)

	p := emit.Procedure{
		Day:          m.Day,
		Name:         def.Name,
		Package:      def.Package,
		Source:       filepath.Base(path),
		SolverImport: g.Config.SolverImport(g.Module, m.Day),
	}
	res.TestName = p.TestName()

	simple, err := g.fixture(p.SimpleFixture())
	if err != nil {
		res.Err = err
		return res
	}
	full, err := g.fixture(p.FullFixture())
	if err != nil {
		res.Err = err
		return res
	}
	p.Simple = emit.Fixture{Input: string(simple), Expected: res.Scenarios.Simple}
	p.Full = emit.Fixture{Input: string(full), Expected: res.Scenarios.Full}

	out, err := emit.Render(p)
	if err != nil {
		res.Err = err
		return res
	}

	output := filepath.Join(filepath.Dir(path), emit.OutputName(def.Name))
	if err := writeFile(output, out); err != nil {
		res.Err = err
		return res
	}

	res.Output = output
	res.SimpleSum = Digest(simple)
	res.FullSum = Digest(full)
	return res
}

func (g *Generator) fixture(name string) ([]byte, error) {
	path := g.Config.FixturePath(g.Root, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	return data, nil
}

// Digest is the hex sha256 of a fixture, used to detect stale generations.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// writeFile replaces path atomically so a failed write never leaves a
// truncated test behind.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".adventgen-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Scan walks root for non-test Go files that carry an //advent:test
// directive. Hidden, underscore-prefixed, vendor and testdata directories
// are skipped.
func Scan(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if parser.HasDirective(src) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}
