package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chriserin/advent/internal/config"
	"github.com/chriserin/advent/internal/db"
	"github.com/chriserin/advent/internal/gen"
)

var errNotInitialized = errors.New("run `adventgen init` first")

// project is the working directory together with its loaded config.
type project struct {
	root string
	cfg  *config.Config
}

func loadProject() (*project, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	path := configPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return &project{root: root, cfg: cfg}, nil
}

func (p *project) generator() (*gen.Generator, error) {
	module, err := p.cfg.ModulePath(p.root)
	if err != nil {
		return nil, err
	}
	return &gen.Generator{Root: p.root, Module: module, Config: p.cfg, Logger: logger}, nil
}

func (p *project) ledgerPath() string {
	return filepath.Join(p.root, p.cfg.Database)
}

// openLedger opens the generation ledger. A project that never ran init has
// no ledger: required callers get errNotInitialized, others a nil handle.
func (p *project) openLedger(required bool) (*sql.DB, error) {
	if _, err := os.Stat(p.ledgerPath()); errors.Is(err, os.ErrNotExist) {
		if required {
			return nil, errNotInitialized
		}
		return nil, nil
	}
	sqlDB, err := db.Open(p.ledgerPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return sqlDB, nil
}

// sources resolves command arguments to annotated files. No arguments scans
// the whole project; directories are scanned; files are taken as given.
func (p *project) sources(args []string) ([]string, error) {
	if len(args) == 0 {
		return gen.Scan(p.root)
	}

	var paths []string
	for _, arg := range args {
		if !filepath.IsAbs(arg) {
			arg = filepath.Join(p.root, arg)
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := gen.Scan(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

// rel shortens path for display and the ledger.
func (p *project) rel(path string) string {
	if r, err := filepath.Rel(p.root, path); err == nil {
		return r
	}
	return path
}
