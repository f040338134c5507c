// Package config loads adventgen.yaml and resolves module-relative paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the project root.
const FileName = "adventgen.yaml"

// Config controls where fixtures, solvers and the ledger live.
type Config struct {
	// Inputs is the fixture directory, relative to the project root.
	Inputs string `yaml:"inputs"`
	// Solvers is the directory holding the day<NN> packages, relative to the module root.
	Solvers string `yaml:"solvers"`
	// Module overrides the module path read from go.mod.
	Module string `yaml:"module,omitempty"`
	// Database is the generation ledger, relative to the project root.
	Database string `yaml:"database"`
	// Parallel bounds how many files are generated at once.
	Parallel int `yaml:"parallel"`
}

func Default() *Config {
	return &Config{
		Inputs:   "inputs",
		Solvers:  "days",
		Database: ".adventgen/adventgen.db",
		Parallel: 4,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ModulePath returns the configured module path, falling back to the module
// directive of root/go.mod.
func (c *Config) ModulePath(root string) (string, error) {
	if c.Module != "" {
		return c.Module, nil
	}
	gomod := filepath.Join(root, "go.mod")
	data, err := os.ReadFile(gomod)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", gomod, err)
	}
	mod := modfile.ModulePath(data)
	if mod == "" {
		return "", fmt.Errorf("%s has no module directive", gomod)
	}
	return mod, nil
}

// SolverImport returns the import path of the solver package for day.
func (c *Config) SolverImport(module string, day int) string {
	return path.Join(module, filepath.ToSlash(c.Solvers), fmt.Sprintf("day%02d", day))
}

// FixturePath returns root/<inputs>/<name>.
func (c *Config) FixturePath(root, name string) string {
	return filepath.Join(root, c.Inputs, name)
}
