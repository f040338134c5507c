package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/advent/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize adventgen in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	// config
	cfgPath := filepath.Join(p.root, configPath)
	if filepath.IsAbs(configPath) {
		cfgPath = configPath
	}
	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Fprintf(w, "%s already exists\n", p.rel(cfgPath))
	} else if errors.Is(err, os.ErrNotExist) {
		if err := p.cfg.Save(cfgPath); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s created\n", p.rel(cfgPath))
	} else {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	// inputs/ directory
	inputs := filepath.Join(p.root, p.cfg.Inputs)
	_, err = os.Stat(inputs)
	inputsExist := err == nil
	if err := os.MkdirAll(inputs, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", p.cfg.Inputs, err)
	}
	if inputsExist {
		fmt.Fprintf(w, "%s/ already exists\n", p.cfg.Inputs)
	} else {
		fmt.Fprintf(w, "%s/ created\n", p.cfg.Inputs)
	}

	// database
	_, err = os.Stat(p.ledgerPath())
	dbExists := err == nil
	sqlDB, err := db.Open(p.ledgerPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", p.cfg.Database)
	} else {
		fmt.Fprintf(w, "%s created\n", p.cfg.Database)
	}

	// gitignore
	msgs, err := ensureGitignore(filepath.Join(p.root, ".gitignore"), ledgerEntry(p.cfg.Database))
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

// ledgerEntry ignores the ledger's directory, which also holds the sqlite
// WAL and shared-memory files.
func ledgerEntry(database string) string {
	dir := filepath.ToSlash(filepath.Dir(database))
	if dir == "." {
		return filepath.ToSlash(database) + "*"
	}
	return dir + "/"
}

func ensureGitignore(path, entry string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
