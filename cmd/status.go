package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chriserin/advent/internal/db"
	"github.com/chriserin/advent/internal/emit"
	"github.com/chriserin/advent/internal/gen"
	"github.com/chriserin/advent/internal/ui"
)

const (
	statusOK      = "ok"
	statusStale   = "stale"
	statusMissing = "missing"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report generated tests whose fixtures changed since generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	sqlDB, err := p.openLedger(true)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	gens, err := db.Generations(sqlDB)
	if err != nil {
		return err
	}

	counts := map[string]int{}
	for _, g := range gens {
		status, err := p.freshness(g)
		if err != nil {
			return err
		}
		counts[status]++
		ui.StatusLine(w, status, fmt.Sprintf("%s  %s", g.TestName, g.OutputPath))
	}

	fmt.Fprintf(w, "Generations: %d (%d ok, %d stale, %d missing)\n",
		len(gens), counts[statusOK], counts[statusStale], counts[statusMissing])
	return nil
}

// freshness compares a recorded generation with the tree: missing when the
// output or a fixture is gone, stale when a fixture digest changed.
func (p *project) freshness(g db.Generation) (string, error) {
	if _, err := os.Stat(filepath.Join(p.root, g.OutputPath)); errors.Is(err, os.ErrNotExist) {
		return statusMissing, nil
	}

	status := statusOK
	for kind, recorded := range map[string]string{"simple": g.SimpleSum, "full": g.FullSum} {
		data, err := os.ReadFile(p.cfg.FixturePath(p.root, emit.FixtureName(g.Day, kind)))
		if errors.Is(err, os.ErrNotExist) {
			return statusMissing, nil
		}
		if err != nil {
			return "", fmt.Errorf("reading fixture: %w", err)
		}
		if gen.Digest(data) != recorded {
			status = statusStale
		}
	}
	return status, nil
}
