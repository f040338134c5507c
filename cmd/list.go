package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/advent/internal/db"
	"github.com/chriserin/advent/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded generations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func RunList(w io.Writer) error {
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
	if len(gens) == 0 {
		fmt.Fprintln(w, "no generations recorded")
		return nil
	}

	// Compute column widths
	nameWidth, sourceWidth := 0, 0
	for _, g := range gens {
		nameWidth = max(nameWidth, len(g.TestName))
		sourceWidth = max(sourceWidth, len(g.Source))
	}

	for _, g := range gens {
		ui.ListRow(w, g.Day, g.TestName, g.Source, g.OutputPath, nameWidth, sourceWidth)
	}
	return nil
}
