package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chriserin/advent/internal/db"
	"github.com/chriserin/advent/internal/emit"
	"github.com/chriserin/advent/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <day>",
	Short: "Show the generations recorded for a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, rawDay string) error {
	day, err := strconv.Atoi(rawDay)
	if err != nil || day < 0 {
		return fmt.Errorf("invalid day: %s", rawDay)
	}

	p, err := loadProject()
	if err != nil {
		return err
	}
	sqlDB, err := p.openLedger(true)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	gens, err := db.GenerationsForDay(sqlDB, day)
	if err != nil {
		return err
	}
	if len(gens) == 0 {
		return fmt.Errorf("no generation recorded for day %d", day)
	}

	for i, g := range gens {
		if i > 0 {
			fmt.Fprintln(w)
		}
		ui.ShowField(w, "Test", g.TestName)
		ui.ShowField(w, "Day", strconv.Itoa(g.Day))
		ui.ShowField(w, "Source", g.Source)
		ui.ShowField(w, "Output", g.OutputPath)
		ui.ShowField(w, "Simple", fmt.Sprintf("%s  part 1 = %q  part 2 = %q",
			emit.FixtureName(g.Day, "simple"), g.Simple[0], g.Simple[1]))
		ui.ShowField(w, "Full", fmt.Sprintf("%s  part 1 = %q  part 2 = %q",
			emit.FixtureName(g.Day, "full"), g.Full[0], g.Full[1]))
		ui.ShowField(w, "Generated", g.GeneratedAt)
	}
	return nil
}
