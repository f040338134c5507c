package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/advent/internal/gen"
	"github.com/chriserin/advent/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Validate //advent:test definitions without writing tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func RunCheck(w io.Writer, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	paths, err := p.sources(args)
	if err != nil {
		return err
	}

	g := &gen.Generator{Root: p.root, Config: p.cfg, Logger: logger}

	total, failed := 0, 0
	for _, path := range paths {
		results, err := g.Check(path)
		if err != nil {
			return err
		}
		for _, res := range results {
			total++
			if res.Err != nil {
				ui.ErrLine(w, res.Err)
				failed++
				continue
			}
			ui.OkLine(w, fmt.Sprintf("%s  %s (day %d)", p.rel(res.Source), res.Name, res.Day))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d definitions failed", failed, total)
	}
	return nil
}
