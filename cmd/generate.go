package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chriserin/advent/internal/db"
	"github.com/chriserin/advent/internal/gen"
	"github.com/chriserin/advent/internal/ui"
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate tests for //advent:test definitions",
	Long: `Generate scans the given files and directories (default: the working
directory) for functions annotated with //advent:test and writes a
<name>_advent_test.go file beside each one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunGenerate(cmd.Context(), cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func RunGenerate(ctx context.Context, w io.Writer, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	paths, err := p.sources(args)
	if err != nil {
		return err
	}
	return p.generate(ctx, w, paths)
}

// generate runs one generation pass over paths, reports each definition and
// records successes in the ledger when the project has one.
func (p *project) generate(ctx context.Context, w io.Writer, paths []string) error {
	g, err := p.generator()
	if err != nil {
		return err
	}

	results, err := g.Run(ctx, paths)
	if err != nil {
		return err
	}

	sqlDB, err := p.openLedger(false)
	if err != nil {
		return err
	}
	if sqlDB != nil {
		defer sqlDB.Close()
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			ui.ErrLine(w, res.Err)
			failed++
			continue
		}
		ui.GenLine(w, p.rel(res.Output))
		if err := p.record(sqlDB, res); err != nil {
			return err
		}
	}

	ui.SummaryLine(w, len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d of %d definitions failed", failed, len(results))
	}
	return nil
}

func (p *project) record(sqlDB *sql.DB, res gen.Result) error {
	if sqlDB == nil {
		return nil
	}
	logger.Debug("recording generation", zap.String("test", res.TestName), zap.Int("day", res.Day))
	return db.Record(sqlDB, db.Generation{
		Source:     p.rel(res.Source),
		Day:        res.Day,
		TestName:   res.TestName,
		OutputPath: p.rel(res.Output),
		SimpleSum:  res.SimpleSum,
		FullSum:    res.FullSum,
		Simple:     res.Scenarios.Simple,
		Full:       res.Scenarios.Full,
	})
}
