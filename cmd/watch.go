package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chriserin/advent/internal/ui"
	"github.com/chriserin/advent/internal/watch"
)

var debounceFlag time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate tests whenever annotated sources or fixtures change",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunWatch(cmd.Context(), cmd.OutOrStdout(), debounceFlag)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&debounceFlag, "debounce", 200*time.Millisecond, "Quiet period before regenerating")
	rootCmd.AddCommand(watchCmd)
}

// RunWatch generates once, then regenerates on every batch of changes until
// ctx is cancelled. Failed definitions are reported and do not stop the loop.
func RunWatch(ctx context.Context, w io.Writer, debounce time.Duration) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	pass := func(ctx context.Context) []string {
		paths, err := p.sources(nil)
		if err != nil {
			ui.ErrLine(w, err)
			return nil
		}
		if err := p.generate(ctx, w, paths); err != nil {
			logger.Debug("generation pass finished with failures", zap.Error(err))
		}
		return paths
	}

	dirs := p.watchDirs(pass(ctx))
	if len(dirs) == 0 {
		return fmt.Errorf("nothing to watch under %s", p.root)
	}

	watcher := &watch.Watcher{
		Dirs:     dirs,
		Debounce: debounce,
		Logger:   logger,
		OnChange: func(ctx context.Context, changed []string) {
			logger.Info("regenerating", zap.Strings("changed", changed))
			pass(ctx)
		},
	}
	return watcher.Run(ctx)
}

// watchDirs is the fixture directory plus every directory holding an
// annotated source.
func (p *project) watchDirs(sources []string) []string {
	seen := map[string]bool{}
	inputs := filepath.Join(p.root, p.cfg.Inputs)
	if _, err := os.Stat(inputs); !errors.Is(err, os.ErrNotExist) {
		seen[inputs] = true
	}
	for _, src := range sources {
		seen[filepath.Dir(src)] = true
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
