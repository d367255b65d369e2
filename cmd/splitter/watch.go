package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/flashingpumpkin/splitter/internal/config"
	"github.com/flashingpumpkin/splitter/internal/panel"
	"github.com/flashingpumpkin/splitter/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-solve the layout whenever the layout file changes",
		Long: `Watch the layout file and print the solved layout after every change.

Rapid saves are coalesced. Errors in the file are printed and watching
continues. Press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.layoutPath()
			w, err := watch.New(path, watch.WithInterval(interval))
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			defer w.Close()

			ctx, cancel := setupSignalHandler()
			defer cancel()

			out := cmd.OutOrStdout()
			sp := newWaitSpinner(out, "watching "+w.Path())

			resolve := func() {
				sp.Stop()
				g, err := solvedGroup(cmd, opts)
				if err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				} else {
					printLayout(out, g)
					g.Close()
				}
				sp.Start()
			}

			resolve()
			defer sp.Stop()
			return w.Run(ctx, resolve)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", watch.DefaultInterval, "Minimum time between two reloads")
	return cmd
}

// waitSpinner shows a spinner on terminals and does nothing elsewhere.
type waitSpinner struct {
	s *spinner.Spinner
}

func newWaitSpinner(w io.Writer, suffix string) *waitSpinner {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return &waitSpinner{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	return &waitSpinner{s: s}
}

func (w *waitSpinner) Start() {
	if w.s != nil {
		w.s.Start()
	}
}

func (w *waitSpinner) Stop() {
	if w.s != nil {
		w.s.Stop()
	}
}

// reloadPanels reads the layout file at path on top of base and returns the
// validated panel declarations.
func reloadPanels(base *config.Config, path string) ([]panel.Decl, error) {
	fc, err := config.LoadFileConfigFrom(path)
	if err != nil {
		return nil, err
	}
	if fc == nil {
		return nil, fmt.Errorf("layout file %s: %w", path, os.ErrNotExist)
	}

	cfg := *base
	cfg.Panels = append([]panel.Decl(nil), base.Panels...)
	cfg.Apply(fc)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.Panels, nil
}
