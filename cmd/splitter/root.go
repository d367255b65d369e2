// Package main provides the CLI entry point for splitter.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/flashingpumpkin/splitter/internal/config"
	"github.com/flashingpumpkin/splitter/internal/diag"
	"github.com/flashingpumpkin/splitter/internal/panel"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// defaultContainer is the container length used when neither a flag, the
// layout file nor a terminal provides one.
const defaultContainer = 80

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	workingDir string
	configFile string
	width      float64
	direction  string
	theme      string
	watch      bool
	remember   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "splitter",
		Short: "Resizable split-pane layouts for the terminal",
		Long: `Splitter lays out a row or column of panels from declared sizes and
min/max constraints, and lets you resize them by dragging the dividers with
the mouse or moving them with the keyboard.

Run without a subcommand to open the interactive layout. The other commands
solve, drag and check a layout without a UI.

LAYOUT FILE

Panels are declared in a TOML (or YAML) file. By default, splitter looks for
.splitter/layout.toml in the working directory. Use --config to specify a
different path and 'splitter init' to create a commented starting point.`,
		Args:         cobra.NoArgs,
		Version:      "0.1.0",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.workingDir, "working-dir", "d", ".", "Working directory containing .splitter/layout.toml")
	pf.StringVarP(&opts.configFile, "config", "c", "", "Path to layout file (default: .splitter/layout.toml)")
	pf.Float64VarP(&opts.width, "width", "w", 0, "Container length in cells (default: layout file, then terminal size)")
	pf.StringVar(&opts.direction, "direction", "", "Panel axis, horizontal or vertical (overrides the layout file)")
	pf.StringVar(&opts.theme, "theme", "", "Colour theme: auto, dark, light (overrides the layout file)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the layout file when it changes")
	cmd.Flags().BoolVar(&opts.remember, "remember", false, "Restore the panel sizes of the last run and save them on exit")

	cmd.AddCommand(
		newInitCmd(opts),
		newSolveCmd(opts),
		newDragCmd(opts),
		newStepCmd(opts),
		newToggleCmd(opts),
		newCheckCmd(opts),
		newWatchCmd(opts),
		newResetCmd(opts),
	)
	return cmd
}

// load reads the layout and applies the flag overrides.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.workingDir, o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	if o.direction != "" {
		cfg.Direction = o.direction
	}
	if o.theme != "" {
		cfg.Theme = o.theme
	}
	if o.width != 0 {
		cfg.Container = o.width
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// layoutPath returns the layout file the options point at, whether or not it exists.
func (o *rootOptions) layoutPath() string {
	if o.configFile != "" {
		return o.configFile
	}
	return config.DefaultLayoutPath(o.workingDir)
}

// containerSize picks the container length: the flag or layout file value,
// then the terminal extent along the panel axis.
func containerSize(cfg *config.Config, fd int) float64 {
	if cfg.Container > 0 {
		return cfg.Container
	}
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			if cfg.Direction == config.Vertical {
				return float64(h)
			}
			return float64(w)
		}
	}
	return defaultContainer
}

// newGroup builds the configured panel group, printing diagnostics to errOut
// and collapse changes to out.
func newGroup(cfg *config.Config, out, errOut io.Writer) (*panel.Group, error) {
	opts := append(cfg.GroupOptions(),
		panel.WithReporter(diag.NewWriter(errOut)),
		panel.WithCollapseHandler(func(i int, collapsed bool) {
			state := "expanded"
			if collapsed {
				state = "collapsed"
			}
			_, _ = fmt.Fprintf(out, "%s %s\n", cfg.Panels[i].Name(), state)
		}),
	)
	return panel.NewGroup(cfg.Panels, opts...)
}

// solvedGroup loads the layout and sizes it to the container.
func solvedGroup(cmd *cobra.Command, opts *rootOptions) (*panel.Group, error) {
	cfg, err := opts.load()
	if err != nil {
		return nil, err
	}
	g, err := newGroup(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	g.SetContainerSize(containerSize(cfg, int(os.Stdout.Fd())))
	return g, nil
}
