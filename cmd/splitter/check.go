package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/flashingpumpkin/splitter/internal/diag"
	"github.com/flashingpumpkin/splitter/internal/panel"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		at     []float64
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a layout and report sizing diagnostics",
		Long: `Parse the layout file, solve it and print any sizing diagnostics.

Malformed sizes and inconsistent declarations are errors. Sums that do not
fill the container, bare numbers read as pixels and unsatisfiable min/max
pairs are reported as warnings. Use --at to check several container lengths
and --strict to fail on warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !diag.Enabled {
				_, _ = fmt.Fprintln(out, "diagnostics are not compiled into this build")
			}

			source := cfg.LayoutPath
			if source == "" {
				source = "built-in layout"
			}
			_, _ = fmt.Fprintf(out, "checking %s (%d panels)\n", source, len(cfg.Panels))

			sizes := at
			if len(sizes) == 0 {
				sizes = []float64{containerSize(cfg, int(os.Stdout.Fd()))}
			}

			var found diag.Collector
			writer := diag.NewWriter(cmd.ErrOrStderr())
			report := diag.ReporterFunc(func(d diag.Diagnostic) {
				found.Report(d)
				writer.Report(d)
			})

			g, err := panel.NewGroup(cfg.Panels, append(cfg.GroupOptions(), panel.WithReporter(report))...)
			if err != nil {
				return err
			}
			defer g.Close()

			for _, s := range sizes {
				if s < 0 {
					return fmt.Errorf("container size cannot be negative: %v", s)
				}
				_, _ = fmt.Fprintf(out, "container %s\n", px(s))
				g.SetContainerSize(s)
			}

			n := len(found.Diagnostics())
			if n == 0 {
				_, _ = color.New(color.FgGreen).Fprintln(out, "✓ layout OK")
				return nil
			}
			_, _ = color.New(color.FgYellow).Fprintf(out, "%d diagnostic(s)\n", n)
			if strict {
				return fmt.Errorf("layout has %d diagnostic(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&at, "at", nil, "Container length to check (repeatable, default: --width)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any diagnostic is reported")
	return cmd
}
