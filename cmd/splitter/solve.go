package main

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/flashingpumpkin/splitter/internal/panel"
	"github.com/flashingpumpkin/splitter/internal/size"
	"github.com/flashingpumpkin/splitter/internal/util"
	"github.com/spf13/cobra"
)

func newSolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Print the solved layout",
		Long: `Solve the layout for the container and print one row per panel.

The container length comes from --width, then the layout file, then the
terminal size. Sizing diagnostics are printed to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := solvedGroup(cmd, opts)
			if err != nil {
				return err
			}
			defer g.Close()

			printLayout(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// printLayout prints the group's panels as a table.
func printLayout(w io.Writer, g *panel.Group) {
	r := g.Layout()
	pixels := r.Pixels()

	rows := make([][]string, 0, g.Len())
	for i, e := range g.Entries() {
		state := ""
		switch {
		case e.Collapsed:
			state = "collapsed"
		case e.Collapsible:
			state = "collapsible"
		}

		length, cells := 0.0, 0
		if i < len(r.Sizes) {
			length, cells = r.Sizes[i], pixels[i]
		}

		rows = append(rows, []string{
			util.IntToString(i),
			g.Decl(i).Name(),
			e.Declared.String(),
			bound(e.Constraint.HasMin, e.Constraint.Min),
			bound(e.Constraint.HasMax, e.Constraint.Max),
			px(length),
			util.IntToString(cells),
			state,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "PANEL", "DECLARED", "MIN", "MAX", "SIZE", "CELLS", "STATE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, _ = fmt.Fprintln(w, t.Render())
	_, _ = fmt.Fprintf(w, "container %s, panels %s\n", px(g.Container()), px(r.Sum()))
}

// px formats a length in pixels, rounded to two decimals.
func px(v float64) string {
	return size.Format(math.Round(v*100)/100, size.UnitPixels)
}

func bound(ok bool, v float64) string {
	if !ok {
		return "-"
	}
	return px(v)
}
