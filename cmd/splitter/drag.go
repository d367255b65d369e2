package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flashingpumpkin/splitter/internal/drag"
	"github.com/flashingpumpkin/splitter/internal/panel"
	"github.com/spf13/cobra"
)

func newDragCmd(opts *rootOptions) *cobra.Command {
	var (
		handle int
		deltas []float64
		cancel bool
	)

	cmd := &cobra.Command{
		Use:   "drag",
		Short: "Simulate a pointer drag on a divider",
		Long: `Drag a divider and print the layout after every move.

Each --delta is a pointer offset from where the drag started, in cells,
so "--delta 10 --delta 25" moves the divider 10 and then 25 cells in total.
Negative offsets move towards the start: --delta=-10.

The drag ends normally and the new sizes are kept, unless --cancel is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := solvedGroup(cmd, opts)
			if err != nil {
				return err
			}
			defer g.Close()

			out := cmd.OutOrStdout()
			if err := g.DragStart(handle); err != nil {
				return err
			}
			for _, d := range deltas {
				r, err := g.Drag(d)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "delta %s: %s\n", strconv.FormatFloat(d, 'f', -1, 64), formatSizes(r.Sizes))
			}

			if cancel {
				err = g.Cancel()
			} else {
				err = g.DragEnd()
			}
			if err != nil {
				return err
			}

			printLayout(out, g)
			return nil
		},
	}

	cmd.Flags().IntVar(&handle, "handle", 0, "Divider index (0 is between the first two panels)")
	cmd.Flags().Float64SliceVar(&deltas, "delta", nil, "Pointer offset from the drag start (repeatable)")
	cmd.Flags().BoolVar(&cancel, "cancel", false, "Cancel the drag instead of ending it")
	return cmd
}

func newStepCmd(opts *rootOptions) *cobra.Command {
	var (
		handle  int
		dir     string
		large   bool
		jump    bool
		repeats int
	)

	cmd := &cobra.Command{
		Use:   "step",
		Short: "Move a divider the way the keyboard does",
		Long: `Move a divider by one keyboard step and print the layout.

--dir forward grows the panel before the divider; backward shrinks it.
--large uses the large step and --jump moves as far as the panels allow.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDirection(dir)
			if err != nil {
				return err
			}

			g, err := solvedGroup(cmd, opts)
			if err != nil {
				return err
			}
			defer g.Close()

			for n := 0; n < repeats; n++ {
				if jump {
					_, err = g.Jump(handle, d)
				} else {
					_, err = g.Step(handle, d, large)
				}
				if err != nil {
					return err
				}
			}

			printLayout(cmd.OutOrStdout(), g)
			return nil
		},
	}

	cmd.Flags().IntVar(&handle, "handle", 0, "Divider index (0 is between the first two panels)")
	cmd.Flags().StringVar(&dir, "dir", "forward", "Direction: forward or backward")
	cmd.Flags().BoolVar(&large, "large", false, "Use the large keyboard step")
	cmd.Flags().BoolVar(&jump, "jump", false, "Move as far as the panels allow")
	cmd.Flags().IntVarP(&repeats, "repeat", "n", 1, "Number of steps")
	return cmd
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <panel>",
		Short: "Collapse or expand a panel",
		Long: `Collapse an expanded panel, or expand a collapsed one, and print the layout.

The panel is named by its id or by its index. Only panels that declare a
collapsed size can be toggled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := solvedGroup(cmd, opts)
			if err != nil {
				return err
			}
			defer g.Close()

			i, err := findPanel(g, args[0])
			if err != nil {
				return err
			}
			if _, err := g.Toggle(i); err != nil {
				return err
			}

			printLayout(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

func parseDirection(s string) (drag.Direction, error) {
	switch strings.ToLower(s) {
	case "forward", "fwd", "+":
		return drag.Forward, nil
	case "backward", "back", "-":
		return drag.Backward, nil
	default:
		return 0, fmt.Errorf("invalid direction %q, valid options: forward, backward", s)
	}
}

// findPanel resolves a panel id or index.
func findPanel(g *panel.Group, ref string) (int, error) {
	for i := 0; i < g.Len(); i++ {
		if g.Decl(i).ID == ref {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < g.Len() {
		return i, nil
	}
	return 0, fmt.Errorf("no panel %q", ref)
}

func formatSizes(sizes []float64) string {
	parts := make([]string, len(sizes))
	for i, v := range sizes {
		parts[i] = px(v)
	}
	return strings.Join(parts, " ")
}
