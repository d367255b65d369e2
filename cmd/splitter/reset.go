package main

import (
	"fmt"

	"github.com/flashingpumpkin/splitter/internal/state"
	"github.com/spf13/cobra"
)

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the remembered panel sizes",
		Long: `Remove the panel sizes saved by 'splitter --remember'.

The next run starts from the sizes declared in the layout file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !state.Exists(opts.workingDir) {
				_, _ = fmt.Fprintln(out, "No saved panel sizes")
				return nil
			}
			if err := state.Clear(opts.workingDir); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "Removed %s\n", state.StateDir(opts.workingDir))
			return nil
		},
	}
}
