package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flashingpumpkin/splitter/internal/config"
	"github.com/spf13/cobra"
)

// DefaultLayoutTemplate is the commented layout written by splitter init.
const DefaultLayoutTemplate = `# Splitter layout
#
# Sizes are written as "240px", "25%" or "auto". An empty size is auto and a
# bare number such as "240" is read as pixels.

# Panel axis: "horizontal" (side by side) or "vertical" (stacked).
direction = "horizontal"

# Container length used by solve, drag, step and check. Uncomment to pin it;
# otherwise the terminal size is used.
# container = 120

# Keyboard resize steps.
key_step = 10
key_large_step = 50

# Minimum milliseconds between two layout passes while dragging.
throttle_ms = 16

# Colour theme: "auto", "dark" or "light".
theme = "auto"

# Panels, in order. Only panels with a collapsed_size can be collapsed.
#
# [[panels]]
# id = "sidebar"              # identifies the panel
# title = "Sidebar"           # optional, shown in the UI
# default_size = "25%"        # optional, default "auto"
# min_size = "120px"          # optional
# max_size = "50%"            # optional
# collapsed_size = "0px"      # optional, makes the panel collapsible
# default_collapsed = false   # optional

[[panels]]
id = "files"
title = "Files"
default_size = "25%"
min_size = "12%"
max_size = "50%"
collapsed_size = "3px"

[[panels]]
id = "editor"
title = "Editor"
min_size = "20%"

[[panels]]
id = "outline"
title = "Outline"
default_size = "20%"
min_size = "10%"
collapsed_size = "3px"
`

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default layout file",
		Long: `Create a default .splitter/layout.toml layout file.

The layout file contains the built-in three panel layout and commented
documentation for every setting.

If the layout file already exists, the command will fail unless --force is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts.workingDir, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing layout file")
	return cmd
}

func runInit(cmd *cobra.Command, workingDir string, force bool) error {
	layoutPath := config.DefaultLayoutPath(workingDir)
	layoutDir := filepath.Dir(layoutPath)

	// Check if layout already exists
	if _, err := os.Stat(layoutPath); err == nil && !force {
		return fmt.Errorf("layout file already exists: %s (use --force to overwrite)", layoutPath)
	}

	if err := os.MkdirAll(layoutDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", layoutDir, err)
	}

	if err := os.WriteFile(layoutPath, []byte(DefaultLayoutTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", layoutPath)
	return nil
}
