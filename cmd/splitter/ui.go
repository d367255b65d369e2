package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flashingpumpkin/splitter/internal/config"
	"github.com/flashingpumpkin/splitter/internal/panel"
	"github.com/flashingpumpkin/splitter/internal/state"
	"github.com/flashingpumpkin/splitter/internal/tui"
	"github.com/flashingpumpkin/splitter/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// runUI opens the interactive layout, reloading it on change with --watch.
func runUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	cfg.Watch = opts.watch
	if opts.remember {
		cfg.Panels = restorePanels(cmd, opts.workingDir, cfg.Panels)
	}

	var w *watch.Watcher
	if cfg.Watch {
		w, err = watch.New(opts.layoutPath())
		if err != nil {
			return err
		}
		defer w.Close()
	}

	prog, err := tui.New(tuiOptions(cfg))
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler()
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return prog.Run()
	})
	g.Go(func() error {
		<-ctx.Done()
		prog.Quit()
		return nil
	})
	if w != nil {
		g.Go(func() error {
			prog.Status("watching " + filepath.Base(w.Path()))
			return w.Run(ctx, func() {
				prog.Reload(reloadPanels(cfg, w.Path()))
			})
		})
	}

	err = g.Wait()
	if opts.remember {
		if group := prog.Group(); group != nil {
			if serr := state.FromGroup(opts.workingDir, cfg.LayoutPath, group).Save(); serr != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to save panel sizes: %v\n", serr)
			}
		}
	}
	return err
}

// restorePanels applies the sizes remembered for workingDir to decls.
// A missing, unreadable or outdated state leaves decls unchanged.
func restorePanels(cmd *cobra.Command, workingDir string, decls []panel.Decl) []panel.Decl {
	if !state.Exists(workingDir) {
		return decls
	}
	st, err := state.Load(workingDir)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: ignoring saved panel sizes: %v\n", err)
		return decls
	}
	if !st.Matches(decls) {
		return decls
	}
	restored := st.Apply(decls)
	if _, err := panel.NewGroup(restored); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: ignoring saved panel sizes: %v\n", err)
		return decls
	}
	return restored
}

func tuiOptions(cfg *config.Config) tui.Options {
	title := "built-in layout"
	if cfg.LayoutPath != "" {
		title = filepath.Base(cfg.LayoutPath)
	}
	return tui.Options{
		Title:            title,
		Panels:           cfg.Panels,
		Vertical:         cfg.Direction == config.Vertical,
		Theme:            tui.ResolveTheme(tui.Theme(cfg.Theme), os.Stdout),
		KeyStep:          cfg.KeyStep,
		KeyLargeStep:     cfg.KeyLargeStep,
		ThrottleInterval: cfg.ThrottleInterval,
	}
}
