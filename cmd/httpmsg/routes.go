package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vyrodovalexey/httpmsg/internal/config"
	"github.com/vyrodovalexey/httpmsg/internal/observability"
	"github.com/vyrodovalexey/httpmsg/internal/util"
)

func routesCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the configured route table",
		Long: `Print one "METHOD PATTERN NAME" line per configured route.

With --watch the configuration file is watched and the table is reloaded
and printed again after every change, until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if err := a.routes.PrintRoutes(out); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			if a.flags.configPath == "" {
				return fmt.Errorf("--watch requires --config: %w", util.ErrInvalidInput)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watchRoutes(ctx, out)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reprint the table after each configuration change")
	return cmd
}

// watchRoutes reloads the route table on every configuration change until
// ctx is done. A configuration whose routes fail to load leaves the
// current table in place.
func (a *app) watchRoutes(ctx context.Context, out io.Writer) error {
	var mu sync.Mutex

	w, err := config.NewWatcher(a.flags.configPath,
		func(cfg *config.Config) {
			mu.Lock()
			defer mu.Unlock()

			if err := a.routes.LoadRoutes(cfg.Routes, builtinHandlers()); err != nil {
				a.logger.Error("failed to load routes", observability.Error(err))
				return
			}
			fmt.Fprintln(out, "---")
			_ = a.routes.PrintRoutes(out)
		},
		config.WithLogger(a.logger),
		config.WithErrorCallback(func(err error) {
			a.logger.Warn("configuration rejected", observability.Error(err))
		}),
	)
	if err != nil {
		return err
	}

	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		return err
	}
	<-ctx.Done()

	if err := w.Stop(); err != nil {
		return err
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}
