package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dshills/termcore/internal/config"
	"github.com/dshills/termcore/internal/config/notify"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	var (
		metricsAddr string
		debounce    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Load the configuration and report every reload until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := g.logger(cmd)
			reg := prometheus.NewRegistry()
			store := config.NewStore(g.path(), append(g.options(logger),
				config.WithMetrics(config.NewMetrics(reg)),
				config.WithDebounce(debounce),
				config.WithWatch(true),
			)...)
			defer store.Close()

			out := cmd.OutOrStdout()
			store.Subscribe(func(c notify.Change) {
				if c.Type == notify.ChangeReload {
					fmt.Fprintf(out, "reloaded %s generation=%s issues=%d\n", c.Source, c.Generation, c.Issues)
					return
				}
				fmt.Fprintf(out, "  %s %s\n", c.Type, c.Path)
			})

			if err := store.Start(ctx); err != nil {
				return fmt.Errorf("watch %s: %w", store.Path(), err)
			}

			if metricsAddr != "" {
				srv := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server", slog.Any("error", err))
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			fmt.Fprintf(out, "watching %s\n", store.Path())
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "delay before reloading after a change")
	return cmd
}
