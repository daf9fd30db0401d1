package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"

	"github.com/liveprogress/expectancy/internal/api"
	"github.com/liveprogress/expectancy/internal/config"
	"github.com/liveprogress/expectancy/internal/metrics"
	"github.com/liveprogress/expectancy/internal/store"
	"github.com/liveprogress/expectancy/pkg/expectancy"
	"github.com/liveprogress/expectancy/pkg/types"
)

const shutdownTimeout = 5 * time.Second

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get [country...]",
		Short: "Print the life expectancy table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			t, err := expectancy.New(cfg).GetData(cmd.Context())
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), t, args)
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the table in the Prometheus text exposition format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			t, err := expectancy.New(cfg).GetData(cmd.Context())
			if err != nil {
				return err
			}
			return metrics.Write(cmd.OutOrStdout(), t)
		},
	}
}

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the table over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cmd.Context(), cfg, opts.configPath)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the table, then again each time the cache file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			t, err := expectancy.New(cfg).GetData(cmd.Context())
			if err != nil {
				return err
			}
			if err := printTable(out, t, nil); err != nil {
				return err
			}
			return store.NewFileCache(cfg.Cache.Path).Watch(cmd.Context(), func(t types.Table) {
				fmt.Fprintln(out)
				if err := printTable(out, t, nil); err != nil {
					slog.Warn("print table failed", "err", err)
				}
			})
		},
	}
}

// serve loads the table into memory, serves it, and reloads it whenever the
// config file changes. It blocks until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, configPath string) error {
	mem := store.NewMemory()
	refresh := func(cfg *config.Config) {
		t, src, err := expectancy.New(cfg).GetDataFrom(ctx)
		if err != nil {
			slog.Error("load table failed, keeping previous", "err", err)
			return
		}
		mem.Put(t, string(src))
	}
	refresh(cfg)

	if configPath != "" {
		go func() {
			if err := config.Watch(ctx, configPath, refresh); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.New(mem),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("http server failed", "err", err)
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// printTable writes the named countries, or every country followed by
// Common when names is empty.
func printTable(w io.Writer, t types.Table, names []string) error {
	if len(names) == 0 {
		names = t.Countries()
		if _, ok := t.Common(); ok {
			names = append(names, types.CommonKey)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNTRY\tALL\tMALE\tFEMALE\t")
	var missing []string
	for _, name := range names {
		s, ok := t[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t\n", name, s.All, s.Male, s.Female)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(missing) > 0 {
		return ewrap.Newf("unknown countries: %v", missing)
	}
	return nil
}
