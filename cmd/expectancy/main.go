package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/liveprogress/expectancy/internal/config"
	"github.com/liveprogress/expectancy/internal/logging"
)

// options holds the global flags shared by every subcommand.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "expectancy:", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "expectancy",
		Short:         "Life expectancy by country, from cache, Wikipedia or bundled defaults",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file (defaults if empty)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text|json (overrides config)")

	root.AddCommand(
		newGetCmd(opts),
		newExportCmd(opts),
		newServeCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// load reads the config and installs the logger on stderr so stdout stays
// clean for table and metrics output.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	slog.Debug("config loaded",
		"config", o.configPath,
		"url", cfg.Source.URL,
		"cache", cfg.Cache.Path,
		"defaults", cfg.Defaults.Path,
	)
	return cfg, nil
}
