package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aretw0/laplace"
	"github.com/aretw0/laplace/internal/cli"
	"github.com/aretw0/laplace/internal/config"
	"github.com/aretw0/laplace/internal/logging"
	"github.com/aretw0/laplace/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the catalog, stateless sampling and server-side sessions as a JSON
API. Session frames are pushed over SSE at most once per stream tick.

Configuration is read from laplace.yaml (see --config); flags override it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetString("port")
		}
		if cmd.Flags().Changed("store") {
			cfg.Store.Backend, _ = cmd.Flags().GetString("store")
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		if cli.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, laplace.Version)
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.Serve(sigCtx, cmd.OutOrStdout(), cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "laplace.yaml", "Path to the configuration file")
	serveCmd.Flags().String("port", "8080", "Port to listen on")
	serveCmd.Flags().String("store", config.BackendMemory, "Session store: memory or redis")
}
