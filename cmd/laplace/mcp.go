package main

import (
	"log/slog"

	"github.com/aretw0/laplace"
	"github.com/aretw0/laplace/internal/cli"
	"github.com/aretw0/laplace/internal/logging"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the signal catalog and the sampler as MCP tools, so AI agents can
list signals, read their formulas and sample their responses.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		level := slog.LevelInfo
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			level = slog.LevelDebug
		}
		// logging.New writes to Stderr, keeping Stdout for JSON-RPC.
		logger := logging.New(level)

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		explorer := laplace.New(laplace.WithLogger(logger))
		return cli.RunMCP(sigCtx, explorer, transport, port, logger)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", cli.TransportStdio, "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
