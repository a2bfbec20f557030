package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/laplace/pkg/adapters/mcp"
	"github.com/aretw0/laplace/pkg/ports"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// RunMCP serves the catalog and sampler to MCP clients over the given
// transport. With stdio, every log line must go to Stderr.
func RunMCP(ctx context.Context, explorer ports.Explorer, transport string, port int, logger *slog.Logger) error {
	srv := mcp.NewServer(explorer, mcp.WithLogger(logger))

	switch transport {
	case TransportStdio:
		logger.Info("Starting Laplace MCP Server (Stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		logger.Info("Starting Laplace MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: %s, %s)", transport, TransportStdio, TransportSSE)
	}
}
