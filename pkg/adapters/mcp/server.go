package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/laplace"
	"github.com/aretw0/laplace/internal/logging"
	"github.com/aretw0/laplace/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const catalogURI = "laplace://signals"

// Server exposes a ports.Explorer as an MCP server.
type Server struct {
	explorer  ports.Explorer
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(explorer ports.Explorer, opts ...Option) *Server {
	s := &Server{
		explorer:  explorer,
		mcpServer: server.NewMCPServer("laplace-mcp", strings.TrimSpace(laplace.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_signals",
		mcp.WithDescription("List the signals of the catalog with their transforms and tunable parameters."),
		mcp.WithOutputSchema[ListSignalsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListSignals))

	s.mcpServer.AddTool(mcp.NewTool("describe_signal",
		mcp.WithDescription("Describe one signal: f(t), F(s), pole locations and parameter ranges."),
		mcp.WithString("signal", mcp.Required(), mcp.Description("Signal ID, e.g. damped_sine")),
	), s.handleDescribeSignal)

	s.mcpServer.AddTool(mcp.NewTool("sample_signal",
		mcp.WithDescription("Sample the time response, frequency response and s-plane surface of a signal. Returns a summary; set include_frame for the full arrays."),
		mcp.WithString("signal", mcp.Required(), mcp.Description("Signal ID")),
		mcp.WithObject("params", mcp.Description("Parameter values by name (or a JSON object string). Missing values take defaults, out-of-range values are clamped.")),
		mcp.WithBoolean("include_frame", mcp.Description("Include the full sampled arrays in the response")),
		mcp.WithOutputSchema[SampleResponse](),
	), mcp.NewStructuredToolHandler(s.handleSample))

	s.mcpServer.AddTool(mcp.NewTool("evaluate_point",
		mcp.WithDescription("Evaluate f(t), |F(jω)|, arg F(jω) and |F(σ+jω)| at a single point, without clamping."),
		mcp.WithString("signal", mcp.Required(), mcp.Description("Signal ID")),
		mcp.WithObject("params", mcp.Description("Parameter values by name")),
		mcp.WithNumber("t", mcp.Description("Time")),
		mcp.WithNumber("sigma", mcp.Description("Real part of s")),
		mcp.WithNumber("omega", mcp.Description("Imaginary part of s (angular frequency)")),
	), s.handleEvaluate)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(catalogURI, "Signal Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.explorer.Signals())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      catalogURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
