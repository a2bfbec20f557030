package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/laplace"
	"github.com/aretw0/laplace/internal/logging"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/ports"
	"github.com/aretw0/laplace/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Server implements ServerInterface on top of a ports.SessionExplorer.
// Session edits are pushed to SSE subscribers through a session.Coalescer,
// so a burst of parameter changes produces at most one frame per tick.
type Server struct {
	Explorer  ports.SessionExplorer
	Streams   *StreamManager
	Coalescer *session.Coalescer

	metrics http.Handler
	tick    time.Duration
	logger  *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithTick sets the SSE render interval.
func WithTick(d time.Duration) Option {
	return func(s *Server) {
		s.tick = d
	}
}

// NewServer creates a Server. Call Run to start pushing frames to SSE
// subscribers.
func NewServer(explorer ports.SessionExplorer, opts ...Option) *Server {
	s := &Server{
		Explorer: explorer,
		tick:     session.DefaultTick,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	s.Coalescer = session.NewCoalescer(s.publish,
		session.WithTick(s.tick),
		session.WithCoalescerLogger(s.logger),
	)
	return s
}

// Run renders coalesced session updates until ctx is canceled.
func (s *Server) Run(ctx context.Context) {
	s.Coalescer.Run(ctx)
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	handler := HandlerFromMux(s, r)
	return enableCORS(handler)
}

// NewHandler creates a Server and returns its router. The SSE render loop
// is bound to ctx.
func NewHandler(ctx context.Context, explorer ports.SessionExplorer, opts ...Option) http.Handler {
	s := NewServer(explorer, opts...)
	go s.Run(ctx)
	return s.Handler()
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Laplace Explorer API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "laplace-http",
		"version":     strings.TrimSpace(laplace.Version),
		"api_version": apiVersion,
	})
}

// ListSignals handles the GET /signals request.
func (s *Server) ListSignals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Explorer.Signals())
}

// GetSignal handles the GET /signals/{signalID} request.
func (s *Server) GetSignal(w http.ResponseWriter, r *http.Request, signalID string) {
	sig, err := s.Explorer.Signal(signalID)
	if err != nil {
		s.fail(w, "GetSignal", err)
		return
	}
	writeJSON(w, http.StatusOK, sig)
}

// GetSignalFrame handles the GET /signals/{signalID}/frame request.
// Every query parameter is a signal parameter value.
func (s *Server) GetSignalFrame(w http.ResponseWriter, r *http.Request, signalID string) {
	params, err := paramsFromQuery(r)
	if err != nil {
		s.fail(w, "GetSignalFrame", err)
		return
	}

	frame, err := s.Explorer.Sample(r.Context(), signalID, params)
	if err != nil {
		s.fail(w, "GetSignalFrame", err)
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Explorer.Sessions(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Signal    string `json:"signal,omitempty"`
}

// CreateSession handles the POST /sessions request. The body is optional;
// without a session_id a random one is assigned.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			s.logger.Warn("CreateSession: Invalid request body", "err", err)
			return
		}
	}
	if body.SessionID == "" {
		body.SessionID = uuid.NewString()
	}

	state, err := s.Explorer.StartSession(r.Context(), body.SessionID, body.Signal)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	s.logger.Info("Session created", "session_id", state.SessionID, "signal", state.SignalID)
	writeJSON(w, http.StatusCreated, state)
}

// GetSession handles the GET /sessions/{sessionID} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	state, err := s.Explorer.Session(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// DeleteSession handles the DELETE /sessions/{sessionID} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := s.Explorer.DeleteSession(r.Context(), sessionID); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectSignalRequest is the body of PUT /sessions/{sessionID}/signal.
type SelectSignalRequest struct {
	Signal string `json:"signal"`
}

// SelectSignal handles the PUT /sessions/{sessionID}/signal request.
func (s *Server) SelectSignal(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body SelectSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Signal == "" {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body: signal is required"))
		return
	}

	state, err := s.Explorer.SelectSignal(r.Context(), sessionID, body.Signal)
	if err != nil {
		s.fail(w, "SelectSignal", err)
		return
	}
	s.Coalescer.Submit(state)
	writeJSON(w, http.StatusOK, state)
}

// SetParams handles the PATCH /sessions/{sessionID}/params request.
func (s *Server) SetParams(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body domain.Params
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	state, err := s.Explorer.SetParams(r.Context(), sessionID, body)
	if err != nil {
		s.fail(w, "SetParams", err)
		return
	}
	s.Coalescer.Submit(state)
	writeJSON(w, http.StatusOK, state)
}

// GetSessionFrame handles the GET /sessions/{sessionID}/frame request.
func (s *Server) GetSessionFrame(w http.ResponseWriter, r *http.Request, sessionID string) {
	frame, err := s.Explorer.SessionFrame(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "GetSessionFrame", err)
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

// SubscribeEvents handles the GET /sessions/{sessionID}/events request (SSE).
// The current frame is sent on connect; later frames follow session edits.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, sessionID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	frame, err := s.Explorer.SessionFrame(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "SubscribeEvents", err)
		return
	}
	initial, err := json.Marshal(frame)
	if err != nil {
		s.fail(w, "SubscribeEvents", err)
		return
	}

	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()
	s.logger.Info("SSE: Subscribing to session frames", "session_id", sessionID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	writeEvent(w, Event{Name: "frame", Data: initial})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", sessionID)
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, event)
			flusher.Flush()
		}
	}
}

// publish renders a coalesced state and pushes it to the session's listeners.
func (s *Server) publish(ctx context.Context, state *domain.State) {
	if s.Streams.Subscribers(state.SessionID) == 0 {
		return
	}
	frame, err := s.Explorer.Sample(ctx, state.SignalID, state.Params)
	if err != nil {
		s.logger.Error("SSE: Failed to sample frame", "session_id", state.SessionID, "err", err)
		return
	}
	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("SSE: Failed to encode frame", "session_id", state.SessionID, "err", err)
		return
	}
	s.Streams.Broadcast(state.SessionID, Event{Name: "frame", Data: data})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Debug(op+" rejected", "err", err)
	}
	writeError(w, status, err)
}

// -- Helpers --

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownSignal), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownParameter), errors.Is(err, domain.ErrInvalidParameter):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func paramsFromQuery(r *http.Request) (domain.Params, error) {
	query := r.URL.Query()
	params := make(domain.Params, len(query))
	for name, values := range query {
		raw := values[len(values)-1]
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidParameter, name, raw)
		}
		params[name] = v
	}
	return params, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeEvent(w http.ResponseWriter, e Event) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Name, e.Data)
}
