package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Operation results.
const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

type metricsMiddleware struct {
	next     ports.StateStore
	duration *prometheus.HistogramVec
}

// NewMetricsMiddleware times every store operation into
// laplace_store_operation_duration_seconds{operation, result}.
// A nil registerer leaves the histogram unregistered.
func NewMetricsMiddleware(reg prometheus.Registerer) Middleware {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "laplace_store_operation_duration_seconds",
			Help:    "Duration of session store operations.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"operation", "result"},
	)
	if reg != nil {
		reg.MustRegister(duration)
	}
	return func(next ports.StateStore) ports.StateStore {
		return &metricsMiddleware{next: next, duration: duration}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	result := resultOK
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		result = resultNotFound
	case err != nil:
		result = resultError
	}
	m.duration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}

func (m *metricsMiddleware) Save(ctx context.Context, sessionID string, state *domain.State) error {
	start := time.Now()
	err := m.next.Save(ctx, sessionID, state)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	start := time.Now()
	state, err := m.next.Load(ctx, sessionID)
	m.observe("load", start, err)
	return state, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, sessionID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, sessionID)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe("list", start, err)
	return ids, err
}
