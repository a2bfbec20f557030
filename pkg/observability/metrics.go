package observability

import (
	"context"

	"github.com/aretw0/laplace/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the explorer's Prometheus collectors.
type Metrics struct {
	Samples        *prometheus.CounterVec
	SampleDuration *prometheus.HistogramVec
	Gaps           *prometheus.CounterVec
	Selections     *prometheus.CounterVec
	ParamChanges   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "laplace_samples_total",
				Help: "Total number of frames sampled",
			},
			[]string{"signal"},
		),
		SampleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "laplace_sample_duration_seconds",
				Help:    "Time spent sampling one frame",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"signal"},
		),
		Gaps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "laplace_gaps_total",
				Help: "Undefined points (poles) produced while sampling",
			},
			[]string{"signal", "view"},
		),
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "laplace_signal_selections_total",
				Help: "Signals activated in sessions",
			},
			[]string{"signal"},
		),
		ParamChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "laplace_param_changes_total",
				Help: "Parameter updates applied to sessions",
			},
			[]string{"signal", "param"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Samples, m.SampleDuration, m.Gaps, m.Selections, m.ParamChanges)
	}
	return m
}

// Hooks records every lifecycle event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSample: func(_ context.Context, e *domain.SampleEvent) {
			m.Samples.WithLabelValues(e.SignalID).Inc()
			m.SampleDuration.WithLabelValues(e.SignalID).Observe(e.Duration.Seconds())
			for view, n := range e.Gaps {
				if n > 0 {
					m.Gaps.WithLabelValues(e.SignalID, view).Add(float64(n))
				}
			}
		},
		OnSignalSelect: func(_ context.Context, e *domain.SessionEvent) {
			m.Selections.WithLabelValues(e.SignalID).Inc()
		},
		OnParamChange: func(_ context.Context, e *domain.SessionEvent) {
			m.ParamChanges.WithLabelValues(e.SignalID, e.Param).Inc()
		},
	}
}
