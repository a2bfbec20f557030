package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/laplace/pkg/domain"
)

// LogHooks logs every lifecycle event at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSample: func(ctx context.Context, e *domain.SampleEvent) {
			logger.DebugContext(ctx, "sample",
				"signal", e.SignalID,
				"params", e.Params,
				"duration", e.Duration,
				"gaps", e.Gaps,
			)
		},
		OnSignalSelect: func(ctx context.Context, e *domain.SessionEvent) {
			logger.DebugContext(ctx, "signal_select",
				"session_id", e.SessionID,
				"signal", e.SignalID,
			)
		},
		OnParamChange: func(ctx context.Context, e *domain.SessionEvent) {
			logger.DebugContext(ctx, "param_change",
				"session_id", e.SessionID,
				"signal", e.SignalID,
				"param", e.Param,
				"value", e.Value,
			)
		},
	}
}

// Combine fans every event out to each set of hooks, in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSample: func(ctx context.Context, e *domain.SampleEvent) {
			for _, h := range all {
				if h.OnSample != nil {
					h.OnSample(ctx, e)
				}
			}
		},
		OnSignalSelect: func(ctx context.Context, e *domain.SessionEvent) {
			for _, h := range all {
				if h.OnSignalSelect != nil {
					h.OnSignalSelect(ctx, e)
				}
			}
		},
		OnParamChange: func(ctx context.Context, e *domain.SessionEvent) {
			for _, h := range all {
				if h.OnParamChange != nil {
					h.OnParamChange(ctx, e)
				}
			}
		},
	}
}
