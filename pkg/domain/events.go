package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSample       EventType = "sample"
	EventSignalSelect EventType = "signal_select"
	EventParamChange  EventType = "param_change"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// SampleEvent is emitted after a frame has been computed.
type SampleEvent struct {
	EventBase
	SignalID string        `json:"signal_id"`
	Params   Params        `json:"params"`
	Duration time.Duration `json:"duration"`
	// Gaps counts Undefined points per view ("magnitude", "phase", "surface").
	Gaps map[string]int `json:"gaps"`
}

// SessionEvent is emitted when a session changes signal or parameter values.
type SessionEvent struct {
	EventBase
	SignalID string  `json:"signal_id"`
	Param    string  `json:"param,omitempty"`
	Value    float64 `json:"value,omitempty"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnSample       func(context.Context, *SampleEvent)
	OnSignalSelect func(context.Context, *SessionEvent)
	OnParamChange  func(context.Context, *SessionEvent)
}
