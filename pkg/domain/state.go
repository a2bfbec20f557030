package domain

import "time"

// State is the persisted snapshot of one session: which signal is active
// and the current value of each of its parameters.
type State struct {
	SessionID string    `json:"session_id"`
	SignalID  string    `json:"signal_id"`
	Params    Params    `json:"params"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewState creates a session state for the given signal with the given params.
func NewState(sessionID, signalID string, params Params) *State {
	return &State{
		SessionID: sessionID,
		SignalID:  signalID,
		Params:    params.Clone(),
		UpdatedAt: time.Now().UTC(),
	}
}

// Clone returns a deep copy, so stores never share the params map with callers.
func (s *State) Clone() *State {
	c := *s
	c.Params = s.Params.Clone()
	return &c
}
