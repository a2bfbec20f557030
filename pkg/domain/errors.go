package domain

import "errors"

// ErrUnknownSignal is returned when a signal ID is not in the catalog.
var ErrUnknownSignal = errors.New("unknown signal")

// ErrUnknownParameter is returned when a parameter name is not declared by the active signal.
var ErrUnknownParameter = errors.New("unknown parameter")

// ErrInvalidParameter is returned for parameter values that are NaN or infinite.
var ErrInvalidParameter = errors.New("invalid parameter value")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
