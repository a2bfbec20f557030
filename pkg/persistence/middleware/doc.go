// Package middleware decorates a ports.StateStore: catalog checks on the
// way in and out, and per-operation timings.
package middleware
