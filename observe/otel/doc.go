// Package otel provides an OpenTelemetry observer plugin for the guard library.
// It emits span events (arm, fire, move, panic) with low overhead.
package otel
