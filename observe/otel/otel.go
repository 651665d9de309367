package otel

import "time"

// Nop is a no-op implementation of the guard.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer without adding dependencies.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) GuardArmed()              {}
func (*Nop) GuardFired(time.Duration) {}
func (*Nop) GuardMoved()              {}
func (*Nop) GuardPanicked(any)        {}
