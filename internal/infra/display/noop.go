package display

import "context"

// Noop is a display surface that ignores all notifications.
// It stands in when every real surface is disabled, so the board service
// never needs nil checks on its listener list.
type Noop struct{}

// NewNoop creates a no-op display surface.
func NewNoop() *Noop { return &Noop{} }

// Name returns the channel identifier "noop".
func (n *Noop) Name() string { return "noop" }

// DataChanged does nothing.
func (n *Noop) DataChanged(_ context.Context) {}
