package board

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"

	"spot-board/internal/infra/transport"
	"spot-board/internal/resilience/retry"
)

// errorKind classifies a transport failure for the metrics label and logs.
// The presentation state itself never carries the cause; all failures
// collapse to an empty collection.
func errorKind(err error) string {
	switch {
	case errors.Is(err, transport.ErrInvalidEndpoint):
		return "invalid_endpoint"
	case errors.Is(err, transport.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, transport.ErrBodyTooLarge):
		return "body_too_large"
	case errors.Is(err, gobreaker.ErrOpenState):
		return "circuit_open"
	default:
		var httpErr *retry.HTTPError
		if errors.As(err, &httpErr) {
			return "status"
		}
		return "network"
	}
}
