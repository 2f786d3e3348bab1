package board

import "context"

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const refreshIDKey contextKey = "refresh_id"

// WithRefreshID returns a context carrying the given refresh ID.
// Every refresh gets a unique ID so log entries from the fetch, decode and
// notification phases can be correlated.
func WithRefreshID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, refreshIDKey, id)
}

// RefreshIDFromContext returns the refresh ID stored in the context, or an
// empty string if none is present.
func RefreshIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(refreshIDKey).(string); ok {
		return id
	}
	return ""
}
