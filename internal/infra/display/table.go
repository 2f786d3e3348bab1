// Package display provides board.Listener implementations: the terminal
// table writer, a webhook channel for pushing board updates to external
// hooks, and a no-op surface for disabled configurations.
package display

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"text/tabwriter"

	"spot-board/internal/observability/metrics"
	"spot-board/internal/usecase/board"
)

// TableWriter renders the current board as an aligned text table.
// On every DataChanged it pulls a fresh snapshot and rewrites the table;
// a failed refresh therefore shows as an empty table, with no error row.
type TableWriter struct {
	mu     sync.Mutex
	w      io.Writer
	source board.StateReader
}

// NewTableWriter creates a table surface writing to w.
func NewTableWriter(w io.Writer, source board.StateReader) *TableWriter {
	return &TableWriter{w: w, source: source}
}

// Name returns the channel identifier "table".
func (t *TableWriter) Name() string { return "table" }

// DataChanged re-renders the table from the current snapshot.
// Rendering happens inline on the presentation loop; writing to a terminal
// is cheap enough that no handoff is needed.
func (t *TableWriter) DataChanged(_ context.Context) {
	places := t.source.Snapshot()
	version := t.source.Version()

	t.mu.Lock()
	defer t.mu.Unlock()

	tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tDESCRIPTION\tLOCATION\n")
	for _, p := range places {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Description, p.Location)
	}
	if err := tw.Flush(); err != nil {
		slog.Warn("failed to render board table", slog.Any("error", err))
		metrics.RecordNotification("table", false)
		return
	}
	fmt.Fprintf(t.w, "(%d places, version %d)\n", len(places), version)
	metrics.RecordNotification("table", true)
}
