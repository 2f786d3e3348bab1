// Package board implements the presentation state for the places board.
//
// The service owns a single mutable collection of places and a dedicated
// goroutine, the presentation loop, that serializes every state replacement
// and every display surface notification. Fetching and decoding run on
// worker goroutines; their completions funnel through the loop, so readers
// never observe a torn collection and listeners are notified exactly once
// per refresh, after the replacement.
package board

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"spot-board/internal/domain/entity"
	"spot-board/internal/observability/metrics"
	"spot-board/internal/observability/tracing"
)

// Transport fetches the raw response body from the remote endpoint.
type Transport interface {
	Fetch(ctx context.Context, endpoint string) ([]byte, error)
}

// Decoder turns a raw response body into validated place records.
type Decoder interface {
	Decode(raw []byte) []entity.Place
}

// Listener is a display surface collaborator. DataChanged is invoked on the
// presentation loop after each state replacement; implementations pull the
// new collection via StateReader and must either render quickly or hand the
// work to their own goroutine.
type Listener interface {
	// Name returns the channel identifier used for logging and metrics.
	Name() string

	// DataChanged signals that the presented collection was replaced and
	// the surface must re-render.
	DataChanged(ctx context.Context)
}

// StateReader is the read-only view of the presentation state handed to
// display surfaces. Snapshots are copies; mutating them has no effect on
// the board.
type StateReader interface {
	Snapshot() []entity.Place
	Version() uint64
}

// Service is the presenter for the places board.
//
// Concurrent Refresh calls are allowed and proceed independently; the last
// completion to reach the presentation loop wins. There is no coalescing
// and no cancellation of in-flight fetches.
type Service struct {
	transport Transport
	decoder   Decoder
	endpoint  string

	mu        sync.RWMutex
	places    []entity.Place
	version   uint64
	listeners []Listener

	apply     chan func()
	done      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewService creates a board service and starts its presentation loop.
// The initial state is an empty collection at version zero.
func NewService(transport Transport, decoder Decoder, endpoint string) *Service {
	s := &Service{
		transport: transport,
		decoder:   decoder,
		endpoint:  endpoint,
		apply:     make(chan func()),
		done:      make(chan struct{}),
		loopDone:  make(chan struct{}),
	}
	go s.presentationLoop()
	return s
}

// Subscribe registers a display surface. Listeners registered after a
// refresh completes are only notified for subsequent refreshes.
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Refresh triggers a fetch-decode-replace cycle and returns immediately.
// On any transport failure the collection is replaced with an empty one;
// the display surfaces are notified either way, exactly once.
func (s *Service) Refresh(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.doRefresh(ctx)
	}()
}

// Snapshot returns a copy of the currently presented collection.
func (s *Service) Snapshot() []entity.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Place, len(s.places))
	copy(out, s.places)
	return out
}

// Version returns the number of completed refreshes applied so far.
// It increases by exactly one per applied completion.
func (s *Service) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Close waits for in-flight refreshes and stops the presentation loop.
// After Close returns no further notifications are delivered. Snapshot and
// Version remain usable.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		close(s.apply)
		<-s.loopDone
	})
}

// presentationLoop is the single execution context for state replacement
// and listener notification.
func (s *Service) presentationLoop() {
	defer close(s.loopDone)
	for fn := range s.apply {
		fn()
	}
}

func (s *Service) doRefresh(ctx context.Context) {
	refreshID := uuid.New().String()
	ctx = WithRefreshID(ctx, refreshID)
	logger := slog.Default().With(slog.String("refresh_id", refreshID))
	start := time.Now()

	ctx, span := tracing.GetTracer().Start(ctx, "board.refresh")
	defer span.End()

	places, status := s.fetchAndDecode(ctx, logger)

	s.submit(func() {
		s.mu.Lock()
		s.places = places
		s.version++
		version := s.version
		listeners := make([]Listener, len(s.listeners))
		copy(listeners, s.listeners)
		s.mu.Unlock()

		for _, l := range listeners {
			l.DataChanged(ctx)
		}

		duration := time.Since(start)
		metrics.RecordRefresh(status, duration, len(places))
		logger.Info("board refreshed",
			slog.String("status", status),
			slog.Uint64("version", version),
			slog.Int("places", len(places)),
			slog.Int("listeners", len(listeners)),
			slog.Duration("duration", duration))
	})
}

// fetchAndDecode runs the transport and decoder. Transport failures collapse
// to an empty collection; cause detail survives in logs and metrics only.
func (s *Service) fetchAndDecode(ctx context.Context, logger *slog.Logger) ([]entity.Place, string) {
	fetchCtx, fetchSpan := tracing.GetTracer().Start(ctx, "board.fetch")
	raw, err := s.transport.Fetch(fetchCtx, s.endpoint)
	fetchSpan.End()
	if err != nil {
		logger.Warn("transport failed, presenting empty board",
			slog.String("endpoint", s.endpoint),
			slog.String("kind", errorKind(err)),
			slog.Any("error", err))
		metrics.RecordTransportError(errorKind(err))
		return nil, "transport_error"
	}

	_, decodeSpan := tracing.GetTracer().Start(ctx, "board.decode")
	places := s.decoder.Decode(raw)
	decodeSpan.End()

	return places, "success"
}

// submit hands a completion to the presentation loop. Completions arriving
// after Close are discarded. The done check runs first: apply is only closed
// once no in-flight submit remains, so a submit that passes the check always
// finds the channel open.
func (s *Service) submit(fn func()) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.apply <- fn:
	case <-s.done:
	}
}
