package display

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"spot-board/internal/domain/entity"
	"spot-board/internal/observability/metrics"
	"spot-board/internal/usecase/board"
	pkgconfig "spot-board/pkg/config"
)

// WebhookConfig holds the configuration for the webhook display channel.
type WebhookConfig struct {
	// Enabled controls whether board updates are pushed to webhooks.
	Enabled bool

	// URLs are the webhook endpoints receiving each update.
	URLs []string

	// Timeout bounds one delivery round across all URLs.
	// Default: 10s
	Timeout time.Duration

	// RequestsPerSecond and Burst configure the token bucket protecting
	// the webhook endpoints from rapid refresh schedules.
	// Defaults: 1 req/s, burst 3
	RequestsPerSecond float64
	Burst             int
}

// LoadWebhookConfigFromEnv loads webhook configuration from environment variables.
//
// Environment variables:
//   - DISPLAY_WEBHOOK_URLS: comma-separated webhook URLs (unset disables the channel)
//   - DISPLAY_WEBHOOK_TIMEOUT: duration string (default: 10s)
//   - DISPLAY_WEBHOOK_RATE: requests per second (default: 1)
//   - DISPLAY_WEBHOOK_BURST: burst size (default: 3)
func LoadWebhookConfigFromEnv() WebhookConfig {
	urls := pkgconfig.GetEnvStringList("DISPLAY_WEBHOOK_URLS", nil)
	return WebhookConfig{
		Enabled:           len(urls) > 0,
		URLs:              urls,
		Timeout:           pkgconfig.GetEnvDuration("DISPLAY_WEBHOOK_TIMEOUT", 10*time.Second),
		RequestsPerSecond: float64(pkgconfig.GetEnvInt("DISPLAY_WEBHOOK_RATE", 1)),
		Burst:             pkgconfig.GetEnvInt("DISPLAY_WEBHOOK_BURST", 3),
	}
}

// updatePayload is the JSON document posted to each webhook.
type updatePayload struct {
	Version uint64         `json:"version"`
	Count   int            `json:"count"`
	Places  []placePayload `json:"places"`
}

type placePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// WebhookChannel pushes board updates to one or more webhook URLs.
//
// Deliveries run on their own goroutine so the presentation loop never
// blocks on the network. A token bucket rate-limits deliveries; when a
// refresh schedule outpaces the bucket, the stale delivery is dropped
// (the next one carries the newer snapshot anyway).
type WebhookChannel struct {
	config  WebhookConfig
	client  *http.Client
	limiter *rate.Limiter
	source  board.StateReader
}

// NewWebhookChannel creates a webhook display channel.
func NewWebhookChannel(config WebhookConfig, source board.StateReader) *WebhookChannel {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 1
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	return &WebhookChannel{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		source:  source,
	}
}

// Name returns the channel identifier "webhook".
func (c *WebhookChannel) Name() string { return "webhook" }

// DataChanged snapshots the board and delivers the update in the background.
func (c *WebhookChannel) DataChanged(ctx context.Context) {
	if !c.config.Enabled {
		return
	}

	places := c.source.Snapshot()
	version := c.source.Version()

	// The delivery must survive the refresh context ending, but keeps its
	// values (refresh ID) for log correlation.
	go c.deliver(context.WithoutCancel(ctx), places, version)
}

func (c *WebhookChannel) deliver(ctx context.Context, places []entity.Place, version uint64) {
	requestID := board.RefreshIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	logger := slog.Default().With(
		slog.String("channel", "webhook"),
		slog.String("request_id", requestID))

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		logger.Warn("webhook delivery dropped by rate limiter", slog.Any("error", err))
		metrics.RecordNotification("webhook", false)
		return
	}

	payload := updatePayload{
		Version: version,
		Count:   len(places),
		Places:  make([]placePayload, 0, len(places)),
	}
	for _, p := range places {
		payload.Places = append(payload.Places, placePayload{
			Name:        p.Name,
			Description: p.Description,
			Location:    p.Location,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to encode webhook payload", slog.Any("error", err))
		metrics.RecordNotification("webhook", false)
		return
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, webhookURL := range c.config.URLs {
		webhookURL := webhookURL
		eg.Go(func() error {
			return c.post(egCtx, webhookURL, body)
		})
	}

	if err := eg.Wait(); err != nil {
		logger.Warn("webhook delivery failed",
			slog.Uint64("version", version),
			slog.Any("error", err))
		metrics.RecordNotification("webhook", false)
		return
	}

	logger.Debug("webhook delivery completed",
		slog.Uint64("version", version),
		slog.Int("places", len(places)),
		slog.Int("webhooks", len(c.config.URLs)))
	metrics.RecordNotification("webhook", true)
}

// post sends the payload to a single webhook URL. Error messages never
// include the URL itself; hooks frequently embed secrets in their paths.
func (c *WebhookChannel) post(ctx context.Context, webhookURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}

	return nil
}
