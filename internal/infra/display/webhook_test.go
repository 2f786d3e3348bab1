package display

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spot-board/internal/domain/entity"
)

func waitFor(t *testing.T, ch <-chan updatePayload) updatePayload {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for webhook delivery")
		return updatePayload{}
	}
}

func TestWebhookChannelDeliversUpdate(t *testing.T) {
	received := make(chan updatePayload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var payload updatePayload
		require.NoError(t, json.Unmarshal(body, &payload))
		received <- payload
	}))
	defer srv.Close()

	reader := &fakeReader{
		places:  []entity.Place{{Name: "Entropy", Description: "Cafe", Location: "Tech Spot 1"}},
		version: 7,
	}
	ch := NewWebhookChannel(WebhookConfig{
		Enabled:           true,
		URLs:              []string{srv.URL},
		Timeout:           2 * time.Second,
		RequestsPerSecond: 100,
		Burst:             10,
	}, reader)

	ch.DataChanged(context.Background())

	payload := waitFor(t, received)
	assert.Equal(t, uint64(7), payload.Version)
	assert.Equal(t, 1, payload.Count)
	require.Len(t, payload.Places, 1)
	assert.Equal(t, "Entropy", payload.Places[0].Name)
}

func TestWebhookChannelFansOutToAllURLs(t *testing.T) {
	var hits int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	})
	srv1 := httptest.NewServer(handler)
	defer srv1.Close()
	srv2 := httptest.NewServer(handler)
	defer srv2.Close()

	ch := NewWebhookChannel(WebhookConfig{
		Enabled:           true,
		URLs:              []string{srv1.URL, srv2.URL},
		Timeout:           2 * time.Second,
		RequestsPerSecond: 100,
		Burst:             10,
	}, &fakeReader{version: 1})

	ch.DataChanged(context.Background())

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&hits) == 2
	}, 2*time.Second, 10*time.Millisecond, "both webhooks should be hit")
}

func TestWebhookChannelDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("disabled channel must not deliver")
	}))
	defer srv.Close()

	ch := NewWebhookChannel(WebhookConfig{Enabled: false, URLs: []string{srv.URL}}, &fakeReader{})
	ch.DataChanged(context.Background())
	time.Sleep(100 * time.Millisecond)
}

func TestLoadWebhookConfigFromEnv(t *testing.T) {
	t.Setenv("DISPLAY_WEBHOOK_URLS", "https://hooks.example.com/a,https://hooks.example.com/b")
	t.Setenv("DISPLAY_WEBHOOK_TIMEOUT", "5s")

	cfg := LoadWebhookConfigFromEnv()
	assert.True(t, cfg.Enabled)
	assert.Len(t, cfg.URLs, 2)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadWebhookConfigFromEnvDisabledWithoutURLs(t *testing.T) {
	t.Setenv("DISPLAY_WEBHOOK_URLS", "")
	cfg := LoadWebhookConfigFromEnv()
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.URLs)
}
