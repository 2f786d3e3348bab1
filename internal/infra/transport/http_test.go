package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spot-board/internal/resilience/retry"
)

// testConfig allows loopback targets so httptest servers work.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DenyPrivateIPs = false
	cfg.Timeout = 2 * time.Second
	return cfg
}

func newTestTransport(cfg Config) *HTTPTransport {
	t := New(cfg)
	// Retries without delays keep the tests fast.
	t.retryConfig = retry.Config{
		MaxAttempts:    3,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
	return t
}

func TestFetchReturnsBody(t *testing.T) {
	const payload = `{"locations":[{"name":"Entropy","description":"Cafe","location":"Tech Spot 1"}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "SpotBoard/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	tr := newTestTransport(testConfig())
	body, err := tr.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
}

func TestFetchFailsFastOnClientError(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tr := newTestTransport(testConfig())
	_, err := tr.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var httpErr *retry.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests), "4xx must not be retried")
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"locations":[]}`))
	}))
	defer srv.Close()

	tr := newTestTransport(testConfig())
	body, err := tr.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, `{"locations":[]}`, string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestFetchExhaustsRetriesOnPersistentServerError(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr := newTestTransport(testConfig())
	_, err := tr.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxBodySize = 1024
	tr := newTestTransport(cfg)

	_, err := tr.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBodyTooLarge), "expected ErrBodyTooLarge, got %v", err)
}

func TestFetchRejectsInvalidEndpoint(t *testing.T) {
	tr := newTestTransport(testConfig())

	tests := []string{
		"",
		"ftp://example.com/locations",
		"not a url",
	}
	for _, endpoint := range tests {
		_, err := tr.Fetch(context.Background(), endpoint)
		assert.ErrorIs(t, err, ErrInvalidEndpoint, "endpoint %q", endpoint)
	}
}

func TestFetchDeniesPrivateEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.DenyPrivateIPs = true
	tr := newTestTransport(cfg)

	_, err := tr.Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrInvalidEndpoint)
}

func TestFetchRespectsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := newTestTransport(testConfig())
	_, err := tr.Fetch(ctx, srv.URL)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"excessive timeout", func(c *Config) { c.Timeout = time.Hour }, true},
		{"body size too small", func(c *Config) { c.MaxBodySize = 10 }, true},
		{"negative redirects", func(c *Config) { c.MaxRedirects = -1 }, true},
		{"empty user agent", func(c *Config) { c.UserAgent = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TRANSPORT_TIMEOUT", "30s")
	t.Setenv("TRANSPORT_USER_AGENT", "SpotBoardTest/0.1")
	t.Setenv("TRANSPORT_DENY_PRIVATE_IPS", "false")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "SpotBoardTest/0.1", cfg.UserAgent)
	assert.False(t, cfg.DenyPrivateIPs)
	assert.Equal(t, DefaultConfig().MaxBodySize, cfg.MaxBodySize)
}
