// Package transport issues the outbound HTTP GET against the remote board
// endpoint and returns the raw response body. It does not interpret the body;
// decoding is the decode package's job.
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"spot-board/internal/domain/entity"
	"spot-board/internal/resilience/circuitbreaker"
	"spot-board/internal/resilience/retry"
)

// HTTPTransport fetches raw response bodies over HTTP.
//
// Each attempt performs exactly one GET exchange; resilience (retry with
// exponential backoff, circuit breaker) is layered above the exchange.
// Responses are size-limited while reading and redirect targets are
// re-validated.
//
// Thread safety: HTTPTransport is safe for concurrent use.
type HTTPTransport struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// New creates an HTTPTransport with the given configuration.
//
// The transport is configured with:
//   - Custom HTTP client with timeout and TLS settings
//   - Circuit breaker for fault tolerance
//   - Redirect validation for security
//   - Custom User-Agent for identification
func New(config Config) *HTTPTransport {
	t := &HTTPTransport{
		circuitBreaker: circuitbreaker.New(circuitbreaker.TransportConfig()),
		retryConfig:    retry.TransportConfig(),
		config:         config,
	}

	// Each redirect target is validated for security (SSRF check)
	client := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= t.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := t.validateEndpoint(req.URL.String()); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	t.client = client
	return t
}

// Fetch performs an HTTP GET against the given endpoint and returns the
// complete response body. A non-2xx status is reported as a failure; the
// body is never returned in that case.
//
// Transient failures (5xx, 429, 408, network timeouts) are retried with
// exponential backoff; the whole exchange runs through a circuit breaker so
// a dead endpoint fails fast instead of piling up requests.
func (t *HTTPTransport) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	if err := t.validateEndpoint(endpoint); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}

	var body []byte
	retryErr := retry.WithBackoff(ctx, t.retryConfig, func() error {
		cbResult, err := t.circuitBreaker.Execute(func() (interface{}, error) {
			return t.doFetch(ctx, endpoint)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("transport circuit breaker open, request rejected",
					slog.String("circuit", t.circuitBreaker.Name()),
					slog.String("endpoint", endpoint),
					slog.String("state", t.circuitBreaker.State().String()))
			}
			return err
		}

		body = cbResult.([]byte)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return body, nil
}

// doFetch performs the actual HTTP exchange without retry or circuit breaker.
func (t *HTTPTransport) doFetch(ctx context.Context, endpoint string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInvalidEndpoint, err)
	}

	req.Header.Set("User-Agent", t.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: request exceeded %v", ErrTimeout, t.config.Timeout)
		}
		// Surface redirect validation errors directly
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	// Read response body with size limit. One extra byte distinguishes
	// "at the limit" from "over the limit".
	limitedReader := io.LimitReader(resp.Body, t.config.MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if int64(len(body)) > t.config.MaxBodySize {
		return nil, fmt.Errorf("%w: response size exceeds %d bytes", ErrBodyTooLarge, t.config.MaxBodySize)
	}

	return body, nil
}

// validateEndpoint checks URL shape and, when configured, private-network targets.
func (t *HTTPTransport) validateEndpoint(endpoint string) error {
	if err := entity.ValidateURL(endpoint); err != nil {
		return err
	}
	if t.config.DenyPrivateIPs {
		if err := entity.CheckPrivateHost(endpoint); err != nil {
			return err
		}
	}
	return nil
}
