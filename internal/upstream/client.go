package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/animecove/storefront-api/internal/platform/requestctx"
)

const (
	defaultClientTimeout = 10 * time.Second

	correlationHeader = "X-Request-Id"

	// maxErrorBodyBytes bounds how much of an upstream error body is kept.
	maxErrorBodyBytes = 64 << 10
)

// Option customises client construction.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient overrides the HTTP client used for upstream requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func buildClientOptions(opts []Option) clientOptions {
	options := clientOptions{
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// getJSON issues a GET against the target URL, decorating the request with a
// ULID correlation id, and decodes a 2xx JSON body into out. Non-2xx
// responses become *Error with the upstream status and body text.
func getJSON(ctx context.Context, hc *http.Client, source, target string, decorate func(*http.Request), out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("upstream %s: build request: %w", source, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	correlationID := ulid.Make().String()
	req.Header.Set(correlationHeader, correlationID)
	if decorate != nil {
		decorate(req)
	}

	logger := requestctx.Logger(ctx).With(
		zap.String("upstream", source),
		zap.String("correlation_id", correlationID),
	)

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		logger.Warn("upstream request failed", zap.Error(err))
		return fmt.Errorf("upstream %s: %w", source, err)
	}
	defer resp.Body.Close()

	logger.Debug("upstream request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &Error{Source: source, Status: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("upstream %s: decode response: %w", source, err)
	}
	return nil
}

// joinURL appends a path and optional query to a base URL.
func joinURL(base, path string, query url.Values) string {
	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}
