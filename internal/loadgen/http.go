package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/fairway/pkg/logger"
)

// Submission outcomes.
const (
	outcomeAccepted  = "accepted"
	outcomeDuplicate = "duplicate"
	outcomeThrottled = "throttled"
	outcomeFailed    = "failed"
)

var errUnexpectedStatus = errors.New("unexpected status")

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// getJSON decodes the body of a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, url string, v interface{}) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d: %s", errUnexpectedStatus, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// submitAll posts submissions concurrently, bounded by config.Workers.
func submitAll(ctx context.Context, config *Config, client *HTTPClient, subs []Submission, stats *Stats) error {
	logger.Get().Info(ctx, "submitting profiles",
		logger.Int("count", len(subs)),
		logger.Int("workers", config.Workers),
	)

	url := config.BaseURL + "/profiles"
	var accepted, duplicate, throttled, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Workers)
	for _, sub := range subs {
		g.Go(func() error {
			switch submitSingle(gctx, client, url, sub) {
			case outcomeAccepted:
				accepted.Add(1)
			case outcomeDuplicate:
				duplicate.Add(1)
			case outcomeThrottled:
				throttled.Add(1)
			default:
				failed.Add(1)
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("submission interrupted: %w", err)
	}

	stats.Submitted += len(subs)
	stats.Accepted += int(accepted.Load())
	stats.Duplicate += int(duplicate.Load())
	stats.Throttled += int(throttled.Load())
	stats.Failed += int(failed.Load())

	logger.Get().Info(ctx, "submission completed",
		logger.Int64("accepted", accepted.Load()),
		logger.Int64("duplicate", duplicate.Load()),
		logger.Int64("throttled", throttled.Load()),
		logger.Int64("failed", failed.Load()),
	)
	return nil
}

// submitSingle posts one submission, backing off while the service answers 429.
func submitSingle(ctx context.Context, client *HTTPClient, url string, sub Submission) string {
	for attempt := 0; ; attempt++ {
		outcome := postOnce(ctx, client, url, sub)
		if outcome != outcomeThrottled || attempt >= maxThrottleRetries {
			return outcome
		}
		select {
		case <-ctx.Done():
			return outcomeFailed
		case <-time.After(throttleBackoff << attempt):
		}
	}
}

func postOnce(ctx context.Context, client *HTTPClient, url string, sub Submission) string {
	resp, err := client.Post(ctx, url, sub)
	if err != nil {
		return outcomeFailed
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return outcomeFailed
	}

	switch resp.StatusCode {
	case http.StatusAccepted:
		return outcomeAccepted
	case http.StatusOK:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && !ack.Duplicate {
			return outcomeAccepted
		}
		return outcomeDuplicate
	case http.StatusTooManyRequests:
		return outcomeThrottled
	default:
		return outcomeFailed
	}
}
