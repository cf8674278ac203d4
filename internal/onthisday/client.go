package onthisday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"chronocorpus/internal/util"
)

const defaultBaseURL = "https://api.wikimedia.org/feed/v1/wikipedia"

// Client fetches the day-in-history feed for one language. Retryable
// responses (429 and server-side 5xx) are retried with exponential backoff
// plus jitter up to a bounded attempt count; any other HTTP error fails the
// day immediately.
type Client struct {
	baseURL    string
	lang       string
	userAgent  string
	httpClient *http.Client
	maxRetries int
	baseSleep  time.Duration
}

func NewClient(lang, userAgent string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		lang:       lang,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		maxRetries: 5,
		baseSleep:  800 * time.Millisecond,
	}
}

// FetchDay retrieves all events the feed carries for one month/day pair.
func (c *Client) FetchDay(ctx context.Context, month, day int) (*feedPage, error) {
	url := fmt.Sprintf("%s/%s/onthisday/all/%02d/%02d", c.baseURL, c.lang, month, day)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, c.backoff(attempt)); err != nil {
				return nil, err
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build feed request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("feed request %02d/%02d: %v: %w", month, day, err, util.ErrTransient)
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var page feedPage
			if err := json.Unmarshal(body, &page); err != nil {
				return nil, fmt.Errorf("decode feed page %02d/%02d: %w", month, day, err)
			}
			return &page, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("feed %02d/%02d status %d: %w", month, day, resp.StatusCode, util.ErrRateLimited)
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("feed %02d/%02d status %d: %w", month, day, resp.StatusCode, util.ErrTransient)
		default:
			return nil, fmt.Errorf("feed %02d/%02d status %d: %s: %w", month, day, resp.StatusCode, truncate(string(body), 200), util.ErrPermanent)
		}
	}
	return nil, fmt.Errorf("feed %02d/%02d exhausted %d attempts: %w", month, day, c.maxRetries, lastErr)
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.baseSleep << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(300 * time.Millisecond)))
	return d + jitter
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
