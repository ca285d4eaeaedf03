package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/valko/pereklad/internal/placeholder"
)

// Client wraps a Backend with retries and placeholder protection. It never
// returns an error: an entry that fails every attempt yields a failed
// Outcome carrying the source text, so callers can always write something.
type Client struct {
	backend     Backend
	maxAttempts int
	retryDelay  time.Duration
}

func NewClient(backend Backend, maxAttempts int, retryDelay time.Duration) *Client {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		backend:     backend,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

func (c *Client) Translate(ctx context.Context, entry Entry) Outcome {
	protected, originals := placeholder.Protect(entry.SourceText)

	attemptEntry := entry
	attemptEntry.SourceText = protected

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 && c.retryDelay > 0 {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}

		text, err := c.backend.Translate(ctx, attemptEntry)
		if err != nil {
			lastErr = err
			continue
		}

		if missing := placeholder.Missing(text, originals); len(missing) > 0 {
			lastErr = fmt.Errorf("translation dropped %d placeholder(s)", len(missing))
			continue
		}

		restored := placeholder.Restore(text, originals)
		if restored == "" {
			lastErr = fmt.Errorf("empty translation")
			continue
		}

		return Outcome{Key: entry.Key, ResultText: restored, Succeeded: true}
	}

	detail := "translation failed"
	if lastErr != nil {
		detail = lastErr.Error()
	}
	return Outcome{
		Key:         entry.Key,
		ResultText:  entry.SourceText,
		Succeeded:   false,
		ErrorDetail: detail,
	}
}
