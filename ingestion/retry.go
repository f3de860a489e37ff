package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/coursefinder/ai"
)

// backoff retries embedder calls, doubling the wait after every failure.
type backoff struct {
	attempts int
	delay    time.Duration
	logger   *slog.Logger
}

// permanent reports errors a retry cannot fix.
func permanent(err error) bool {
	return errors.Is(err, ai.ErrDimensionMismatch) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// run calls embed for a batch of size texts until it succeeds, fails
// permanently, runs out of attempts, or ctx ends. The last error is returned.
func (b backoff) run(ctx context.Context, texts int, embed func() error) error {
	if b.attempts < 1 {
		return ErrInvalidMaxAttempts
	}

	wait := b.delay
	var err error
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err = embed(); err == nil {
			if attempt > 1 {
				b.logger.Debug("batch embedded after retry", "texts", texts, "attempt", attempt)
			}
			return nil
		}
		if permanent(err) || attempt == b.attempts {
			return err
		}
		b.logger.Warn("embedding batch failed, retrying",
			"texts", texts, "attempt", attempt, "of", b.attempts, "wait", wait, "err", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}
