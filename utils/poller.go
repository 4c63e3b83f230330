// ABOUTME: This file implements generic fixed-interval polling with a budget
// ABOUTME: Polling stops on a terminal result, cancellation, or attempt cap

package utils

import (
	"context"
	"time"
)

// PollConfig bounds one polling run.
type PollConfig struct {
	// Interval is the delay between attempts.
	Interval time.Duration
	// MaxAttempts caps the number of fetches before the run gives up.
	MaxAttempts int
}

// PollOutcome says how a polling run ended.
type PollOutcome int

const (
	// PollCompleted means a fetch returned a terminal result.
	PollCompleted PollOutcome = iota
	// PollTimedOut means the attempt budget ran out without a terminal result.
	PollTimedOut
	// PollCancelled means the context was cancelled mid-run.
	PollCancelled
)

// Poll fetches repeatedly until isTerminal says the result is final, the
// context is cancelled, or cfg.MaxAttempts fetches have been made. The first
// fetch happens immediately; subsequent ones wait cfg.Interval.
//
// Fetch errors do not abort the run: the attempt is spent and polling
// continues, so a transient failure mid-run is invisible to the caller.
// onResult, when non-nil, observes every successful intermediate fetch.
func Poll[T any](ctx context.Context, cfg PollConfig, fetch func(context.Context) (T, error), isTerminal func(T) bool, onResult func(T)) (T, PollOutcome) {
	var zero T

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, PollCancelled
			case <-ticker.C:
			}
		}

		result, err := fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return zero, PollCancelled
			}
			continue
		}
		if onResult != nil {
			onResult(result)
		}
		if isTerminal(result) {
			return result, PollCompleted
		}
	}

	return zero, PollTimedOut
}
