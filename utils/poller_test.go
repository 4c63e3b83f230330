// ABOUTME: This file tests the generic poller
// ABOUTME: Covers terminal results, attempt budgets, cancellation, and errors

package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastPollConfig(maxAttempts int) PollConfig {
	return PollConfig{Interval: time.Millisecond, MaxAttempts: maxAttempts}
}

func TestPoll_StopsOnTerminalResult(t *testing.T) {
	attempts := 0
	result, outcome := Poll(context.Background(), fastPollConfig(10),
		func(ctx context.Context) (string, error) {
			attempts++
			if attempts == 3 {
				return "completed", nil
			}
			return "pending", nil
		},
		func(s string) bool { return s == "completed" },
		nil,
	)

	assert.Equal(t, PollCompleted, outcome)
	assert.Equal(t, "completed", result)
	assert.Equal(t, 3, attempts)
}

func TestPoll_TimesOutAfterMaxAttempts(t *testing.T) {
	attempts := 0
	result, outcome := Poll(context.Background(), fastPollConfig(4),
		func(ctx context.Context) (string, error) {
			attempts++
			return "pending", nil
		},
		func(s string) bool { return false },
		nil,
	)

	assert.Equal(t, PollTimedOut, outcome)
	assert.Empty(t, result)
	assert.Equal(t, 4, attempts)
}

func TestPoll_CancellationStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	_, outcome := Poll(ctx, PollConfig{Interval: 50 * time.Millisecond, MaxAttempts: 100},
		func(ctx context.Context) (string, error) {
			attempts++
			if attempts == 2 {
				cancel()
			}
			return "pending", nil
		},
		func(s string) bool { return false },
		nil,
	)

	assert.Equal(t, PollCancelled, outcome)
	assert.Less(t, attempts, 100)
}

func TestPoll_FetchErrorSpendsAttemptAndContinues(t *testing.T) {
	attempts := 0
	result, outcome := Poll(context.Background(), fastPollConfig(5),
		func(ctx context.Context) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("transient failure")
			}
			return "completed", nil
		},
		func(s string) bool { return s == "completed" },
		nil,
	)

	assert.Equal(t, PollCompleted, outcome)
	assert.Equal(t, "completed", result)
}

func TestPoll_ObserverSeesIntermediateResults(t *testing.T) {
	var seen []string
	attempts := 0
	Poll(context.Background(), fastPollConfig(10),
		func(ctx context.Context) (string, error) {
			attempts++
			if attempts == 3 {
				return "done", nil
			}
			return "pending", nil
		},
		func(s string) bool { return s == "done" },
		func(s string) { seen = append(seen, s) },
	)

	assert.Equal(t, []string{"pending", "pending", "done"}, seen)
}
