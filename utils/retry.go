package utils

import (
	"context"
	"strings"
	"time"
)

// lockConflictMarker is the substring the backend puts in errors raised by
// its per-row concurrency control.
const lockConflictMarker = "currently being modified"

// IsLockConflict reports whether err is an optimistic-lock conflict.
func IsLockConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), lockConflictMarker)
}

// RetryOnLock runs op, retrying only lock-conflict errors up to maxAttempts
// with a fixed delay between attempts. Any other error is returned
// immediately; after the final attempt the last error is returned.
func RetryOnLock(ctx context.Context, maxAttempts int, delay time.Duration, op func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if !IsLockConflict(err) {
			return err
		}
		lastErr = err
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}
