package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errLockConflict = errors.New("record is currently being modified")

func TestRetryOnLockEventualSuccess(t *testing.T) {
	calls := 0
	err := RetryOnLock(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errLockConflict
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnLockOtherErrorsNotRetried(t *testing.T) {
	calls := 0
	boom := errors.New("connection reset")
	err := RetryOnLock(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return boom
	})
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestRetryOnLockExhaustsAttempts(t *testing.T) {
	calls := 0
	err := RetryOnLock(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return errLockConflict
	})
	assert.Equal(t, errLockConflict, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnLockRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryOnLock(ctx, 5, 10*time.Millisecond, func() error {
		return errLockConflict
	})
	assert.Equal(t, context.Canceled, err)
}

func TestIsLockConflict(t *testing.T) {
	assert.True(t, IsLockConflict(errLockConflict))
	assert.False(t, IsLockConflict(errors.New("not found")))
	assert.False(t, IsLockConflict(nil))
}
