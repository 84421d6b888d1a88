// File: utils/constants.go
package utils

import "time"

// SessionCachePrefix is the prefix used for Redis checkout session keys.
const SessionCachePrefix = "checkout:"

// SessionTTL is how long an abandoned checkout session is kept.
const SessionTTL = 30 * time.Minute

// PaymentTimeout bounds every call to the payment processor.
const PaymentTimeout = 15 * time.Second

// LockRetryAttempts and LockRetryDelay configure RetryOnLock call sites.
const (
	LockRetryAttempts = 3
	LockRetryDelay    = 500 * time.Millisecond
)
