package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	// 0.125 is binary-exact, so this pins the half-up behavior.
	assert.Equal(t, 0.13, RoundCents(0.125))
	assert.Equal(t, 10.56, RoundCents(10.556))
	assert.Equal(t, 10.55, RoundCents(10.554))
	assert.Equal(t, 0.0, RoundCents(0))
	assert.Equal(t, 99.99, RoundCents(99.99))
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(15000), ToCents(150))
	assert.Equal(t, int64(12345), ToCents(123.45))
	assert.Equal(t, int64(1), ToCents(0.01))
	assert.Equal(t, int64(0), ToCents(0))
}
