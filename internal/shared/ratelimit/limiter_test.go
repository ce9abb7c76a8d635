package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimiterExhaustsBurst(t *testing.T) {
	// 2 per minute -> burst of 1: first call passes, second is rejected.
	l := New(2)

	assert.True(t, l.Allow(42))
	assert.False(t, l.Allow(42))
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := New(2)

	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))
	assert.True(t, l.Allow(2), "a different key must have its own bucket")
}
