package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingLimiter(t *testing.T) {
	l := NewBookingLimiter(2)
	start := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

	assert.True(t, l.allowAt(1, start))
	assert.True(t, l.allowAt(1, start))
	assert.False(t, l.allowAt(1, start), "burst exhausted")
	assert.True(t, l.allowAt(2, start), "limits are per user")

	// одна попытка восстанавливается за полминуты
	assert.True(t, l.allowAt(1, start.Add(30*time.Second)))
	assert.False(t, l.allowAt(1, start.Add(30*time.Second)))
}

func TestBookingLimiter_NonPositiveRate(t *testing.T) {
	l := NewBookingLimiter(0)

	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))
}
