package availability

import (
	"testing"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestTransition_AllPairs(t *testing.T) {
	allowed := map[model.BookingStatus]map[model.BookingStatus]bool{
		model.BookingStatusPending:   {model.BookingStatusConfirmed: true, model.BookingStatusCancelled: true},
		model.BookingStatusConfirmed: {model.BookingStatusSeated: true, model.BookingStatusCancelled: true, model.BookingStatusNoShow: true},
		model.BookingStatusSeated:    {model.BookingStatusCompleted: true},
	}

	created := time.Date(2026, time.October, 1, 10, 0, 0, 0, time.UTC)
	checked := 0

	for _, from := range model.AllBookingStatuses {
		for _, to := range model.AllBookingStatuses {
			checked++
			b := &model.Booking{ID: 7, Status: from, UpdatedAt: created}

			err := Transition(b, to, fixedNow)

			if allowed[from][to] {
				assert.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, b.Status)
				assert.Equal(t, fixedNow, b.UpdatedAt)
				assert.True(t, CanTransition(from, to))
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
				assert.Equal(t, from, b.Status, "status must not change on rejected transition")
				assert.Equal(t, created, b.UpdatedAt)
				assert.False(t, CanTransition(from, to))
			}
		}
	}

	assert.Equal(t, 36, checked)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(model.BookingStatusCompleted))
	assert.True(t, IsTerminal(model.BookingStatusCancelled))
	assert.True(t, IsTerminal(model.BookingStatusNoShow))
	assert.False(t, IsTerminal(model.BookingStatusPending))
	assert.False(t, IsTerminal(model.BookingStatusSeated))
}

func TestNextStatuses_ReturnsCopy(t *testing.T) {
	next := NextStatuses(model.BookingStatusConfirmed)
	next[0] = model.BookingStatusCompleted

	assert.Equal(t, model.BookingStatusSeated, NextStatuses(model.BookingStatusConfirmed)[0])
}
