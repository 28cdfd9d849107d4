package availability

import (
	"testing"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	bookings := []*model.Booking{
		booking(todaySat, "13:00", 2, model.BookingStatusConfirmed, nil),
		booking(todaySat, "11:00", 4, model.BookingStatusCompleted, nil),
		booking(monday, "19:00", 6, model.BookingStatusPending, nil),
		booking(monday, "19:00", 3, model.BookingStatusCancelled, nil),
		booking("2026-10-10", "19:00", 2, model.BookingStatusNoShow, nil),
		booking("2026-10-10", "20:00", 4, model.BookingStatusCompleted, nil),
		booking("2026-10-10", "20:00", 2, model.BookingStatusConfirmed, nil),
		{RestaurantID: 99, Date: todaySat, Time: "13:00", PartySize: 8, Status: model.BookingStatusConfirmed},
	}

	stats := ComputeStats(restaurantID, bookings, todaySat, fixedNow)

	assert.Equal(t, restaurantID, stats.RestaurantID)
	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 2, stats.Today)
	// в прошлом подтверждённая бронь не считается предстоящей
	assert.Equal(t, 2, stats.Upcoming)
	assert.Equal(t, 2, stats.ByStatus[model.BookingStatusConfirmed])
	assert.Equal(t, 2, stats.ByStatus[model.BookingStatusCompleted])
	assert.Equal(t, 0, stats.ByStatus[model.BookingStatusSeated])
	assert.InDelta(t, 1.0/4.0, stats.NoShowRate, 1e-9)
	assert.InDelta(t, 1.0/7.0, stats.CancellationRate, 1e-9)
	assert.Equal(t, 20, stats.TotalGuests)
	assert.InDelta(t, 20.0/6.0, stats.AveragePartySize, 1e-9)
	assert.Equal(t, fixedNow, stats.ComputedAt)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(restaurantID, nil, todaySat, fixedNow)

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.NoShowRate)
	assert.Zero(t, stats.CancellationRate)
	assert.Zero(t, stats.AveragePartySize)
	assert.Len(t, stats.ByStatus, len(model.AllBookingStatuses))
}
