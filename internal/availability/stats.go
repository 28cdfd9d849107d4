package availability

import (
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
)

// ComputeStats агрегирует брони ресторана. Брони других ресторанов игнорируются.
func ComputeStats(restaurantID int64, bookings []*model.Booking, today string, now time.Time) model.RestaurantBookingStats {
	stats := model.RestaurantBookingStats{
		RestaurantID: restaurantID,
		ByStatus:     make(map[model.BookingStatus]int, len(model.AllBookingStatuses)),
		ComputedAt:   now,
	}
	for _, status := range model.AllBookingStatuses {
		stats.ByStatus[status] = 0
	}

	guestBookings := 0
	for _, b := range bookings {
		if b.RestaurantID != restaurantID {
			continue
		}

		stats.Total++
		stats.ByStatus[b.Status]++

		if b.Date == today {
			stats.Today++
		}
		// ISO-даты сравниваются лексикографически
		if b.Date >= today && (b.Status == model.BookingStatusPending || b.Status == model.BookingStatusConfirmed) {
			stats.Upcoming++
		}
		if b.Status != model.BookingStatusCancelled {
			stats.TotalGuests += b.PartySize
			guestBookings++
		}
	}

	noShow := stats.ByStatus[model.BookingStatusNoShow]
	cancelled := stats.ByStatus[model.BookingStatusCancelled]
	finished := stats.ByStatus[model.BookingStatusCompleted] + noShow + cancelled

	if finished > 0 {
		stats.NoShowRate = float64(noShow) / float64(finished)
	}
	if stats.Total > 0 {
		stats.CancellationRate = float64(cancelled) / float64(stats.Total)
	}
	if guestBookings > 0 {
		stats.AveragePartySize = float64(stats.TotalGuests) / float64(guestBookings)
	}

	return stats
}
