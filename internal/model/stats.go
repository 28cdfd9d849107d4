package model

import "time"

// RestaurantBookingStats агрегаты по бронированиям ресторана, считаются по запросу
type RestaurantBookingStats struct {
	RestaurantID     int64                 `json:"restaurant_id"`
	Total            int                   `json:"total"`
	ByStatus         map[BookingStatus]int `json:"by_status"`
	Today            int                   `json:"today"`
	Upcoming         int                   `json:"upcoming"`
	NoShowRate       float64               `json:"no_show_rate"`
	CancellationRate float64               `json:"cancellation_rate"`
	AveragePartySize float64               `json:"average_party_size"`
	TotalGuests      int                   `json:"total_guests"`
	ComputedAt       time.Time             `json:"computed_at"`
}
