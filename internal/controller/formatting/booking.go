package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
)

// FormatBooking карточка брони для гостя
func FormatBooking(b *model.Booking) string {
	status := GetBookingStatusDisplay(b.Status)

	var sb strings.Builder
	if b.Restaurant != nil {
		fmt.Fprintf(&sb, "🏠 %s\n", b.Restaurant.Name)
	}
	fmt.Fprintf(&sb, "📅 %s, %s\n", FormatDate(b.Date), b.Time)
	fmt.Fprintf(&sb, "👥 %d %s\n", b.PartySize, PluralizeGuests(b.PartySize))
	fmt.Fprintf(&sb, "🔖 Код: %s\n", b.ConfirmationCode)
	fmt.Fprintf(&sb, "%s %s", status.Emoji, status.Text)
	return sb.String()
}

// FormatBookingForStaff строка брони в списке сотрудника
func FormatBookingForStaff(b *model.Booking) string {
	status := GetBookingStatusDisplay(b.Status)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s · %d %s · %s", status.Emoji, b.Time, b.PartySize, PluralizeGuests(b.PartySize), b.CustomerName)
	if b.TableID != nil {
		fmt.Fprintf(&sb, " · стол %s", *b.TableID)
	}
	if b.CustomerPhone != "" {
		fmt.Fprintf(&sb, "\n    📞 %s", b.CustomerPhone)
	}
	if b.SpecialRequests != "" {
		fmt.Fprintf(&sb, "\n    💬 %s", b.SpecialRequests)
	}
	return sb.String()
}

// FormatStats сводка по бронированиям ресторана
func FormatStats(restaurantName string, s *model.RestaurantBookingStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s\n\n", restaurantName)
	fmt.Fprintf(&sb, "Всего: %d %s, %d %s\n", s.Total, PluralizeBookings(s.Total), s.TotalGuests, PluralizeGuests(s.TotalGuests))
	fmt.Fprintf(&sb, "Сегодня: %d · Впереди: %d\n\n", s.Today, s.Upcoming)

	for _, status := range model.AllBookingStatuses {
		display := GetBookingStatusDisplay(status)
		fmt.Fprintf(&sb, "%s %s: %d\n", display.Emoji, display.Text, s.ByStatus[status])
	}

	fmt.Fprintf(&sb, "\nНеявки: %.1f%%\n", s.NoShowRate*100)
	fmt.Fprintf(&sb, "Отмены: %.1f%%\n", s.CancellationRate*100)
	fmt.Fprintf(&sb, "Средний размер компании: %.1f", s.AveragePartySize)
	return sb.String()
}
