package formatting

import "github.com/Freeeeeet/restaurant_booking_bot/internal/model"

// BookingStatusDisplay представляет отображение статуса бронирования
type BookingStatusDisplay struct {
	Emoji string
	Text  string
}

var bookingStatusDisplays = map[model.BookingStatus]BookingStatusDisplay{
	model.BookingStatusPending:   {"⏳", "Ожидает подтверждения"},
	model.BookingStatusConfirmed: {"✅", "Подтверждена"},
	model.BookingStatusSeated:    {"🍽", "Гости за столом"},
	model.BookingStatusCompleted: {"✔️", "Завершена"},
	model.BookingStatusCancelled: {"❌", "Отменена"},
	model.BookingStatusNoShow:    {"🚷", "Гости не пришли"},
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса бронирования
func GetBookingStatusDisplay(status model.BookingStatus) BookingStatusDisplay {
	if display, ok := bookingStatusDisplays[status]; ok {
		return display
	}
	return BookingStatusDisplay{"❓", "Неизвестно"}
}

// StatusActionLabel подпись кнопки перевода брони в статус
func StatusActionLabel(to model.BookingStatus) string {
	switch to {
	case model.BookingStatusConfirmed:
		return "✅ Подтвердить"
	case model.BookingStatusSeated:
		return "🍽 Посадить"
	case model.BookingStatusCompleted:
		return "✔️ Завершить"
	case model.BookingStatusCancelled:
		return "❌ Отменить"
	case model.BookingStatusNoShow:
		return "🚷 Не пришли"
	default:
		return string(to)
	}
}
