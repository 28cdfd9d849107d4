package handlers

import (
	"errors"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/service"
)

// Ошибки уровня бота
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNoMessage       = errors.New("no message in callback")
	ErrInvalidCallback = errors.New("invalid callback format")
	ErrRateLimited     = errors.New("too many booking attempts")
	ErrDialogExpired   = errors.New("booking dialog expired")
	ErrNoAvailability  = errors.New("restaurant does not accept online bookings")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, availability.ErrSlotUnavailable):
		return "😔 Это время уже заняли. Выберите другой слот."
	case errors.Is(err, availability.ErrInvalidTransition):
		return "❌ Бронь нельзя перевести в этот статус"
	case errors.Is(err, ErrNoAvailability):
		return "📵 Ресторан пока не принимает онлайн-бронирования"
	case errors.Is(err, availability.ErrInvalidInput):
		return "❌ Некорректные данные бронирования"
	case errors.Is(err, service.ErrBookingNotFound):
		return "❌ Бронирование не найдено"
	case errors.Is(err, service.ErrRestaurantNotFound):
		return "❌ Ресторан не найден"
	case errors.Is(err, service.ErrNotBookingOwner):
		return "❌ Это не ваша бронь"
	case errors.Is(err, service.ErrNotStaff):
		return "❌ Эта функция доступна только сотрудникам ресторана"
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidCallback):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrRateLimited):
		return "⏳ Слишком много попыток бронирования. Попробуйте через минуту."
	case errors.Is(err, ErrDialogExpired):
		return "⌛️ Данные брони устарели. Начните заново: /book"
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}

// isExpected отделяет ошибки пользователя от сбоев, которые нужно логировать как error
func isExpected(err error) bool {
	return ErrorMessage(err) != ErrorMessage(nil)
}
