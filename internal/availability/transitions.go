package availability

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
)

// transitions разрешённые переходы статусов брони.
// completed, cancelled и no-show конечные.
var transitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingStatusPending:   {model.BookingStatusConfirmed, model.BookingStatusCancelled},
	model.BookingStatusConfirmed: {model.BookingStatusSeated, model.BookingStatusCancelled, model.BookingStatusNoShow},
	model.BookingStatusSeated:    {model.BookingStatusCompleted},
}

// CanTransition проверяет переход from → to
func CanTransition(from, to model.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses возвращает статусы, в которые можно перевести бронь
func NextStatuses(from model.BookingStatus) []model.BookingStatus {
	return append([]model.BookingStatus(nil), transitions[from]...)
}

// IsTerminal сообщает, что из статуса переходов нет
func IsTerminal(status model.BookingStatus) bool {
	return len(transitions[status]) == 0
}

// Transition переводит бронь в новый статус и обновляет UpdatedAt.
// При ошибке бронь не меняется.
func Transition(b *model.Booking, to model.BookingStatus, now time.Time) error {
	if !CanTransition(b.Status, to) {
		return fmt.Errorf("%w: booking %d %s -> %s", ErrInvalidTransition, b.ID, b.Status, to)
	}
	b.Status = to
	b.UpdatedAt = now
	return nil
}
