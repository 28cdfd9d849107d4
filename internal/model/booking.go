package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения ресторана
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusSeated    BookingStatus = "seated"    // Гости за столом
	BookingStatusCompleted BookingStatus = "completed" // Завершено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено
	BookingStatusNoShow    BookingStatus = "no-show"   // Гости не пришли
)

// AllBookingStatuses перечисляет статусы в порядке жизненного цикла
var AllBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusSeated,
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusNoShow,
}

// IsValid проверяет что статус известен
func (s BookingStatus) IsValid() bool {
	for _, known := range AllBookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// HoldsCapacity сообщает, занимает ли бронирование место в слоте.
// Отменённые и неявившиеся брони места не занимают.
func (s BookingStatus) HoldsCapacity() bool {
	return s != BookingStatusCancelled && s != BookingStatusNoShow
}

type Booking struct {
	ID               int64         `json:"id"`
	RestaurantID     int64         `json:"restaurant_id"`
	UserID           int64         `json:"user_id"`
	Date             string        `json:"date"` // YYYY-MM-DD
	Time             string        `json:"time"` // HH:MM
	PartySize        int           `json:"party_size"`
	Status           BookingStatus `json:"status"`
	TableID          *string       `json:"table_id,omitempty"` // только в режиме table-based
	ConfirmationCode string        `json:"confirmation_code"`
	CustomerName     string        `json:"customer_name"`
	CustomerPhone    string        `json:"customer_phone"`
	SpecialRequests  string        `json:"special_requests"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	// Подставляет контроллер для карточки брони, в БД не хранится
	Restaurant *Restaurant `json:"restaurant,omitempty"`
}

// CreateBookingInput содержит данные, которые пользователь отправляет при бронировании
type CreateBookingInput struct {
	RestaurantID    int64  `json:"restaurant_id" validate:"gt=0"`
	UserID          int64  `json:"user_id" validate:"gt=0"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	PartySize       int    `json:"party_size" validate:"gte=1"`
	CustomerName    string `json:"customer_name" validate:"required,max=100"`
	CustomerPhone   string `json:"customer_phone" validate:"max=32"`
	SpecialRequests string `json:"special_requests" validate:"max=500"`
}
