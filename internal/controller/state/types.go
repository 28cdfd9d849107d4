package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Оформление брони: слот уже выбран кнопками, дальше текстом
	StateBookingName     UserState = "booking_name"
	StateBookingPhone    UserState = "booking_phone"
	StateBookingRequests UserState = "booking_requests"
	StateBookingConfirm  UserState = "booking_confirm"

	// Сотрудник вводит часы работы ресторана
	StateSetHours UserState = "set_hours"
)

// Ключи временных данных диалога
const (
	KeyRestaurantID = "restaurant_id"
	KeyDate         = "date"
	KeyTime         = "time"
	KeyPartySize    = "party_size"
	KeyName         = "name"
	KeyPhone        = "phone"
	KeyRequests     = "requests"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]any
}
