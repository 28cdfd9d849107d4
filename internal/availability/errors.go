package availability

import "errors"

// Ошибки движка доступности. Контекст добавляется через fmt.Errorf("%w: ...").
var (
	// ErrSlotUnavailable слот, стол или вместимость заняты к моменту записи
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrInvalidTransition смена статуса брони не разрешена
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidInput некорректный размер компании, дата вне окна или неизвестный ресторан
	ErrInvalidInput = errors.New("invalid input")
)
