package availability

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
)

// ParseDate разбирает дату YYYY-MM-DD в указанной зоне
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(model.DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed date %q", ErrInvalidInput, date)
	}
	return d, nil
}

// ParseTimeOfDay возвращает количество минут от полуночи для HH:MM
func ParseTimeOfDay(value string) (int, error) {
	// "15:04" принимает и часы без ведущего нуля: 9:30
	t, err := time.Parse(model.TimeOfDayLayout, value)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed time %q", ErrInvalidInput, value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatTimeOfDay обратная операция к ParseTimeOfDay
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeTime приводит время к виду HH:MM
func NormalizeTime(value string) (string, error) {
	minutes, err := ParseTimeOfDay(value)
	if err != nil {
		return "", err
	}
	return FormatTimeOfDay(minutes), nil
}

// DateString форматирует дату в YYYY-MM-DD
func DateString(t time.Time) string {
	return t.Format(model.DateLayout)
}

// startOfDay обнуляет время, сохраняя зону
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// overlaps проверяет пересечение полуинтервалов [a, a+length) и [b, b+length)
func overlaps(a, b, length int) bool {
	if length < 1 {
		length = 1
	}
	return a < b+length && b < a+length
}
