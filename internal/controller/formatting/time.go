package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/hours"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
)

// RussianDays названия дней для свёртки часов работы
var RussianDays = hours.DayTranslations{
	Full: map[string]string{
		"Monday":    "Понедельник",
		"Tuesday":   "Вторник",
		"Wednesday": "Среда",
		"Thursday":  "Четверг",
		"Friday":    "Пятница",
		"Saturday":  "Суббота",
		"Sunday":    "Воскресенье",
	},
	Short: map[string]string{
		"Monday":    "Пн",
		"Tuesday":   "Вт",
		"Wednesday": "Ср",
		"Thursday":  "Чт",
		"Friday":    "Пт",
		"Saturday":  "Сб",
		"Sunday":    "Вс",
	},
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	return names[weekday]
}

// GetMonthName возвращает название месяца в родительном падеже
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "января",
		time.February:  "февраля",
		time.March:     "марта",
		time.April:     "апреля",
		time.May:       "мая",
		time.June:      "июня",
		time.July:      "июля",
		time.August:    "августа",
		time.September: "сентября",
		time.October:   "октября",
		time.November:  "ноября",
		time.December:  "декабря",
	}
	return names[month]
}

// FormatDate превращает YYYY-MM-DD в "Пн, 19 октября"; некорректную дату возвращает как есть
func FormatDate(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %d %s", GetWeekdayShort(t.Weekday()), t.Day(), GetMonthName(t.Month()))
}

// DateButtonLabel короткая подпись даты для кнопки: "Пн 19.10"
func DateButtonLabel(t time.Time) string {
	return fmt.Sprintf("%s %s", GetWeekdayShort(t.Weekday()), t.Format("02.01"))
}
