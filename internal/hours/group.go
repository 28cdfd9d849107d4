package hours

import (
	"fmt"
	"strings"
)

type dayRun struct {
	first int
	last  int
	time  string
}

// Group сворачивает часы работы: "Mon: 9-5, Tue: 9-5" → "Mon, Tue: 9-5".
// Если разобрать ничего не удалось, возвращает исходную строку.
func Group(hours string, tr DayTranslations) string {
	days := Parse(hours, tr)
	if len(days) == 0 {
		return hours
	}

	var runs []dayRun
	for i, day := range Days {
		text, ok := days[day]
		if !ok {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].last == i-1 && runs[n-1].time == text {
			runs[n-1].last = i
			continue
		}
		runs = append(runs, dayRun{first: i, last: i, time: text})
	}

	rendered := make([]string, 0, len(runs))
	for _, r := range runs {
		rendered = append(rendered, r.render(tr))
	}
	return strings.Join(rendered, ", ")
}

func (r dayRun) render(tr DayTranslations) string {
	first := shortName(Days[r.first], tr)
	last := shortName(Days[r.last], tr)

	switch r.last - r.first {
	case 0:
		return fmt.Sprintf("%s: %s", first, r.time)
	case 1:
		return fmt.Sprintf("%s, %s: %s", first, last, r.time)
	default:
		return fmt.Sprintf("%s - %s: %s", first, last, r.time)
	}
}

func shortName(day string, tr DayTranslations) string {
	if short, ok := tr.Short[day]; ok && short != "" {
		return short
	}
	return day[:3]
}
