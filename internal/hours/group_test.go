package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var englishShort = DayTranslations{
	Short: map[string]string{
		"Monday": "Mon", "Tuesday": "Tue", "Wednesday": "Wed", "Thursday": "Thu",
		"Friday": "Fri", "Saturday": "Sat", "Sunday": "Sun",
	},
}

var russian = DayTranslations{
	Full: map[string]string{
		"Monday": "Понедельник", "Tuesday": "Вторник", "Wednesday": "Среда", "Thursday": "Четверг",
		"Friday": "Пятница", "Saturday": "Суббота", "Sunday": "Воскресенье",
	},
	Short: map[string]string{
		"Monday": "Пн", "Tuesday": "Вт", "Wednesday": "Ср", "Thursday": "Чт",
		"Friday": "Пт", "Saturday": "Сб", "Sunday": "Вс",
	},
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tr    DayTranslations
		want  string
	}{
		{
			name:  "range plus single day",
			input: "Monday - Friday: 9am-5pm, Saturday: 10am-2pm",
			tr:    englishShort,
			want:  "Mon - Fri: 9am-5pm, Sat: 10am-2pm",
		},
		{
			name:  "empty input passes through",
			input: "",
			tr:    englishShort,
			want:  "",
		},
		{
			name:  "no days passes through",
			input: "gibberish no days here",
			tr:    russian,
			want:  "gibberish no days here",
		},
		{
			name: "seven identical days collapse",
			input: "Monday: 9-5\nTuesday: 9-5\nWednesday: 9-5\nThursday: 9-5\n" +
				"Friday: 9-5\nSaturday: 9-5\nSunday: 9-5",
			tr:   DayTranslations{},
			want: "Mon - Sun: 9-5",
		},
		{
			name:  "individual entry overrides range",
			input: "Mon - Fri: 9-17, Wednesday: 12-17",
			tr:    englishShort,
			want:  "Mon, Tue: 9-17, Wed: 12-17, Thu, Fri: 9-17",
		},
		{
			name:  "reversed range contributes nothing",
			input: "Sun - Mon: 10-12",
			tr:    englishShort,
			want:  "Sun - Mon: 10-12",
		},
		{
			name:  "unknown range endpoint is ignored",
			input: "Mon - Xyz: 9-5, Sat: 10-2",
			tr:    englishShort,
			want:  "Sat: 10-2",
		},
		{
			name:  "abbreviations on separate lines",
			input: "Mon 9-17\nTue 9-17\nWed 10-18",
			tr:    englishShort,
			want:  "Mon, Tue: 9-17, Wed: 10-18",
		},
		{
			name:  "pipe delimited entries",
			input: "Mon: 9-5 | Tue: 9-5 | Wed: closed",
			tr:    englishShort,
			want:  "Mon, Tue: 9-5, Wed: closed",
		},
		{
			name:  "case insensitive range",
			input: "MONDAY - friday: 9-5",
			tr:    DayTranslations{},
			want:  "Mon - Fri: 9-5",
		},
		{
			name:  "localized labels",
			input: "Monday - Sunday: 10:00-22:00",
			tr:    russian,
			want:  "Пн - Вс: 10:00-22:00",
		},
		{
			name:  "localized full names in line fallback",
			input: "Понедельник: 10-20\nвторник: 10-20",
			tr:    russian,
			want:  "Пн, Вт: 10-20",
		},
		{
			name:  "unmatched free text is dropped",
			input: "Mon - Fri: 9-5, call us for holidays",
			tr:    englishShort,
			want:  "Mon - Fri: 9-5",
		},
		{
			name:  "range without colon is read as a single day line",
			input: "Mon-Fri 9-5",
			tr:    englishShort,
			want:  "Mon: Fri 9-5",
		},
		{
			name:  "gap breaks a run",
			input: "Mon: 9-5, Tue: 9-5, Thu: 9-5",
			tr:    englishShort,
			want:  "Mon, Tue: 9-5, Thu: 9-5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Group(tt.input, tt.tr))
		})
	}
}

func TestParse_RangeExpandsInclusive(t *testing.T) {
	got := Parse("Tue - Thu: 8-16", DayTranslations{})

	assert.Equal(t, map[string]string{
		"Tuesday":   "8-16",
		"Wednesday": "8-16",
		"Thursday":  "8-16",
	}, got)
}

func TestParse_FirstMatchingDayWins(t *testing.T) {
	// "T" является префиксом и Tuesday, и Thursday; побеждает первый по порядку
	got := Parse("T - Fr: 9-5", DayTranslations{})

	assert.Contains(t, got, "Tuesday")
	assert.Contains(t, got, "Friday")
	assert.NotContains(t, got, "Monday")
}
