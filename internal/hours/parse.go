// Package hours разбирает часы работы, введённые в свободной форме,
// и сворачивает их в короткую строку по дням недели.
package hours

import (
	"regexp"
	"strings"
)

// Days канонический порядок дней
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayTranslations локализованные названия дней, ключ: английское название из Days
type DayTranslations struct {
	Full  map[string]string
	Short map[string]string
}

var (
	// "<День> - <День> : <время>"
	rangePattern = regexp.MustCompile(`(?i)\b([a-z]+)\s*-\s*([a-z]+)\s*:\s*([^,|\n]+)`)
	// "<День> : <время>"
	entryPattern = regexp.MustCompile(`(?i)^\s*([a-z]+)\s*:\s*(.+?)\s*$`)
	separators   = regexp.MustCompile(`[\n,|]`)
)

const lineSeparator = `(?:\s*[:\-–]\s*|\s+)`

// Parse возвращает карту день → текст времени.
// Текст, не похожий ни на один из форматов, отбрасывается.
func Parse(hours string, tr DayTranslations) map[string]string {
	result := make(map[string]string)

	ranges := rangePattern.FindAllStringSubmatch(hours, -1)
	if len(ranges) == 0 {
		parseLines(hours, tr, result)
		return result
	}

	for _, m := range ranges {
		from, okFrom := matchDay(m[1])
		to, okTo := matchDay(m[2])
		if !okFrom || !okTo {
			continue
		}
		text := strings.TrimSpace(m[3])
		for i := from; i <= to; i++ {
			result[Days[i]] = text
		}
	}

	// отдельные дни применяются после диапазонов и перекрывают их
	for _, segment := range separators.Split(hours, -1) {
		if rangePattern.MatchString(segment) {
			continue
		}
		m := entryPattern.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		if day, ok := matchDay(m[1]); ok {
			result[Days[day]] = m[2]
		}
	}

	return result
}

// parseLines запасной вариант: каждая строка вида "Monday 9-17" или "Mon: 9-17"
func parseLines(hours string, tr DayTranslations, result map[string]string) {
	patterns := linePatterns(tr)

	for _, line := range separators.Split(hours, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
	days:
		for i, dayPatterns := range patterns {
			for _, p := range dayPatterns {
				if m := p.FindStringSubmatch(line); m != nil {
					result[Days[i]] = strings.TrimSpace(m[1])
					break days
				}
			}
		}
	}
}

var englishLinePatterns = func() [][]*regexp.Regexp {
	patterns := make([][]*regexp.Regexp, len(Days))
	for i, day := range Days {
		patterns[i] = []*regexp.Regexp{
			dayLinePattern(day),
			regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(day[:3]) + `\.?` + lineSeparator + `(.+)$`),
		}
	}
	return patterns
}()

// linePatterns английские полные и сокращённые названия плюс локализованные полные
func linePatterns(tr DayTranslations) [][]*regexp.Regexp {
	if len(tr.Full) == 0 {
		return englishLinePatterns
	}

	patterns := make([][]*regexp.Regexp, len(Days))
	for i, day := range Days {
		patterns[i] = englishLinePatterns[i]
		if local := strings.TrimSpace(tr.Full[day]); local != "" && !strings.EqualFold(local, day) {
			patterns[i] = append(patterns[i][:len(patterns[i]):len(patterns[i])], dayLinePattern(local))
		}
	}
	return patterns
}

func dayLinePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(name) + lineSeparator + `(.+)$`)
}

// matchDay ищет первый день, название которого начинается с token
func matchDay(token string) (int, bool) {
	token = strings.ToLower(token)
	for i, day := range Days {
		if strings.HasPrefix(strings.ToLower(day), token) {
			return i, true
		}
	}
	return 0, false
}
