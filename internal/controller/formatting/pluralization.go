package formatting

func pluralize(count int, one, few, many string) string {
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeGuests возвращает правильное склонение слова "гость"
func PluralizeGuests(count int) string {
	return pluralize(count, "гость", "гостя", "гостей")
}

// PluralizeBookings возвращает правильное склонение слова "бронь"
func PluralizeBookings(count int) string {
	return pluralize(count, "бронь", "брони", "броней")
}
