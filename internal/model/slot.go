package model

// TimeSlot вычисляется на каждый запрос и не хранится
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
}

type DayAvailability struct {
	Date   string     `json:"date"`
	IsOpen bool       `json:"is_open"`
	Slots  []TimeSlot `json:"slots"`
}

// AvailableSlots возвращает только слоты, в которые можно записаться
func (d DayAvailability) AvailableSlots() []TimeSlot {
	var result []TimeSlot
	for _, slot := range d.Slots {
		if slot.Available {
			result = append(result, slot)
		}
	}
	return result
}
