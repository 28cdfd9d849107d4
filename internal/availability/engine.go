package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
)

// Snapshot данные, по которым принимается решение о доступности.
// Bookings: брони ресторана на интересующую дату и соседние дни (можно и шире, лишнее отфильтруется).
// Соседние дни нужны режиму table-based: оборот поздней брони переходит через полночь.
type Snapshot struct {
	Config   *model.RestaurantAvailability
	Tables   []model.SimpleTable
	Bookings []*model.Booking
}

// Engine считает доступность слотов. Состояния между вызовами не хранит.
type Engine struct {
	loc *time.Location
	now func() time.Time
}

// NewEngine создаёт движок; loc задаёт зону ресторана, now отдаёт текущее время
func NewEngine(loc *time.Location, now func() time.Time) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{loc: loc, now: now}
}

// Location возвращает зону, в которой считаются даты
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Now возвращает текущее время в зоне ресторана
func (e *Engine) Now() time.Time {
	return e.now().In(e.loc)
}

// Today возвращает сегодняшнюю дату в формате YYYY-MM-DD
func (e *Engine) Today() string {
	return DateString(e.Now())
}

// InWindow проверяет что дата попадает в [сегодня, сегодня + advanceBookingDays]
func (e *Engine) InWindow(cfg *model.RestaurantAvailability, date time.Time) bool {
	today := startOfDay(e.Now())
	day := startOfDay(date.In(e.loc))
	last := today.AddDate(0, 0, cfg.AdvanceBookingDays)
	return !day.Before(today) && !day.After(last)
}

// Day вычисляет доступность на дату для компании заданного размера.
// Дата вне окна бронирования считается закрытым днём, а не ошибкой.
func (e *Engine) Day(s Snapshot, date string, partySize int) (model.DayAvailability, error) {
	if partySize < 1 {
		return model.DayAvailability{}, fmt.Errorf("%w: party size %d", ErrInvalidInput, partySize)
	}
	if s.Config == nil {
		return model.DayAvailability{}, fmt.Errorf("%w: availability is not configured", ErrInvalidInput)
	}

	d, err := ParseDate(date, e.loc)
	if err != nil {
		return model.DayAvailability{}, err
	}

	closed := model.DayAvailability{Date: date, IsOpen: false, Slots: []model.TimeSlot{}}

	if !e.InWindow(s.Config, d) {
		return closed, nil
	}

	day, ok := s.Config.DayFor(date, d.Weekday())
	if !ok || !day.IsOpen {
		return closed, nil
	}

	slots := make([]model.TimeSlot, 0, len(day.Slots))
	for _, slotTime := range day.Slots {
		start, err := ParseTimeOfDay(slotTime)
		if err != nil {
			// Validate не пропускает такие слоты, но конфиг мог попасть в хранилище в обход
			continue
		}
		slots = append(slots, e.slotState(s, day, date, start, partySize))
	}

	return model.DayAvailability{Date: date, IsOpen: true, Slots: slots}, nil
}

// Check повторно проверяет слот в момент записи.
// В режиме table-based возвращает выбранный стол, в режиме guest-count nil.
func (e *Engine) Check(s Snapshot, date, slotTime string, partySize int) (*string, error) {
	if partySize < 1 {
		return nil, fmt.Errorf("%w: party size %d", ErrInvalidInput, partySize)
	}
	if s.Config == nil {
		return nil, fmt.Errorf("%w: availability is not configured", ErrInvalidInput)
	}

	d, err := ParseDate(date, e.loc)
	if err != nil {
		return nil, err
	}
	start, err := ParseTimeOfDay(slotTime)
	if err != nil {
		return nil, err
	}

	if !e.InWindow(s.Config, d) {
		return nil, fmt.Errorf("%w: date %s is outside the booking window", ErrInvalidInput, date)
	}

	day, ok := s.Config.DayFor(date, d.Weekday())
	if !ok || !day.IsOpen {
		return nil, fmt.Errorf("%w: restaurant is closed on %s", ErrSlotUnavailable, date)
	}
	if !hasSlot(day, start) {
		return nil, fmt.Errorf("%w: no slot at %s on %s", ErrSlotUnavailable, FormatTimeOfDay(start), date)
	}
	if e.isPast(d, start) {
		return nil, fmt.Errorf("%w: slot %s %s has already started", ErrSlotUnavailable, date, FormatTimeOfDay(start))
	}

	if s.Config.ManagementMode == model.ManagementModeTableBased {
		table, ok := pickTable(s, date, start, partySize)
		if !ok {
			return nil, fmt.Errorf("%w: no free table for %d guests at %s %s",
				ErrSlotUnavailable, partySize, date, FormatTimeOfDay(start))
		}
		id := table.ID
		return &id, nil
	}

	capacity := s.Config.SlotCapacity(day)
	booked := bookedGuests(s, date, start)
	if booked+partySize > capacity {
		return nil, fmt.Errorf("%w: %d of %d seats taken at %s %s",
			ErrSlotUnavailable, booked, capacity, date, FormatTimeOfDay(start))
	}

	return nil, nil
}

// slotState считает занятость одного слота
func (e *Engine) slotState(s Snapshot, day model.DayConfig, date string, start, partySize int) model.TimeSlot {
	slot := model.TimeSlot{Time: FormatTimeOfDay(start)}

	if s.Config.ManagementMode == model.ManagementModeTableBased {
		for _, table := range qualifyingTables(s.Tables, partySize) {
			slot.Capacity++
			if tableOccupied(s, table.ID, date, start) {
				slot.Booked++
			}
		}
		slot.Available = slot.Booked < slot.Capacity
	} else {
		slot.Capacity = s.Config.SlotCapacity(day)
		slot.Booked = bookedGuests(s, date, start)
		slot.Available = slot.Booked+partySize <= slot.Capacity
	}

	if d, err := ParseDate(date, e.loc); err == nil && e.isPast(d, start) {
		slot.Available = false
	}

	return slot
}

// isPast сообщает, что слот сегодняшнего дня уже начался
func (e *Engine) isPast(date time.Time, start int) bool {
	slotStart := startOfDay(date).Add(time.Duration(start) * time.Minute)
	return !slotStart.After(e.Now())
}

func hasSlot(day model.DayConfig, start int) bool {
	for _, slotTime := range day.Slots {
		if m, err := ParseTimeOfDay(slotTime); err == nil && m == start {
			return true
		}
	}
	return false
}

// OccupiedTables возвращает столы, чьё окно оборота пересекается с [start, start+turn) на дату.
// Используется для плана зала: ключ: id стола.
func OccupiedTables(s Snapshot, date string, start int) map[string]bool {
	occupied := make(map[string]bool)
	if s.Config == nil {
		return occupied
	}
	for _, t := range s.Tables {
		if tableOccupied(s, t.ID, date, start) {
			occupied[t.ID] = true
		}
	}
	return occupied
}

// bookedGuests суммирует гостей по живым броням ровно на это время
func bookedGuests(s Snapshot, date string, start int) int {
	total := 0
	for _, b := range s.Bookings {
		if !countsFor(s, b, date) {
			continue
		}
		if m, err := ParseTimeOfDay(b.Time); err == nil && m == start {
			total += b.PartySize
		}
	}
	return total
}

// qualifyingTables активные столы, за которые помещается компания
func qualifyingTables(tables []model.SimpleTable, partySize int) []model.SimpleTable {
	var result []model.SimpleTable
	for _, t := range tables {
		if t.IsActive && t.Capacity >= partySize {
			result = append(result, t)
		}
	}
	return result
}

// tableOccupied проверяет пересечение окон оборота стола с существующими бронями.
// Брони соседних дат сдвигаются на сутки, поэтому окна сравниваются и через полночь.
func tableOccupied(s Snapshot, tableID, date string, start int) bool {
	for _, b := range s.Bookings {
		if b.TableID == nil || *b.TableID != tableID || !holdsCapacity(s, b) {
			continue
		}
		shift, ok := dayShift(date, b.Date)
		if !ok {
			continue
		}
		bookedStart, err := ParseTimeOfDay(b.Time)
		if err != nil {
			continue
		}
		if overlaps(start, shift*minutesPerDay+bookedStart, s.Config.TableTurningTime) {
			return true
		}
	}
	return false
}

const minutesPerDay = 24 * 60

// dayShift на сколько суток other отстоит от date; false если больше чем на сутки
func dayShift(date, other string) (int, bool) {
	if date == other {
		return 0, true
	}
	d, err := ParseDate(date, time.UTC)
	if err != nil {
		return 0, false
	}
	o, err := ParseDate(other, time.UTC)
	if err != nil {
		return 0, false
	}
	switch days := int(o.Sub(d).Hours() / 24); days {
	case -1, 1:
		return days, true
	default:
		return 0, false
	}
}

// pickTable выбирает стол детерминированно: наименьшая вместимость, затем наименьший id
func pickTable(s Snapshot, date string, start, partySize int) (model.SimpleTable, bool) {
	candidates := qualifyingTables(s.Tables, partySize)
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Capacity != candidates[j].Capacity {
			return candidates[i].Capacity < candidates[j].Capacity
		}
		return candidates[i].ID < candidates[j].ID
	})

	for _, t := range candidates {
		if !tableOccupied(s, t.ID, date, start) {
			return t, true
		}
	}
	return model.SimpleTable{}, false
}

func countsFor(s Snapshot, b *model.Booking, date string) bool {
	return b.Date == date && holdsCapacity(s, b)
}

func holdsCapacity(s Snapshot, b *model.Booking) bool {
	return b.RestaurantID == s.Config.RestaurantID && b.Status.HoldsCapacity()
}
