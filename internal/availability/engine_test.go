package availability

import (
	"testing"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Суббота, 17.10.2026, полдень
var fixedNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

const (
	monday       = "2026-10-19"
	tuesday      = "2026-10-20"
	sunday       = "2026-10-18"
	holidayMon   = "2026-10-26"
	specialMon   = "2026-11-02"
	todaySat     = "2026-10-17"
	restaurantID = int64(1)
)

func newTestEngine() *Engine {
	return NewEngine(time.UTC, func() time.Time { return fixedNow })
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func guestConfig() *model.RestaurantAvailability {
	return &model.RestaurantAvailability{
		RestaurantID:   restaurantID,
		ManagementMode: model.ManagementModeGuestCount,
		Schedule: map[string]model.DayConfig{
			"monday":   {IsOpen: true, Slots: []string{"18:00", "19:00", "20:00"}, CapacityPerSlot: intPtr(10)},
			"tuesday":  {IsOpen: true, Slots: []string{"18:00"}},
			"saturday": {IsOpen: true, Slots: []string{"11:00", "13:00"}, CapacityPerSlot: intPtr(10)},
			"sunday":   {IsOpen: false},
		},
		SpecialDates: map[string]model.DayConfig{
			holidayMon: {IsOpen: false},
			specialMon: {IsOpen: true, Slots: []string{"12:00", "9:30"}, CapacityPerSlot: intPtr(2)},
		},
		DefaultCapacityPerSlot: 4,
		AdvanceBookingDays:     30,
		TableTurningTime:       90,
	}
}

func tableConfig() *model.RestaurantAvailability {
	cfg := guestConfig()
	cfg.ManagementMode = model.ManagementModeTableBased
	return cfg
}

func testTables() []model.SimpleTable {
	return []model.SimpleTable{
		{ID: "t1", Capacity: 2, IsActive: true},
		{ID: "t3", Capacity: 4, IsActive: true},
		{ID: "t2", Capacity: 4, IsActive: true},
		{ID: "t4", Capacity: 6, IsActive: false},
	}
}

func booking(date, at string, party int, status model.BookingStatus, tableID *string) *model.Booking {
	return &model.Booking{
		RestaurantID: restaurantID,
		Date:         date,
		Time:         at,
		PartySize:    party,
		Status:       status,
		TableID:      tableID,
	}
}

func slotAt(t *testing.T, day model.DayAvailability, at string) model.TimeSlot {
	t.Helper()
	for _, s := range day.Slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("slot %s not found in %+v", at, day.Slots)
	return model.TimeSlot{}
}

func TestDay_ClosedDays(t *testing.T) {
	e := newTestEngine()
	s := Snapshot{Config: guestConfig()}

	tests := []struct {
		name string
		date string
	}{
		{"closed weekday", sunday},
		{"special date closes a working day", holidayMon},
		{"past date", "2026-10-16"},
		{"beyond advance window", "2026-11-17"},
		{"weekday missing from schedule", "2026-10-21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := e.Day(s, tt.date, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.date, day.Date)
			assert.False(t, day.IsOpen)
			assert.NotNil(t, day.Slots)
			assert.Empty(t, day.Slots)
		})
	}
}

func TestDay_LastDayOfWindowIsOpen(t *testing.T) {
	e := newTestEngine()
	cfg := guestConfig()
	cfg.AdvanceBookingDays = 2 // суббота + 2 = понедельник

	day, err := e.Day(Snapshot{Config: cfg}, monday, 2)
	require.NoError(t, err)
	assert.True(t, day.IsOpen)

	day, err = e.Day(Snapshot{Config: cfg}, tuesday, 2)
	require.NoError(t, err)
	assert.False(t, day.IsOpen)
}

func TestDay_InvalidInput(t *testing.T) {
	e := newTestEngine()
	s := Snapshot{Config: guestConfig()}

	_, err := e.Day(s, monday, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Day(s, "19.10.2026", 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Day(Snapshot{}, monday, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDay_GuestCountOccupancy(t *testing.T) {
	e := newTestEngine()
	s := Snapshot{
		Config: guestConfig(),
		Bookings: []*model.Booking{
			booking(monday, "19:00", 4, model.BookingStatusConfirmed, nil),
			booking(monday, "19:00", 6, model.BookingStatusCancelled, nil),
			booking(monday, "19:00", 3, model.BookingStatusNoShow, nil),
			booking(monday, "20:00", 10, model.BookingStatusPending, nil),
			booking(tuesday, "19:00", 5, model.BookingStatusConfirmed, nil),
		},
	}

	day, err := e.Day(s, monday, 6)
	require.NoError(t, err)
	require.True(t, day.IsOpen)
	require.Len(t, day.Slots, 3)

	assert.Equal(t, model.TimeSlot{Time: "18:00", Available: true, Capacity: 10, Booked: 0}, day.Slots[0])
	assert.Equal(t, model.TimeSlot{Time: "19:00", Available: true, Capacity: 10, Booked: 4}, day.Slots[1])
	assert.Equal(t, model.TimeSlot{Time: "20:00", Available: false, Capacity: 10, Booked: 10}, day.Slots[2])

	day, err = e.Day(s, monday, 7)
	require.NoError(t, err)
	assert.False(t, slotAt(t, day, "19:00").Available)
}

func TestDay_DefaultCapacityAndSlotOrder(t *testing.T) {
	e := newTestEngine()
	s := Snapshot{Config: guestConfig()}

	day, err := e.Day(s, tuesday, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, slotAt(t, day, "18:00").Capacity)
	assert.True(t, slotAt(t, day, "18:00").Available)

	day, err = e.Day(s, specialMon, 2)
	require.NoError(t, err)
	require.Len(t, day.Slots, 2)
	// порядок из конфигурации сохраняется, время нормализуется
	assert.Equal(t, "12:00", day.Slots[0].Time)
	assert.Equal(t, "09:30", day.Slots[1].Time)
	assert.Equal(t, 2, day.Slots[0].Capacity)
}

func TestDay_TodayPastSlotsUnavailable(t *testing.T) {
	e := newTestEngine()

	day, err := e.Day(Snapshot{Config: guestConfig()}, todaySat, 2)
	require.NoError(t, err)
	assert.False(t, slotAt(t, day, "11:00").Available)
	assert.True(t, slotAt(t, day, "13:00").Available)
}

func TestDay_TableBasedOccupancy(t *testing.T) {
	e := newTestEngine()
	s := Snapshot{
		Config: tableConfig(),
		Tables: testTables(),
		Bookings: []*model.Booking{
			// t2 занят 18:00–19:30, t3 занят 19:00–20:30
			booking(monday, "18:00", 3, model.BookingStatusConfirmed, strPtr("t2")),
			booking(monday, "19:00", 4, model.BookingStatusSeated, strPtr("t3")),
			booking(monday, "18:00", 2, model.BookingStatusCancelled, strPtr("t3")),
		},
	}

	day, err := e.Day(s, monday, 3)
	require.NoError(t, err)

	// t1 мал, t4 неактивен: подходят только t2 и t3.
	// Окно 18:00–19:30 задевает бронь t3 на 19:00.
	assert.Equal(t, model.TimeSlot{Time: "18:00", Available: false, Capacity: 2, Booked: 2}, slotAt(t, day, "18:00"))
	assert.Equal(t, model.TimeSlot{Time: "19:00", Available: false, Capacity: 2, Booked: 2}, slotAt(t, day, "19:00"))
	assert.Equal(t, model.TimeSlot{Time: "20:00", Available: true, Capacity: 2, Booked: 1}, slotAt(t, day, "20:00"))

	day, err = e.Day(s, monday, 5)
	require.NoError(t, err)
	assert.Equal(t, model.TimeSlot{Time: "18:00", Available: false, Capacity: 0, Booked: 0}, slotAt(t, day, "18:00"))
}

func TestCheck_TableSelectionIsDeterministic(t *testing.T) {
	e := newTestEngine()
	s := Snapshot{Config: tableConfig(), Tables: testTables()}

	tableID, err := e.Check(s, monday, "19:00", 2)
	require.NoError(t, err)
	require.NotNil(t, tableID)
	assert.Equal(t, "t1", *tableID)

	// из двух столов на 4 выигрывает меньший id
	tableID, err = e.Check(s, monday, "19:00", 3)
	require.NoError(t, err)
	assert.Equal(t, "t2", *tableID)

	s.Bookings = append(s.Bookings, booking(monday, "18:30", 4, model.BookingStatusConfirmed, strPtr("t2")))
	tableID, err = e.Check(s, monday, "19:00", 3)
	require.NoError(t, err)
	assert.Equal(t, "t3", *tableID)
}

func TestCheck_TableBasedFull(t *testing.T) {
	e := newTestEngine()
	s := Snapshot{
		Config: tableConfig(),
		Tables: testTables(),
		Bookings: []*model.Booking{
			booking(monday, "19:00", 4, model.BookingStatusConfirmed, strPtr("t2")),
			booking(monday, "19:00", 4, model.BookingStatusPending, strPtr("t3")),
		},
	}

	_, err := e.Check(s, monday, "19:00", 4)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// столы освобождаются к 20:30, но слота 20:30 нет; 20:00 ещё пересекается
	_, err = e.Check(s, monday, "20:00", 4)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCheck_GuestCount(t *testing.T) {
	e := newTestEngine()
	s := Snapshot{
		Config:   guestConfig(),
		Bookings: []*model.Booking{booking(monday, "19:00", 8, model.BookingStatusConfirmed, nil)},
	}

	tableID, err := e.Check(s, monday, "19:00", 2)
	require.NoError(t, err)
	assert.Nil(t, tableID)

	_, err = e.Check(s, monday, "19:00", 3)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCheck_Errors(t *testing.T) {
	e := newTestEngine()
	s := Snapshot{Config: guestConfig()}

	tests := []struct {
		name    string
		date    string
		at      string
		party   int
		wantErr error
	}{
		{"zero party", monday, "19:00", 0, ErrInvalidInput},
		{"malformed time", monday, "seven", 2, ErrInvalidInput},
		{"out of window", "2026-12-01", "19:00", 2, ErrInvalidInput},
		{"closed day", sunday, "19:00", 2, ErrSlotUnavailable},
		{"unknown slot", monday, "19:30", 2, ErrSlotUnavailable},
		{"slot already started", todaySat, "11:00", 2, ErrSlotUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Check(s, tt.date, tt.at, tt.party)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCancellationRestoresCapacity(t *testing.T) {
	e := newTestEngine()
	for _, cfg := range []*model.RestaurantAvailability{guestConfig(), tableConfig()} {
		t.Run(string(cfg.ManagementMode), func(t *testing.T) {
			s := Snapshot{Config: cfg, Tables: testTables()}

			before, err := e.Day(s, monday, 2)
			require.NoError(t, err)

			tableID, err := e.Check(s, monday, "19:00", 2)
			require.NoError(t, err)
			b := booking(monday, "19:00", 2, model.BookingStatusPending, tableID)
			s.Bookings = append(s.Bookings, b)

			during, err := e.Day(s, monday, 2)
			require.NoError(t, err)
			assert.Equal(t, slotAt(t, before, "19:00").Booked+bookedDelta(cfg, 2), slotAt(t, during, "19:00").Booked)

			require.NoError(t, Transition(b, model.BookingStatusCancelled, fixedNow))

			after, err := e.Day(s, monday, 2)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func bookedDelta(cfg *model.RestaurantAvailability, party int) int {
	if cfg.ManagementMode == model.ManagementModeTableBased {
		return 1
	}
	return party
}

func TestOverlaps(t *testing.T) {
	assert.True(t, overlaps(18*60, 19*60, 90))
	assert.False(t, overlaps(18*60, 19*60+30, 90))
	assert.True(t, overlaps(19*60, 19*60, 0))
	assert.False(t, overlaps(19*60, 19*60+1, 0))
}

func TestOccupiedTables(t *testing.T) {
	s := Snapshot{
		Config: tableConfig(),
		Tables: testTables(),
		Bookings: []*model.Booking{
			booking(monday, "19:00", 2, model.BookingStatusConfirmed, strPtr("t1")),
			booking(monday, "21:00", 4, model.BookingStatusSeated, strPtr("t2")),
			booking(monday, "18:30", 4, model.BookingStatusCancelled, strPtr("t3")),
		},
	}

	occupied := OccupiedTables(s, monday, 18*60)

	assert.Equal(t, map[string]bool{"t1": true}, occupied)
	assert.Empty(t, OccupiedTables(Snapshot{}, monday, 18*60))
}

func TestTableOccupied_AcrossMidnight(t *testing.T) {
	cfg := tableConfig()
	cfg.TableTurningTime = 120
	cfg.Schedule["monday"] = model.DayConfig{IsOpen: true, Slots: []string{"00:30", "23:00"}}
	cfg.Schedule["tuesday"] = model.DayConfig{IsOpen: true, Slots: []string{"00:30", "02:30"}}
	tables := []model.SimpleTable{{ID: "t1", Capacity: 2, IsActive: true}}

	// 23:30 в воскресенье занимает стол до 01:30 понедельника
	late := Snapshot{Config: cfg, Tables: tables, Bookings: []*model.Booking{
		booking(sunday, "23:30", 2, model.BookingStatusConfirmed, strPtr("t1")),
	}}
	day, err := newTestEngine().Day(late, monday, 2)
	require.NoError(t, err)
	assert.False(t, slotAt(t, day, "00:30").Available)
	assert.True(t, slotAt(t, day, "23:00").Available)

	_, err = newTestEngine().Check(late, monday, "00:30", 2)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// 00:30 во вторник пересекается с окном 23:00 понедельника
	early := Snapshot{Config: cfg, Tables: tables, Bookings: []*model.Booking{
		booking(tuesday, "00:30", 2, model.BookingStatusPending, strPtr("t1")),
	}}
	_, err = newTestEngine().Check(early, monday, "23:00", 2)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	tableID, err := newTestEngine().Check(early, tuesday, "02:30", 2)
	require.NoError(t, err)
	assert.Equal(t, "t1", *tableID)

	// брони через двое суток не учитываются
	assert.Empty(t, OccupiedTables(Snapshot{Config: cfg, Tables: tables, Bookings: []*model.Booking{
		booking(sunday, "23:30", 2, model.BookingStatusConfirmed, strPtr("t1")),
	}}, tuesday, 0))
}

func TestDayShift(t *testing.T) {
	shift, ok := dayShift(monday, sunday)
	assert.True(t, ok)
	assert.Equal(t, -1, shift)

	shift, ok = dayShift(monday, tuesday)
	assert.True(t, ok)
	assert.Equal(t, 1, shift)

	_, ok = dayShift(sunday, tuesday)
	assert.False(t, ok)

	// 2026-03-31 -> 2026-04-01 через границу месяца
	shift, ok = dayShift("2026-03-31", "2026-04-01")
	assert.True(t, ok)
	assert.Equal(t, 1, shift)
}
