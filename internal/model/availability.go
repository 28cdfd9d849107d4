package model

import (
	"fmt"
	"time"
)

type ManagementMode string

const (
	ManagementModeGuestCount ManagementMode = "guest-count"
	ManagementModeTableBased ManagementMode = "table-based"
)

// TimeOfDayLayout формат времени слотов
const TimeOfDayLayout = "15:04"

// DateLayout формат календарных дат
const DateLayout = "2006-01-02"

// DayConfig описывает один день расписания или особую дату
type DayConfig struct {
	IsOpen          bool     `json:"is_open"`
	Slots           []string `json:"slots"`                       // HH:MM в порядке показа
	CapacityPerSlot *int     `json:"capacity_per_slot,omitempty"` // nil = использовать DefaultCapacityPerSlot
}

// SimpleTable стол без геометрии
type SimpleTable struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"is_active"`
}

// RestaurantAvailability настройки бронирования ресторана.
// Ключи Schedule: дни недели в нижнем регистре ("monday"). Ключи SpecialDates: YYYY-MM-DD.
type RestaurantAvailability struct {
	RestaurantID           int64                `json:"restaurant_id"`
	ManagementMode         ManagementMode       `json:"management_mode"`
	Schedule               map[string]DayConfig `json:"schedule"`
	SpecialDates           map[string]DayConfig `json:"special_dates"`
	DefaultCapacityPerSlot int                  `json:"default_capacity_per_slot"`
	AdvanceBookingDays     int                  `json:"advance_booking_days"`
	TableTurningTime       int                  `json:"table_turning_time"` // в минутах
	Tables                 []SimpleTable        `json:"tables,omitempty"`
	UpdatedAt              time.Time            `json:"updated_at"`
}

// WeekdayKey возвращает ключ Schedule для дня недели
func WeekdayKey(day time.Weekday) string {
	keys := [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	return keys[day]
}

// DayFor возвращает действующую конфигурацию дня: особая дата важнее недельного расписания
func (a *RestaurantAvailability) DayFor(date string, weekday time.Weekday) (DayConfig, bool) {
	if cfg, ok := a.SpecialDates[date]; ok {
		return cfg, true
	}
	cfg, ok := a.Schedule[WeekdayKey(weekday)]
	return cfg, ok
}

// SlotCapacity возвращает вместимость слота с учётом значения по умолчанию
func (a *RestaurantAvailability) SlotCapacity(day DayConfig) int {
	if day.CapacityPerSlot != nil {
		return *day.CapacityPerSlot
	}
	return a.DefaultCapacityPerSlot
}

// Validate проверяет инварианты настроек
func (a *RestaurantAvailability) Validate() error {
	switch a.ManagementMode {
	case ManagementModeGuestCount, ManagementModeTableBased:
	default:
		return fmt.Errorf("unknown management mode %q", a.ManagementMode)
	}

	if a.DefaultCapacityPerSlot < 0 {
		return fmt.Errorf("default capacity per slot must be non-negative")
	}
	if a.AdvanceBookingDays < 0 {
		return fmt.Errorf("advance booking days must be non-negative")
	}
	if a.TableTurningTime < 0 {
		return fmt.Errorf("table turning time must be non-negative")
	}

	for key, day := range a.Schedule {
		if !isWeekdayKey(key) {
			return fmt.Errorf("unknown schedule day %q", key)
		}
		if err := day.validate(); err != nil {
			return fmt.Errorf("schedule %s: %w", key, err)
		}
	}

	for date, day := range a.SpecialDates {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return fmt.Errorf("special date %q: invalid date", date)
		}
		if err := day.validate(); err != nil {
			return fmt.Errorf("special date %s: %w", date, err)
		}
	}

	for _, table := range a.Tables {
		if table.Capacity < 1 {
			return fmt.Errorf("table %s: capacity must be at least 1", table.ID)
		}
	}

	return nil
}

func (d DayConfig) validate() error {
	if d.CapacityPerSlot != nil && *d.CapacityPerSlot < 0 {
		return fmt.Errorf("capacity per slot must be non-negative")
	}
	for _, slot := range d.Slots {
		if _, err := time.Parse(TimeOfDayLayout, slot); err != nil {
			return fmt.Errorf("invalid slot time %q", slot)
		}
	}
	return nil
}

func isWeekdayKey(key string) bool {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if WeekdayKey(day) == key {
			return true
		}
	}
	return false
}
