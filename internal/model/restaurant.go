package model

import "time"

type Restaurant struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	Hours            string    `json:"hours"` // часы работы в свободной форме
	StaffTelegramIDs []int64   `json:"staff_telegram_ids"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// HasStaff проверяет, является ли пользователь сотрудником ресторана
func (r *Restaurant) HasStaff(telegramID int64) bool {
	for _, id := range r.StaffTelegramIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
