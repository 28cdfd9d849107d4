package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvailabilityRepository хранит настройки бронирования; расписание, особые даты и столы лежат в JSONB
type AvailabilityRepository struct {
	db *base.Repository
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{db: base.NewRepository(pool)}
}

// GetByRestaurantID возвращает nil, nil если ресторан ещё не настроен
func (r *AvailabilityRepository) GetByRestaurantID(ctx context.Context, restaurantID int64) (*model.RestaurantAvailability, error) {
	query := `
		SELECT restaurant_id, management_mode, schedule, special_dates, default_capacity_per_slot,
		       advance_booking_days, table_turning_time, tables, updated_at
		FROM restaurant_availability
		WHERE restaurant_id = $1
	`

	var cfg model.RestaurantAvailability
	err := r.db.QueryRow(ctx, query, restaurantID).Scan(
		&cfg.RestaurantID,
		&cfg.ManagementMode,
		&cfg.Schedule,
		&cfg.SpecialDates,
		&cfg.DefaultCapacityPerSlot,
		&cfg.AdvanceBookingDays,
		&cfg.TableTurningTime,
		&cfg.Tables,
		&cfg.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get availability: %w", err)
	}

	return &cfg, nil
}

// Upsert создаёт или заменяет настройки ресторана
func (r *AvailabilityRepository) Upsert(ctx context.Context, cfg *model.RestaurantAvailability) error {
	query := `
		INSERT INTO restaurant_availability (
			restaurant_id, management_mode, schedule, special_dates, default_capacity_per_slot,
			advance_booking_days, table_turning_time, tables, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (restaurant_id) DO UPDATE SET
			management_mode = EXCLUDED.management_mode,
			schedule = EXCLUDED.schedule,
			special_dates = EXCLUDED.special_dates,
			default_capacity_per_slot = EXCLUDED.default_capacity_per_slot,
			advance_booking_days = EXCLUDED.advance_booking_days,
			table_turning_time = EXCLUDED.table_turning_time,
			tables = EXCLUDED.tables,
			updated_at = EXCLUDED.updated_at
	`

	schedule := cfg.Schedule
	if schedule == nil {
		schedule = map[string]model.DayConfig{}
	}
	special := cfg.SpecialDates
	if special == nil {
		special = map[string]model.DayConfig{}
	}
	tables := cfg.Tables
	if tables == nil {
		tables = []model.SimpleTable{}
	}

	_, err := r.db.Exec(
		ctx, query,
		cfg.RestaurantID,
		cfg.ManagementMode,
		schedule,
		special,
		cfg.DefaultCapacityPerSlot,
		cfg.AdvanceBookingDays,
		cfg.TableTurningTime,
		tables,
		cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert availability: %w", err)
	}

	return nil
}
