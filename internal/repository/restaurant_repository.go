package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const restaurantColumns = `id, name, address, hours, staff_telegram_ids, is_active, created_at`

type RestaurantRepository struct {
	db     *base.Repository
	logger *zap.Logger
}

func NewRestaurantRepository(pool *pgxpool.Pool, logger *zap.Logger) *RestaurantRepository {
	return &RestaurantRepository{
		db:     base.NewRepository(pool),
		logger: logger,
	}
}

// GetByID получает ресторан по ID
func (r *RestaurantRepository) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	var restaurant model.Restaurant
	err := r.db.QueryRow(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Address,
		&restaurant.Hours,
		&restaurant.StaffTelegramIDs,
		&restaurant.IsActive,
		&restaurant.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant by id: %w", err)
	}

	return &restaurant, nil
}

// ListActive возвращает активные рестораны по алфавиту
func (r *RestaurantRepository) ListActive(ctx context.Context) ([]*model.Restaurant, error) {
	return r.list(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE is_active = true
		ORDER BY name
	`)
}

// ListByStaff возвращает рестораны, где пользователь числится сотрудником
func (r *RestaurantRepository) ListByStaff(ctx context.Context, telegramID int64) ([]*model.Restaurant, error) {
	return r.list(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE $1 = ANY(staff_telegram_ids)
		ORDER BY name
	`, telegramID)
}

func (r *RestaurantRepository) list(ctx context.Context, query string, args ...any) ([]*model.Restaurant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*model.Restaurant
	for rows.Next() {
		var restaurant model.Restaurant
		err := rows.Scan(
			&restaurant.ID,
			&restaurant.Name,
			&restaurant.Address,
			&restaurant.Hours,
			&restaurant.StaffTelegramIDs,
			&restaurant.IsActive,
			&restaurant.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		restaurants = append(restaurants, &restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}

	return restaurants, nil
}

// UpdateHours сохраняет часы работы в свободной форме
func (r *RestaurantRepository) UpdateHours(ctx context.Context, id int64, hours string) error {
	affected, err := r.db.ExecAffected(ctx, `UPDATE restaurants SET hours = $1 WHERE id = $2`, hours, id)
	if err != nil {
		r.logger.Error("Failed to update restaurant hours",
			zap.Int64("restaurant_id", id),
			zap.Error(err))
		return fmt.Errorf("update restaurant hours: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("restaurant not found")
	}

	return nil
}
