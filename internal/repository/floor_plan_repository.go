package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FloorPlanRepository struct {
	db *base.Repository
}

func NewFloorPlanRepository(pool *pgxpool.Pool) *FloorPlanRepository {
	return &FloorPlanRepository{db: base.NewRepository(pool)}
}

// GetActive возвращает активный план с наибольшей версией или nil, nil
func (r *FloorPlanRepository) GetActive(ctx context.Context, restaurantID int64) (*model.FloorPlan, error) {
	query := `
		SELECT id, restaurant_id, version, name, tables, elements, is_active, created_at
		FROM floor_plans
		WHERE restaurant_id = $1 AND is_active = true
		ORDER BY version DESC
		LIMIT 1
	`

	var plan model.FloorPlan
	err := r.db.QueryRow(ctx, query, restaurantID).Scan(
		&plan.ID,
		&plan.RestaurantID,
		&plan.Version,
		&plan.Name,
		&plan.Tables,
		&plan.Elements,
		&plan.IsActive,
		&plan.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active floor plan: %w", err)
	}

	return &plan, nil
}

// CreateVersion сохраняет план новой версией и деактивирует предыдущие.
// Version и ID заполняются из БД.
func (r *FloorPlanRepository) CreateVersion(ctx context.Context, plan *model.FloorPlan) error {
	tables := plan.Tables
	if tables == nil {
		tables = []model.Table{}
	}
	elements := plan.Elements
	if elements == nil {
		elements = []model.FloorPlanElement{}
	}

	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended('floor_plan:' || $1::bigint::text, 0))`,
			plan.RestaurantID,
		)
		if err != nil {
			return fmt.Errorf("acquire floor plan lock: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE floor_plans SET is_active = false WHERE restaurant_id = $1 AND is_active = true`,
			plan.RestaurantID,
		)
		if err != nil {
			return fmt.Errorf("deactivate floor plans: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO floor_plans (restaurant_id, version, name, tables, elements, is_active)
			SELECT $1, COALESCE(MAX(version), 0) + 1, $2, $3, $4, true
			FROM floor_plans
			WHERE restaurant_id = $1
			RETURNING id, version, is_active, created_at
		`,
			plan.RestaurantID,
			plan.Name,
			tables,
			elements,
		).Scan(&plan.ID, &plan.Version, &plan.IsActive, &plan.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert floor plan: %w", err)
		}

		return nil
	})
}
