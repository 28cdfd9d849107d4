package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/hours"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RestaurantStore interface {
	GetByID(ctx context.Context, id int64) (*model.Restaurant, error)
	ListActive(ctx context.Context) ([]*model.Restaurant, error)
	ListByStaff(ctx context.Context, telegramID int64) ([]*model.Restaurant, error)
	UpdateHours(ctx context.Context, id int64, hours string) error
}

// RestaurantService управляет рестораном и его настройками бронирования
type RestaurantService struct {
	restaurants  RestaurantStore
	availability AvailabilityStore
	floorPlans   FloorPlanStore
	now          func() time.Time
	logger       *zap.Logger
}

func NewRestaurantService(
	restaurants RestaurantStore,
	availabilityStore AvailabilityStore,
	floorPlans FloorPlanStore,
	now func() time.Time,
	logger *zap.Logger,
) *RestaurantService {
	if now == nil {
		now = time.Now
	}
	return &RestaurantService{
		restaurants:  restaurants,
		availability: availabilityStore,
		floorPlans:   floorPlans,
		now:          now,
		logger:       logger,
	}
}

func (s *RestaurantService) ListRestaurants(ctx context.Context) ([]*model.Restaurant, error) {
	restaurants, err := s.restaurants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

// GetRestaurant возвращает ресторан или ErrRestaurantNotFound
func (s *RestaurantService) GetRestaurant(ctx context.Context, id int64) (*model.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, fmt.Errorf("%w: id %d", ErrRestaurantNotFound, id)
	}
	return restaurant, nil
}

// StaffRestaurants рестораны, которыми может управлять пользователь
func (s *RestaurantService) StaffRestaurants(ctx context.Context, telegramID int64) ([]*model.Restaurant, error) {
	restaurants, err := s.restaurants.ListByStaff(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("list staff restaurants: %w", err)
	}
	return restaurants, nil
}

// IsStaff проверяет права сотрудника на ресторан
func (s *RestaurantService) IsStaff(ctx context.Context, restaurantID, telegramID int64) (bool, error) {
	restaurant, err := s.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return false, err
	}
	return restaurant.HasStaff(telegramID), nil
}

// FormattedHours часы работы, свёрнутые по дням недели
func (s *RestaurantService) FormattedHours(restaurant *model.Restaurant, tr hours.DayTranslations) string {
	return hours.Group(restaurant.Hours, tr)
}

// UpdateHours сохраняет новые часы работы от имени сотрудника
func (s *RestaurantService) UpdateHours(ctx context.Context, restaurantID, telegramID int64, text string) error {
	if err := s.requireStaff(ctx, restaurantID, telegramID); err != nil {
		return err
	}

	if err := s.restaurants.UpdateHours(ctx, restaurantID, text); err != nil {
		return fmt.Errorf("update hours: %w", err)
	}

	s.logger.Info("Restaurant hours updated",
		zap.Int64("restaurant_id", restaurantID),
		zap.Int64("telegram_id", telegramID))

	return nil
}

// GetAvailabilityConfig возвращает настройки бронирования или nil, если их нет
func (s *RestaurantService) GetAvailabilityConfig(ctx context.Context, restaurantID int64) (*model.RestaurantAvailability, error) {
	cfg, err := s.availability.GetByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}
	return cfg, nil
}

// SaveAvailabilityConfig проверяет и сохраняет настройки бронирования
func (s *RestaurantService) SaveAvailabilityConfig(ctx context.Context, cfg *model.RestaurantAvailability) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", availability.ErrInvalidInput, err)
	}

	cfg.UpdatedAt = s.now()

	if err := s.availability.Upsert(ctx, cfg); err != nil {
		return fmt.Errorf("save availability: %w", err)
	}

	s.logger.Info("Availability settings saved",
		zap.Int64("restaurant_id", cfg.RestaurantID),
		zap.String("mode", string(cfg.ManagementMode)),
		zap.Int("tables", len(cfg.Tables)))

	return nil
}

func (s *RestaurantService) GetFloorPlan(ctx context.Context, restaurantID int64) (*model.FloorPlan, error) {
	plan, err := s.floorPlans.GetActive(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("get floor plan: %w", err)
	}
	return plan, nil
}

// SaveFloorPlan сохраняет план новой версией.
// Столам и элементам без id выдаются новые идентификаторы.
func (s *RestaurantService) SaveFloorPlan(ctx context.Context, plan *model.FloorPlan) error {
	seen := make(map[string]bool, len(plan.Tables))
	for i := range plan.Tables {
		table := &plan.Tables[i]
		if table.ID == "" {
			table.ID = uuid.NewString()
		}
		if seen[table.ID] {
			return fmt.Errorf("%w: duplicate table id %s", availability.ErrInvalidInput, table.ID)
		}
		seen[table.ID] = true
		if table.Capacity < 1 {
			return fmt.Errorf("%w: table %s capacity must be at least 1", availability.ErrInvalidInput, table.ID)
		}
	}
	for i := range plan.Elements {
		if plan.Elements[i].ID == "" {
			plan.Elements[i].ID = uuid.NewString()
		}
	}

	if err := s.floorPlans.CreateVersion(ctx, plan); err != nil {
		return fmt.Errorf("save floor plan: %w", err)
	}

	s.logger.Info("Floor plan saved",
		zap.Int64("restaurant_id", plan.RestaurantID),
		zap.Int("version", plan.Version),
		zap.Int("tables", len(plan.Tables)))

	return nil
}

func (s *RestaurantService) requireStaff(ctx context.Context, restaurantID, telegramID int64) error {
	ok, err := s.IsStaff(ctx, restaurantID, telegramID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotStaff
	}
	return nil
}
