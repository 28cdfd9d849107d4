package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/hours"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type restaurantServiceDeps struct {
	restaurants *restaurantStoreMock
	avail       *availabilityStoreMock
	plans       *floorPlanStoreMock
}

func newTestRestaurantService() (*RestaurantService, restaurantServiceDeps) {
	deps := restaurantServiceDeps{
		restaurants: &restaurantStoreMock{},
		avail:       &availabilityStoreMock{},
		plans:       &floorPlanStoreMock{},
	}
	svc := NewRestaurantService(deps.restaurants, deps.avail, deps.plans, func() time.Time { return fixedNow }, zap.NewNop())
	return svc, deps
}

func TestRestaurantService_GetRestaurantNotFound(t *testing.T) {
	svc, deps := newTestRestaurantService()
	deps.restaurants.On("GetByID", mock.Anything, int64(3)).Return(nil, nil)

	_, err := svc.GetRestaurant(context.Background(), 3)

	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestRestaurantService_FormattedHours(t *testing.T) {
	svc, _ := newTestRestaurantService()
	restaurant := &model.Restaurant{Hours: "Monday - Friday: 12-23, Saturday: 12-01"}

	got := svc.FormattedHours(restaurant, hours.DayTranslations{})

	assert.Equal(t, "Mon - Fri: 12-23, Sat: 12-01", got)
}

func TestRestaurantService_UpdateHoursRequiresStaff(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestRestaurantService()
	restaurant := &model.Restaurant{ID: testRestaurantID, StaffTelegramIDs: []int64{100}}
	deps.restaurants.On("GetByID", mock.Anything, testRestaurantID).Return(restaurant, nil)
	deps.restaurants.On("UpdateHours", mock.Anything, testRestaurantID, "Mon: 10-22").Return(nil).Once()

	err := svc.UpdateHours(ctx, testRestaurantID, 200, "Mon: 10-22")
	assert.ErrorIs(t, err, ErrNotStaff)

	err = svc.UpdateHours(ctx, testRestaurantID, 100, "Mon: 10-22")
	assert.NoError(t, err)

	deps.restaurants.AssertExpectations(t)
}

func TestRestaurantService_SaveAvailabilityConfig(t *testing.T) {
	svc, deps := newTestRestaurantService()
	cfg := guestCountConfig()
	deps.avail.On("Upsert", mock.Anything, cfg).Return(nil).Once()

	err := svc.SaveAvailabilityConfig(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, fixedNow, cfg.UpdatedAt)
	deps.avail.AssertExpectations(t)
}

func TestRestaurantService_SaveAvailabilityConfigRejectsInvalid(t *testing.T) {
	negative := -1

	tests := []struct {
		name   string
		mutate func(cfg *model.RestaurantAvailability)
	}{
		{"unknown mode", func(cfg *model.RestaurantAvailability) { cfg.ManagementMode = "walk-in" }},
		{"bad slot time", func(cfg *model.RestaurantAvailability) {
			cfg.Schedule["monday"] = model.DayConfig{IsOpen: true, Slots: []string{"25:00"}}
		}},
		{"negative day capacity", func(cfg *model.RestaurantAvailability) {
			cfg.Schedule["monday"] = model.DayConfig{IsOpen: true, CapacityPerSlot: &negative}
		}},
		{"unknown weekday", func(cfg *model.RestaurantAvailability) {
			cfg.Schedule["funday"] = model.DayConfig{}
		}},
		{"bad special date", func(cfg *model.RestaurantAvailability) {
			cfg.SpecialDates = map[string]model.DayConfig{"31/12/2026": {}}
		}},
		{"empty table", func(cfg *model.RestaurantAvailability) {
			cfg.Tables = []model.SimpleTable{{ID: "t1", Capacity: 0, IsActive: true}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestRestaurantService()
			cfg := guestCountConfig()
			tt.mutate(cfg)

			err := svc.SaveAvailabilityConfig(context.Background(), cfg)

			assert.ErrorIs(t, err, availability.ErrInvalidInput)
			deps.avail.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestRestaurantService_SaveFloorPlanAssignsIDs(t *testing.T) {
	svc, deps := newTestRestaurantService()
	plan := &model.FloorPlan{
		RestaurantID: testRestaurantID,
		Tables: []model.Table{
			{ID: "window", Capacity: 2, IsActive: true},
			{Capacity: 6, IsActive: true, Shape: model.TableShapeRectangle},
		},
		Elements: []model.FloorPlanElement{{Type: model.ElementBar}},
	}
	deps.plans.On("CreateVersion", mock.Anything, plan).
		Run(func(args mock.Arguments) { args.Get(1).(*model.FloorPlan).Version = 3 }).
		Return(nil).Once()

	err := svc.SaveFloorPlan(context.Background(), plan)

	require.NoError(t, err)
	assert.Equal(t, "window", plan.Tables[0].ID)
	assert.NotEmpty(t, plan.Tables[1].ID)
	assert.NotEmpty(t, plan.Elements[0].ID)
	assert.Equal(t, 3, plan.Version)
	deps.plans.AssertExpectations(t)
}

func TestRestaurantService_SaveFloorPlanRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		tables []model.Table
	}{
		{"duplicate id", []model.Table{{ID: "t1", Capacity: 2}, {ID: "t1", Capacity: 4}}},
		{"zero capacity", []model.Table{{ID: "t1", Capacity: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestRestaurantService()

			err := svc.SaveFloorPlan(context.Background(), &model.FloorPlan{RestaurantID: testRestaurantID, Tables: tt.tables})

			assert.ErrorIs(t, err, availability.ErrInvalidInput)
			deps.plans.AssertNotCalled(t, "CreateVersion", mock.Anything, mock.Anything)
		})
	}
}
