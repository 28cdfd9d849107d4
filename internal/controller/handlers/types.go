package handlers

import (
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд и кнопок
type Handlers struct {
	userService       *service.UserService
	bookingService    *service.BookingService
	restaurantService *service.RestaurantService
	stateManager      *state.Manager
	limiter           *BookingLimiter
	logger            *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	bookingService *service.BookingService,
	restaurantService *service.RestaurantService,
	stateManager *state.Manager,
	limiter *BookingLimiter,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:       userService,
		bookingService:    bookingService,
		restaurantService: restaurantService,
		stateManager:      stateManager,
		limiter:           limiter,
		logger:            logger,
	}
}
