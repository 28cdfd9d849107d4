package controller

import (
	"context"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/handlers"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	bookingService *service.BookingService,
	restaurantService *service.RestaurantService,
	bookingRatePerMinute int,
	logger *zap.Logger,
) *BotController {
	cmdHandlers := handlers.NewHandlers(
		userService,
		bookingService,
		restaurantService,
		state.NewManager(),
		handlers.NewBookingLimiter(bookingRatePerMinute),
		logger,
	)

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/restaurants", bot.MatchTypeExact, c.handlers.HandleRestaurants)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypeExact, c.handlers.HandleRestaurants)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды для сотрудников ресторана
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypeExact, c.handlers.HandleStats)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/floorplan", bot.MatchTypeExact, c.handlers.HandleFloorPlan)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sethours", bot.MatchTypeExact, c.handlers.HandleSetHours)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/checkin", bot.MatchTypePrefix, c.handlers.HandleCheckIn)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handlers.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "restaurants", Description: "🍽 Рестораны и часы работы"},
		{Command: "book", Description: "📅 Забронировать столик"},
		{Command: "mybookings", Description: "🧾 Мои брони"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "today", Description: "📋 Брони на сегодня (сотрудник)"},
		{Command: "stats", Description: "📊 Статистика (сотрудник)"},
		{Command: "floorplan", Description: "🗺 План зала (сотрудник)"},
		{Command: "sethours", Description: "🕐 Часы работы (сотрудник)"},
		{Command: "checkin", Description: "🔑 Бронь по коду гостя (сотрудник)"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
