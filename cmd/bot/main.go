package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/app"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/cache"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/config"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/repository"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting restaurant booking bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone))

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Без Redis статистика просто считается на каждый запрос
	var statsCache service.StatsCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("Redis unavailable, stats cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			statsCache = cache.NewStatsCache(client, cfg.StatsCacheTTL)
			logger.Info("Stats cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.StatsCacheTTL))
		}
	}

	userRepo := repository.NewUserRepository(pool)
	restaurantRepo := repository.NewRestaurantRepository(pool, logger)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	floorPlanRepo := repository.NewFloorPlanRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	engine := availability.NewEngine(cfg.Location(), time.Now)

	userService := service.NewUserService(userRepo, logger)
	restaurantService := service.NewRestaurantService(restaurantRepo, availabilityRepo, floorPlanRepo, time.Now, logger)
	bookingService := service.NewBookingService(bookingRepo, availabilityRepo, floorPlanRepo, statsCache, engine, logger)

	scheduler := app.NewScheduler(bookingService, cfg.NoShowInterval, cfg.NoShowGrace, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	b, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
		logger.Error("Telegram bot error", zap.Error(err))
	}))
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, userService, bookingService, restaurantService, cfg.BookingRatePerMinute, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// меню команд не критично для работы
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	botController.Start(ctx)
	return nil
}
