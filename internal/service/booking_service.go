package service

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingStore хранилище броней. CreateLocked и UpdateStatusLocked выполняют
// чтение, решение и запись одной транзакцией. CreateLocked передаёт в decide
// живые брони на дату и соседние дни; занятый код подтверждения даёт
// repository.ErrConfirmationCodeTaken.
type BookingStore interface {
	CreateLocked(ctx context.Context, restaurantID int64, date string, decide func(live []*model.Booking) (*model.Booking, error)) (*model.Booking, error)
	UpdateStatusLocked(ctx context.Context, id int64, apply func(b *model.Booking) error) (*model.Booking, error)
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetByConfirmationCode(ctx context.Context, code string) (*model.Booking, error)
	ListByRestaurantDates(ctx context.Context, restaurantID int64, from, to string) ([]*model.Booking, error)
	ListByRestaurantDate(ctx context.Context, restaurantID int64, date string) ([]*model.Booking, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]*model.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Booking, error)
	ListByStatusUntil(ctx context.Context, status model.BookingStatus, date string) ([]*model.Booking, error)
}

type AvailabilityStore interface {
	GetByRestaurantID(ctx context.Context, restaurantID int64) (*model.RestaurantAvailability, error)
	Upsert(ctx context.Context, cfg *model.RestaurantAvailability) error
}

type FloorPlanStore interface {
	GetActive(ctx context.Context, restaurantID int64) (*model.FloorPlan, error)
	CreateVersion(ctx context.Context, plan *model.FloorPlan) error
}

// StatsCache кэш статистики на день; промах возвращает nil, nil
type StatsCache interface {
	Get(ctx context.Context, restaurantID int64, day string) (*model.RestaurantBookingStats, error)
	Set(ctx context.Context, day string, stats *model.RestaurantBookingStats) error
	Invalidate(ctx context.Context, restaurantID int64, day string) error
}

var confirmationEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// сколько раз перевыпускать код подтверждения при коллизии
const codeAttempts = 3

type BookingService struct {
	bookings     BookingStore
	availability AvailabilityStore
	floorPlans   FloorPlanStore
	stats        StatsCache
	engine       *availability.Engine
	newCode      func() string
	logger       *zap.Logger
}

// NewBookingService создаёт сервис бронирования. При stats == nil статистика не кэшируется.
func NewBookingService(
	bookings BookingStore,
	availabilityStore AvailabilityStore,
	floorPlans FloorPlanStore,
	stats StatsCache,
	engine *availability.Engine,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		availability: availabilityStore,
		floorPlans:   floorPlans,
		stats:        stats,
		engine:       engine,
		newCode:      newConfirmationCode,
		logger:       logger,
	}
}

// Engine возвращает движок доступности, с которым работает сервис
func (s *BookingService) Engine() *availability.Engine {
	return s.engine
}

// GetAvailability возвращает слоты на дату для компании заданного размера
func (s *BookingService) GetAvailability(ctx context.Context, restaurantID int64, date string, partySize int) (model.DayAvailability, error) {
	if partySize < 1 {
		return model.DayAvailability{}, fmt.Errorf("%w: party size %d", availability.ErrInvalidInput, partySize)
	}
	d, err := availability.ParseDate(date, s.engine.Location())
	if err != nil {
		return model.DayAvailability{}, err
	}
	date = availability.DateString(d)

	cfg, tables, err := s.loadConfig(ctx, restaurantID)
	if err != nil {
		return model.DayAvailability{}, err
	}

	bookings, err := s.aroundDate(ctx, restaurantID, d)
	if err != nil {
		return model.DayAvailability{}, err
	}

	return s.engine.Day(availability.Snapshot{Config: cfg, Tables: tables, Bookings: bookings}, date, partySize)
}

// CreateBooking перепроверяет слот по живым броням и создаёт бронь в статусе pending.
// При гонке за последнее место проигравший получает ErrSlotUnavailable.
func (s *BookingService) CreateBooking(ctx context.Context, input model.CreateBookingInput) (*model.Booking, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	d, err := availability.ParseDate(input.Date, s.engine.Location())
	if err != nil {
		return nil, err
	}
	slotTime, err := availability.NormalizeTime(input.Time)
	if err != nil {
		return nil, err
	}
	date := availability.DateString(d)

	cfg, tables, err := s.loadConfig(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	decide := func(live []*model.Booking) (*model.Booking, error) {
		snapshot := availability.Snapshot{Config: cfg, Tables: tables, Bookings: live}
		tableID, err := s.engine.Check(snapshot, date, slotTime, input.PartySize)
		if err != nil {
			return nil, err
		}

		now := s.engine.Now()
		return &model.Booking{
			RestaurantID:     input.RestaurantID,
			UserID:           input.UserID,
			Date:             date,
			Time:             slotTime,
			PartySize:        input.PartySize,
			Status:           model.BookingStatusPending,
			TableID:          tableID,
			ConfirmationCode: s.newCode(),
			CustomerName:     input.CustomerName,
			CustomerPhone:    input.CustomerPhone,
			SpecialRequests:  input.SpecialRequests,
			CreatedAt:        now,
			UpdatedAt:        now,
		}, nil
	}

	var booking *model.Booking
	for attempt := 1; ; attempt++ {
		booking, err = s.bookings.CreateLocked(ctx, input.RestaurantID, date, decide)
		if !errors.Is(err, repository.ErrConfirmationCodeTaken) || attempt == codeAttempts {
			break
		}
		s.logger.Warn("Confirmation code collision, retrying", zap.Int("attempt", attempt))
	}
	if err != nil {
		if errors.Is(err, availability.ErrSlotUnavailable) {
			s.logger.Info("Booking rejected",
				zap.Int64("restaurant_id", input.RestaurantID),
				zap.String("date", date),
				zap.String("time", slotTime),
				zap.Int("party_size", input.PartySize),
				zap.Error(err))
			return nil, err
		}
		if errors.Is(err, availability.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.invalidateStats(ctx, booking.RestaurantID)

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("restaurant_id", booking.RestaurantID),
		zap.Int64("user_id", booking.UserID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
		zap.Int("party_size", booking.PartySize),
		zap.Stringp("table_id", booking.TableID),
		zap.String("code", booking.ConfirmationCode))

	return booking, nil
}

// UpdateBookingStatus переводит бронь в новый статус по правилам жизненного цикла
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.Booking, error) {
	return s.updateStatus(ctx, id, func(b *model.Booking) error {
		return availability.Transition(b, status, s.engine.Now())
	})
}

// CancelByUser отменяет бронь от имени её владельца
func (s *BookingService) CancelByUser(ctx context.Context, id, userID int64) (*model.Booking, error) {
	return s.updateStatus(ctx, id, func(b *model.Booking) error {
		if b.UserID != userID {
			return ErrNotBookingOwner
		}
		return availability.Transition(b, model.BookingStatusCancelled, s.engine.Now())
	})
}

func (s *BookingService) updateStatus(ctx context.Context, id int64, apply func(b *model.Booking) error) (*model.Booking, error) {
	var from model.BookingStatus

	booking, err := s.bookings.UpdateStatusLocked(ctx, id, func(b *model.Booking) error {
		from = b.Status
		return apply(b)
	})
	if err != nil {
		if errors.Is(err, availability.ErrInvalidTransition) || errors.Is(err, ErrNotBookingOwner) {
			return nil, err
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
	}

	s.invalidateStats(ctx, booking.RestaurantID)

	s.logger.Info("Booking status changed",
		zap.Int64("booking_id", booking.ID),
		zap.String("from", string(from)),
		zap.String("to", string(booking.Status)))

	return booking, nil
}

// ComputeStats возвращает статистику ресторана, по возможности из кэша
func (s *BookingService) ComputeStats(ctx context.Context, restaurantID int64) (*model.RestaurantBookingStats, error) {
	today := s.engine.Today()

	if s.stats != nil {
		cached, err := s.stats.Get(ctx, restaurantID, today)
		if err != nil {
			s.logger.Warn("Stats cache read failed", zap.Int64("restaurant_id", restaurantID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	bookings, err := s.bookings.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	stats := availability.ComputeStats(restaurantID, bookings, today, s.engine.Now())

	if s.stats != nil {
		if err := s.stats.Set(ctx, today, &stats); err != nil {
			s.logger.Warn("Stats cache write failed", zap.Int64("restaurant_id", restaurantID), zap.Error(err))
		}
	}

	return &stats, nil
}

// aroundDate брони на дату и соседние дни: поздний оборот стола переходит через полночь
func (s *BookingService) aroundDate(ctx context.Context, restaurantID int64, d time.Time) ([]*model.Booking, error) {
	from := availability.DateString(d.AddDate(0, 0, -1))
	to := availability.DateString(d.AddDate(0, 0, 1))
	bookings, err := s.bookings.ListByRestaurantDates(ctx, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}
	return bookings, nil
}

// FindByConfirmationCode бронь по коду с QR гостя или ErrBookingNotFound
func (s *BookingService) FindByConfirmationCode(ctx context.Context, code string) (*model.Booking, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: empty confirmation code", availability.ErrInvalidInput)
	}
	booking, err := s.bookings.GetByConfirmationCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find booking by code: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: code %s", ErrBookingNotFound, code)
	}
	return booking, nil
}

// GetBooking возвращает бронь или ErrBookingNotFound
func (s *BookingService) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
	}
	return booking, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]*model.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) ListRestaurantBookings(ctx context.Context, restaurantID int64, date string) ([]*model.Booking, error) {
	d, err := availability.ParseDate(date, s.engine.Location())
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByRestaurantDate(ctx, restaurantID, availability.DateString(d))
	if err != nil {
		return nil, fmt.Errorf("get restaurant bookings: %w", err)
	}
	return bookings, nil
}

// TableOccupancy возвращает столы, занятые в окне оборота, начинающемся в slotTime.
// Для ресторанов в режиме guest-count карта пустая.
func (s *BookingService) TableOccupancy(ctx context.Context, restaurantID int64, date, slotTime string) (map[string]bool, error) {
	d, err := availability.ParseDate(date, s.engine.Location())
	if err != nil {
		return nil, err
	}
	start, err := availability.ParseTimeOfDay(slotTime)
	if err != nil {
		return nil, err
	}
	date = availability.DateString(d)

	cfg, tables, err := s.loadConfig(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if cfg.ManagementMode != model.ManagementModeTableBased {
		return map[string]bool{}, nil
	}

	bookings, err := s.aroundDate(ctx, restaurantID, d)
	if err != nil {
		return nil, err
	}

	return availability.OccupiedTables(availability.Snapshot{Config: cfg, Tables: tables, Bookings: bookings}, date, start), nil
}

// MarkOverdueNoShows переводит в no-show подтверждённые брони, чей слот начался больше grace назад.
// Возвращает количество изменённых броней.
func (s *BookingService) MarkOverdueNoShows(ctx context.Context, grace time.Duration) (int, error) {
	now := s.engine.Now()

	candidates, err := s.bookings.ListByStatusUntil(ctx, model.BookingStatusConfirmed, availability.DateString(now))
	if err != nil {
		return 0, fmt.Errorf("get confirmed bookings: %w", err)
	}

	marked := 0
	for _, b := range candidates {
		start, err := s.slotStart(b)
		if err != nil {
			s.logger.Warn("Skipping booking with malformed slot", zap.Int64("booking_id", b.ID), zap.Error(err))
			continue
		}
		if !now.After(start.Add(grace)) {
			continue
		}

		_, err = s.UpdateBookingStatus(ctx, b.ID, model.BookingStatusNoShow)
		if err != nil {
			// гость мог успеть сесть за стол, пока мы шли по списку
			if errors.Is(err, availability.ErrInvalidTransition) {
				continue
			}
			return marked, err
		}
		marked++
	}

	return marked, nil
}

func (s *BookingService) slotStart(b *model.Booking) (time.Time, error) {
	d, err := availability.ParseDate(b.Date, s.engine.Location())
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := availability.ParseTimeOfDay(b.Time)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(minutes) * time.Minute), nil
}

// loadConfig загружает настройки и столы ресторана.
// В режиме table-based столы берутся из активного плана зала, если он есть.
func (s *BookingService) loadConfig(ctx context.Context, restaurantID int64) (*model.RestaurantAvailability, []model.SimpleTable, error) {
	cfg, err := s.availability.GetByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, nil, fmt.Errorf("get availability: %w", err)
	}
	if cfg == nil {
		return nil, nil, fmt.Errorf("%w: restaurant %d has no availability settings", availability.ErrInvalidInput, restaurantID)
	}

	tables := cfg.Tables
	if cfg.ManagementMode == model.ManagementModeTableBased {
		plan, err := s.floorPlans.GetActive(ctx, restaurantID)
		if err != nil {
			return nil, nil, fmt.Errorf("get floor plan: %w", err)
		}
		if plan != nil {
			tables = plan.SimpleTables()
		}
	}

	return cfg, tables, nil
}

func (s *BookingService) invalidateStats(ctx context.Context, restaurantID int64) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Invalidate(ctx, restaurantID, s.engine.Today()); err != nil {
		s.logger.Warn("Stats cache invalidation failed", zap.Int64("restaurant_id", restaurantID), zap.Error(err))
	}
}

// newConfirmationCode восемь символов base32 из случайного UUID
func newConfirmationCode() string {
	id := uuid.New()
	return confirmationEncoding.EncodeToString(id[:])[:8]
}
