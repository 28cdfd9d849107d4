package service

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/repository"
	"github.com/stretchr/testify/mock"
)

// memoryBookingStore держит брони в памяти; CreateLocked и UpdateStatusLocked
// выполняются под одним мьютексом, как транзакция под advisory lock ресторана
type memoryBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*model.Booking
}

func newMemoryBookingStore(seed ...*model.Booking) *memoryBookingStore {
	s := &memoryBookingStore{}
	for _, b := range seed {
		s.nextID++
		copied := *b
		copied.ID = s.nextID
		s.bookings = append(s.bookings, &copied)
	}
	return s
}

func (s *memoryBookingStore) CreateLocked(_ context.Context, restaurantID int64, date string, decide func(live []*model.Booking) (*model.Booking, error)) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, to := neighbourDates(date)
	var live []*model.Booking
	for _, b := range s.bookings {
		if b.RestaurantID == restaurantID && b.Date >= from && b.Date <= to && b.Status.HoldsCapacity() {
			copied := *b
			live = append(live, &copied)
		}
	}

	booking, err := decide(live)
	if err != nil {
		return nil, err
	}
	for _, b := range s.bookings {
		if b.ConfirmationCode == booking.ConfirmationCode {
			return nil, repository.ErrConfirmationCodeTaken
		}
	}

	s.nextID++
	booking.ID = s.nextID
	stored := *booking
	s.bookings = append(s.bookings, &stored)
	return booking, nil
}

func (s *memoryBookingStore) UpdateStatusLocked(_ context.Context, id int64, apply func(b *model.Booking) error) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.ID != id {
			continue
		}
		copied := *b
		if err := apply(&copied); err != nil {
			return nil, err
		}
		*b = copied
		return &copied, nil
	}
	return nil, nil
}

func (s *memoryBookingStore) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memoryBookingStore) filter(keep func(b *model.Booking) bool) []*model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*model.Booking
	for _, b := range s.bookings {
		if keep(b) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result
}

func (s *memoryBookingStore) GetByConfirmationCode(_ context.Context, code string) (*model.Booking, error) {
	found := s.filter(func(b *model.Booking) bool { return b.ConfirmationCode == code })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (s *memoryBookingStore) ListByRestaurantDates(_ context.Context, restaurantID int64, from, to string) ([]*model.Booking, error) {
	return s.filter(func(b *model.Booking) bool {
		return b.RestaurantID == restaurantID && b.Date >= from && b.Date <= to
	}), nil
}

func neighbourDates(date string) (string, string) {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date, date
	}
	return d.AddDate(0, 0, -1).Format(model.DateLayout), d.AddDate(0, 0, 1).Format(model.DateLayout)
}

func (s *memoryBookingStore) ListByRestaurantDate(_ context.Context, restaurantID int64, date string) ([]*model.Booking, error) {
	return s.filter(func(b *model.Booking) bool {
		return b.RestaurantID == restaurantID && b.Date == date
	}), nil
}

func (s *memoryBookingStore) ListByRestaurant(_ context.Context, restaurantID int64) ([]*model.Booking, error) {
	return s.filter(func(b *model.Booking) bool {
		return b.RestaurantID == restaurantID
	}), nil
}

func (s *memoryBookingStore) ListByUser(_ context.Context, userID int64) ([]*model.Booking, error) {
	return s.filter(func(b *model.Booking) bool {
		return b.UserID == userID
	}), nil
}

func (s *memoryBookingStore) ListByStatusUntil(_ context.Context, status model.BookingStatus, date string) ([]*model.Booking, error) {
	return s.filter(func(b *model.Booking) bool {
		return b.Status == status && b.Date <= date
	}), nil
}

type availabilityStoreMock struct {
	mock.Mock
}

func (m *availabilityStoreMock) GetByRestaurantID(ctx context.Context, restaurantID int64) (*model.RestaurantAvailability, error) {
	args := m.Called(ctx, restaurantID)
	cfg, _ := args.Get(0).(*model.RestaurantAvailability)
	return cfg, args.Error(1)
}

func (m *availabilityStoreMock) Upsert(ctx context.Context, cfg *model.RestaurantAvailability) error {
	return m.Called(ctx, cfg).Error(0)
}

type floorPlanStoreMock struct {
	mock.Mock
}

func (m *floorPlanStoreMock) GetActive(ctx context.Context, restaurantID int64) (*model.FloorPlan, error) {
	args := m.Called(ctx, restaurantID)
	plan, _ := args.Get(0).(*model.FloorPlan)
	return plan, args.Error(1)
}

func (m *floorPlanStoreMock) CreateVersion(ctx context.Context, plan *model.FloorPlan) error {
	return m.Called(ctx, plan).Error(0)
}

type statsCacheMock struct {
	mock.Mock
}

func (m *statsCacheMock) Get(ctx context.Context, restaurantID int64, day string) (*model.RestaurantBookingStats, error) {
	args := m.Called(ctx, restaurantID, day)
	stats, _ := args.Get(0).(*model.RestaurantBookingStats)
	return stats, args.Error(1)
}

func (m *statsCacheMock) Set(ctx context.Context, day string, stats *model.RestaurantBookingStats) error {
	return m.Called(ctx, day, stats).Error(0)
}

func (m *statsCacheMock) Invalidate(ctx context.Context, restaurantID int64, day string) error {
	return m.Called(ctx, restaurantID, day).Error(0)
}

type restaurantStoreMock struct {
	mock.Mock
}

func (m *restaurantStoreMock) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	args := m.Called(ctx, id)
	restaurant, _ := args.Get(0).(*model.Restaurant)
	return restaurant, args.Error(1)
}

func (m *restaurantStoreMock) ListActive(ctx context.Context) ([]*model.Restaurant, error) {
	args := m.Called(ctx)
	restaurants, _ := args.Get(0).([]*model.Restaurant)
	return restaurants, args.Error(1)
}

func (m *restaurantStoreMock) ListByStaff(ctx context.Context, telegramID int64) ([]*model.Restaurant, error) {
	args := m.Called(ctx, telegramID)
	restaurants, _ := args.Get(0).([]*model.Restaurant)
	return restaurants, args.Error(1)
}

func (m *restaurantStoreMock) UpdateHours(ctx context.Context, id int64, hours string) error {
	return m.Called(ctx, id, hours).Error(0)
}
