package handlers

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// BookingLimiter ограничивает частоту попыток бронирования для каждого пользователя
type BookingLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewBookingLimiter разрешает perMinute попыток в минуту с таким же запасом
func NewBookingLimiter(perMinute int) *BookingLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &BookingLimiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

// Allow расходует одну попытку пользователя
func (l *BookingLimiter) Allow(telegramID int64) bool {
	return l.allowAt(telegramID, time.Now())
}

func (l *BookingLimiter) allowAt(telegramID int64, now time.Time) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[telegramID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[telegramID] = limiter
	}
	l.mu.Unlock()

	return limiter.AllowN(now, 1)
}
