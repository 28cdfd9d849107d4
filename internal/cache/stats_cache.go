// Package cache кэширует статистику бронирований в Redis.
// Ключ живёт в пределах одного дня ресторана и сбрасывается при каждом изменении броней.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/redis/go-redis/v9"
)

type StatsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewStatsCache(client redis.Cmdable, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// StatsKey ключ статистики ресторана на день
func StatsKey(restaurantID int64, day string) string {
	return fmt.Sprintf("restaurant:%d:stats:%s", restaurantID, day)
}

// Get возвращает nil, nil при промахе
func (c *StatsCache) Get(ctx context.Context, restaurantID int64, day string) (*model.RestaurantBookingStats, error) {
	data, err := c.client.Get(ctx, StatsKey(restaurantID, day)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached stats: %w", err)
	}

	var stats model.RestaurantBookingStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("decode cached stats: %w", err)
	}

	return &stats, nil
}

func (c *StatsCache) Set(ctx context.Context, day string, stats *model.RestaurantBookingStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	if err := c.client.Set(ctx, StatsKey(stats.RestaurantID, day), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached stats: %w", err)
	}

	return nil
}

func (c *StatsCache) Invalidate(ctx context.Context, restaurantID int64, day string) error {
	if err := c.client.Del(ctx, StatsKey(restaurantID, day)).Err(); err != nil {
		return fmt.Errorf("invalidate cached stats: %w", err)
	}
	return nil
}
