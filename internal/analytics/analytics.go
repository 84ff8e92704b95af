package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ruenthai/backend-pos/internal/order"
	"github.com/ruenthai/backend-pos/internal/payment"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// OrderSource is the slice of the order store the reports need.
type OrderSource interface {
	ListOrdersBetween(ctx context.Context, from, to time.Time) ([]order.Order, error)
}

// DailySummary aggregates one calendar day of completed orders.
type DailySummary struct {
	Day       string                         `json:"day"`
	Orders    int                            `json:"orders"`
	Revenue   pricing.Money                  `json:"revenue"`
	Tax       pricing.Money                  `json:"tax"`
	ByMethod  map[payment.Kind]pricing.Money `json:"byMethod"`
	AvgTicket pricing.Money                  `json:"avgTicket"`
}

// Service computes sales reports. Finished days are cached in Redis since
// completed orders are immutable; the current day is always recomputed.
type Service struct {
	Orders OrderSource
	Cache  *redis.Client
	TTL    time.Duration
	Log    zerolog.Logger
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Daily returns the sales summary for the given calendar day (UTC).
func (s *Service) Daily(ctx context.Context, day time.Time) (DailySummary, error) {
	if s == nil || s.Orders == nil {
		return DailySummary{}, errors.New("analytics service not configured")
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	key := fmt.Sprintf("analytics:daily:%s", dayStart.Format("2006-01-02"))
	finished := dayStart.AddDate(0, 0, 1).Before(s.now()) || dayStart.AddDate(0, 0, 1).Equal(s.now())

	if finished && s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Bytes(); err == nil {
			var summary DailySummary
			if json.Unmarshal(cached, &summary) == nil {
				return summary, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.Log.Warn().Err(err).Str("key", key).Msg("analytics cache read failed")
		}
	}

	orders, err := s.Orders.ListOrdersBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return DailySummary{}, fmt.Errorf("analytics: load orders: %w", err)
	}
	summary := summarize(dayStart, orders)

	if finished && s.Cache != nil {
		encoded, _ := json.Marshal(summary)
		ttl := s.TTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		if err := s.Cache.Set(ctx, key, encoded, ttl).Err(); err != nil {
			s.Log.Warn().Err(err).Str("key", key).Msg("analytics cache write failed")
		}
	}
	return summary, nil
}

func summarize(day time.Time, orders []order.Order) DailySummary {
	summary := DailySummary{
		Day:      day.Format("2006-01-02"),
		ByMethod: make(map[payment.Kind]pricing.Money),
	}
	for _, o := range orders {
		summary.Orders++
		summary.Revenue += o.Total
		summary.Tax += o.Tax
		summary.ByMethod[o.Payment.Kind] += o.Total
	}
	if summary.Orders > 0 {
		summary.AvgTicket = summary.Revenue / pricing.Money(summary.Orders)
	}
	return summary
}
