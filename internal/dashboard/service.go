package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"github.com/dmarroquin/gearbox-backend/pkg/logger"
	"github.com/dmarroquin/gearbox-backend/pkg/redis"
	"github.com/shopspring/decimal"
)

const (
	lowStockThreshold = 5
	lowStockListLimit = 5
	revenueWindow     = 30 * 24 * time.Hour
)

type summaryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// Service serves the aggregated dashboard read model, cached for a short TTL
// because every widget on the landing page requests it.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	repo     Repository
	cache    summaryCache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService builds the dashboard service. The cache is optional: a nil cache
// recomputes the summary on every call.
func NewService(repo Repository, cache summaryCache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL, logg: logg}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	if s.cache != nil {
		key := s.cache.CacheKey("dashboard", "summary")
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var summary Summary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		} else if !errors.Is(err, redis.ErrCacheMiss) {
			// a degraded cache never blocks the dashboard
			s.logg.Warn(ctx, "dashboard cache read failed")
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(summary); err == nil {
			key := s.cache.CacheKey("dashboard", "summary")
			if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
				s.logg.Warn(ctx, "dashboard cache write failed")
			}
		}
	}
	return summary, nil
}

func (s *service) compute(ctx context.Context) (*Summary, error) {
	customers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting customers")
	}
	vehicles, err := s.repo.CountVehicles(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting vehicles")
	}
	open, err := s.repo.CountOpenWorkOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting open work orders")
	}

	completed, err := s.repo.RecentCompletedWorkOrders(ctx, time.Now().Add(-revenueWindow))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading completed work orders")
	}
	revenue := decimal.Zero
	recent := make([]CompletedOrderSummary, 0, len(completed))
	for _, order := range completed {
		revenue = revenue.Add(order.TotalCost)
		recent = append(recent, CompletedOrderSummary{
			ID:        order.ID,
			Code:      order.Code,
			TotalCost: order.TotalCost,
			UpdatedAt: order.UpdatedAt,
		})
	}

	items, err := s.repo.InventoryByQuantity(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading inventory")
	}
	lowStock := items[:0:0]
	for _, item := range items {
		if item.QuantityOnHand <= lowStockThreshold {
			lowStock = append(lowStock, item)
		}
	}
	alerts := len(lowStock)
	if len(lowStock) > lowStockListLimit {
		lowStock = lowStock[:lowStockListLimit]
	}

	workers, err := s.repo.TopWorkers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading workers")
	}
	top := make([]TopWorker, 0, len(workers))
	for _, worker := range workers {
		top = append(top, TopWorker{
			ID:            worker.ID,
			Name:          worker.Name,
			TotalJobs:     worker.TotalJobs,
			TotalServices: worker.TotalServices,
		})
	}

	return &Summary{
		Totals: Totals{
			Customers:      customers,
			Vehicles:       vehicles,
			OpenWorkOrders: open,
		},
		RevenueLast30Days:         revenue.Round(2),
		RecentCompletedWorkOrders: recent,
		InventoryAlertsCount:      alerts,
		LowStockItems:             lowStock,
		TopWorkers:                top,
	}, nil
}
