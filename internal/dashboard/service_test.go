package dashboard

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"github.com/dmarroquin/gearbox-backend/pkg/logger"
	"github.com/dmarroquin/gearbox-backend/pkg/redis"
)

type stubRepo struct {
	customers int64
	vehicles  int64
	open      int64
	completed []models.WorkOrder
	items     []models.InventoryItem
	workers   []models.Worker

	computeCalls int
}

func (s *stubRepo) CountCustomers(ctx context.Context) (int64, error) {
	s.computeCalls++
	return s.customers, nil
}

func (s *stubRepo) CountVehicles(ctx context.Context) (int64, error)       { return s.vehicles, nil }
func (s *stubRepo) CountOpenWorkOrders(ctx context.Context) (int64, error) { return s.open, nil }

func (s *stubRepo) RecentCompletedWorkOrders(ctx context.Context, since time.Time) ([]models.WorkOrder, error) {
	return s.completed, nil
}

func (s *stubRepo) InventoryByQuantity(ctx context.Context) ([]models.InventoryItem, error) {
	return s.items, nil
}

func (s *stubRepo) TopWorkers(ctx context.Context) ([]models.Worker, error) {
	return s.workers, nil
}

type fakeCache struct {
	values  map[string]string
	getErr  error
	setErr  error
	setKeys []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return "", redis.ErrCacheMiss
	}
	return value, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value.(string)
	f.setKeys = append(f.setKeys, key)
	return nil
}

func (f *fakeCache) CacheKey(parts ...string) string {
	key := "test"
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func testRepo() *stubRepo {
	return &stubRepo{
		customers: 4,
		vehicles:  6,
		open:      2,
		completed: []models.WorkOrder{
			{ID: 1, Code: "WO-00001", TotalCost: dec("370.00")},
			{ID: 2, Code: "WO-00002", TotalCost: dec("129.99")},
		},
		items: []models.InventoryItem{
			{ID: 1, Name: "Brake Pads", QuantityOnHand: -2},
			{ID: 2, Name: "Oil Filter", QuantityOnHand: 3},
			{ID: 3, Name: "Coolant", QuantityOnHand: 40},
		},
		workers: []models.Worker{
			{ID: 1, Name: "Alex", TotalJobs: 7, TotalServices: 12},
		},
	}
}

func TestSummaryComputesAggregates(t *testing.T) {
	repo := testRepo()
	svc, err := NewService(repo, nil, time.Minute, testLogger())
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), summary.Totals.Customers)
	assert.Equal(t, int64(6), summary.Totals.Vehicles)
	assert.Equal(t, int64(2), summary.Totals.OpenWorkOrders)
	assert.True(t, summary.RevenueLast30Days.Equal(dec("499.99")),
		"expected 499.99, got %s", summary.RevenueLast30Days)
	assert.Len(t, summary.RecentCompletedWorkOrders, 2)
	assert.Equal(t, 2, summary.InventoryAlertsCount)
	assert.Len(t, summary.LowStockItems, 2)
	require.Len(t, summary.TopWorkers, 1)
	assert.Equal(t, "Alex", summary.TopWorkers[0].Name)
}

func TestSummaryCachesResult(t *testing.T) {
	repo := testRepo()
	cache := newFakeCache()
	svc, err := NewService(repo, cache, time.Minute, testLogger())
	require.NoError(t, err)

	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, cache.setKeys, 1)
	firstComputes := repo.computeCalls

	// Second call is served from the cache, not recomputed.
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, firstComputes, repo.computeCalls)
	assert.Equal(t, int64(4), summary.Totals.Customers)
}

func TestSummarySurvivesCacheFailure(t *testing.T) {
	repo := testRepo()
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	svc, err := NewService(repo, cache, time.Minute, testLogger())
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.Totals.Customers)
}
