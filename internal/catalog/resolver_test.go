package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE inventory_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  sku TEXT NOT NULL UNIQUE,
  description TEXT,
  quantity_on_hand INTEGER NOT NULL DEFAULT 0,
  reorder_point INTEGER NOT NULL DEFAULT 0,
  unit_cost NUMERIC NOT NULL DEFAULT 0,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE service_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  default_price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE workers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  total_jobs INTEGER NOT NULL DEFAULT 0,
  total_services INTEGER NOT NULL DEFAULT 0,
  commute_expense NUMERIC,
  shift_expense NUMERIC,
  meal_expense NUMERIC,
  other_expense NUMERIC,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func TestResolveInventoryItemByIDStrict(t *testing.T) {
	conn := setupCatalogTestDB(t)
	r := NewResolver()

	missing := int64(12345)
	_, _, err := r.ResolveInventoryItem(context.Background(), conn, InventoryInput{ID: &missing})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestResolveInventoryItemReusesByName(t *testing.T) {
	conn := setupCatalogTestDB(t)
	r := NewResolver()
	ctx := context.Background()

	seeded := models.InventoryItem{Name: "Brake Pads", SKU: "SKU-EXISTING", QuantityOnHand: 4}
	require.NoError(t, conn.Create(&seeded).Error)

	item, created, err := r.ResolveInventoryItem(ctx, conn, InventoryInput{Name: "Brake Pads", UnitPrice: decimal.NewFromInt(85)})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, seeded.ID, item.ID)
	assert.Equal(t, 4, item.QuantityOnHand)
}

func TestResolveInventoryItemAutoProvisions(t *testing.T) {
	conn := setupCatalogTestDB(t)
	r := NewResolver()

	stock := 10
	item, created, err := r.ResolveInventoryItem(context.Background(), conn, InventoryInput{
		Name:         "Timing Belt",
		UnitPrice:    decimal.RequireFromString("45.99"),
		InitialStock: &stock,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 10, item.QuantityOnHand)
	assert.Equal(t, 5, item.ReorderPoint)
	assert.True(t, strings.HasPrefix(item.SKU, "SKU-TIMING-"), item.SKU)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("45.99")))
}

func TestResolveInventoryItemDefaultsSeedToZero(t *testing.T) {
	conn := setupCatalogTestDB(t)
	r := NewResolver()

	item, created, err := r.ResolveInventoryItem(context.Background(), conn, InventoryInput{
		Name:      "Wiper Blade",
		UnitPrice: decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 0, item.QuantityOnHand)
}

func TestResolveServiceItemAutoProvisions(t *testing.T) {
	conn := setupCatalogTestDB(t)
	r := NewResolver()
	ctx := context.Background()

	item, created, err := r.ResolveServiceItem(ctx, conn, ServiceInput{Name: "Inspection", UnitPrice: decimal.NewFromInt(200)})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, item.DefaultPrice.Equal(decimal.NewFromInt(200)))

	same, createdAgain, err := r.ResolveServiceItem(ctx, conn, ServiceInput{Name: "Inspection", UnitPrice: decimal.NewFromInt(250)})
	require.NoError(t, err)
	assert.False(t, createdAgain)
	assert.Equal(t, item.ID, same.ID)
}

func TestResolveWorkerRequiresReference(t *testing.T) {
	conn := setupCatalogTestDB(t)
	r := NewResolver()

	_, err := r.ResolveWorker(context.Background(), conn, WorkerInput{})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestResolveWorkerTrimsAndCreates(t *testing.T) {
	conn := setupCatalogTestDB(t)
	r := NewResolver()
	ctx := context.Background()

	name := "  Alex  "
	worker, err := r.ResolveWorker(ctx, conn, WorkerInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alex", worker.Name)

	again, err := r.ResolveWorker(ctx, conn, WorkerInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, worker.ID, again.ID)
}

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("INV", "Brake Pads (front)")
	assert.True(t, strings.HasPrefix(sku, "INV-BRAKEP-"), sku)

	fallback := GenerateSKU("SKU", "!!!")
	assert.True(t, strings.HasPrefix(fallback, "SKU-ITEM-"), fallback)
}
