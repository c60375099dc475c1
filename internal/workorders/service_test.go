package workorders

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/dmarroquin/gearbox-backend/internal/catalog"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"github.com/dmarroquin/gearbox-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"github.com/dmarroquin/gearbox-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var workOrderSchema = []string{
	`CREATE TABLE customers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT,
  phone TEXT NOT NULL DEFAULT '',
  company TEXT,
  notes TEXT,
  address_line1 TEXT,
  address_line2 TEXT,
  city TEXT,
  state TEXT,
  postal_code TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE vehicles (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_id INTEGER NOT NULL,
  vin TEXT NOT NULL UNIQUE,
  make TEXT NOT NULL,
  model TEXT NOT NULL,
  year INTEGER NOT NULL,
  license_plate TEXT,
  mileage INTEGER,
  color TEXT,
  engine TEXT,
  notes TEXT,
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
	`CREATE TABLE work_orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  code TEXT NOT NULL UNIQUE,
  vehicle_id INTEGER NOT NULL,
  customer_id INTEGER,
  description TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'IN_PROGRESS',
  is_historical INTEGER NOT NULL DEFAULT 0,
  arrival_date DATETIME NOT NULL,
  quoted_at DATETIME,
  scheduled_date DATETIME,
  completed_date DATETIME,
  parking_charge NUMERIC NOT NULL DEFAULT 0,
  labor_cost NUMERIC NOT NULL DEFAULT 0,
  parts_cost NUMERIC NOT NULL DEFAULT 0,
  taxes NUMERIC NOT NULL DEFAULT 0,
  discount NUMERIC NOT NULL DEFAULT 0,
  total_cost NUMERIC NOT NULL DEFAULT 0,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE work_order_line_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  work_order_id INTEGER NOT NULL,
  inventory_item_id INTEGER,
  service_item_id INTEGER,
  description TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE work_order_assignments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  work_order_id INTEGER NOT NULL,
  worker_id INTEGER NOT NULL,
  role TEXT,
  notes TEXT,
  services_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE work_order_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  work_order_id INTEGER NOT NULL,
  message TEXT NOT NULL,
  author TEXT NOT NULL DEFAULT 'system',
  category TEXT NOT NULL DEFAULT 'SYSTEM',
  timestamp DATETIME
);`,
}

func setupWorkOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	for _, stmt := range workOrderSchema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := setupWorkOrderTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewRepository(conn), testTxRunner{db: conn}, catalog.NewResolver(), logg)
	require.NoError(t, err)
	return svc, conn
}

func seedVehicle(t *testing.T, conn *gorm.DB) models.Vehicle {
	t.Helper()

	customer := models.Customer{FirstName: "Dana", LastName: "Reyes", Phone: "555-0100"}
	require.NoError(t, conn.Create(&customer).Error)

	vehicle := models.Vehicle{
		CustomerID: customer.ID,
		VIN:        fmt.Sprintf("VIN-%s", t.Name()),
		Make:       "Toyota",
		Model:      "Hilux",
		Year:       2019,
	}
	require.NoError(t, conn.Create(&vehicle).Error)
	return vehicle
}

func strPtr(s string) *string { return &s }

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}
func intPtr(i int) *int { return &i }

func TestCreateWorkOrderProvisionsCatalog(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)
	ctx := context.Background()

	order, err := svc.Create(ctx, CreatePayload{
		VehicleID:   vehicle.ID,
		Description: "Brake overhaul",
		LineItems: []LineItemInput{
			{Type: enums.LineItemTypePart, Name: "Brake Pads", Quantity: 2, UnitPrice: dec("85")},
			{Type: enums.LineItemTypeService, Name: "Inspection", Quantity: 1, UnitPrice: dec("200")},
		},
		Assignments: []AssignmentInput{
			{WorkerName: strPtr("Alex")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "WO-00001", order.Code)
	assert.Equal(t, enums.WorkOrderStatusInProgress, order.Status)
	assert.True(t, order.TotalCost.Equal(dec("370")), order.TotalCost.String())
	assert.True(t, order.LaborCost.Equal(dec("200")))
	assert.True(t, order.PartsCost.Equal(dec("170")))
	require.Len(t, order.LineItems, 2)
	require.Len(t, order.Assignments, 1)

	var item models.InventoryItem
	require.NoError(t, conn.Where("name = ?", "Brake Pads").First(&item).Error)
	assert.Equal(t, -2, item.QuantityOnHand)
	assert.Contains(t, item.SKU, "BRAKEP")

	var svcItem models.ServiceItem
	require.NoError(t, conn.Where("name = ?", "Inspection").First(&svcItem).Error)
	assert.True(t, svcItem.DefaultPrice.Equal(dec("200")))

	var worker models.Worker
	require.NoError(t, conn.Where("name = ?", "Alex").First(&worker).Error)
	assert.Equal(t, 1, worker.TotalJobs)
	assert.Equal(t, 1, worker.TotalServices)

	var logs []models.WorkOrderLog
	require.NoError(t, conn.Where("work_order_id = ?", order.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "Work order created", logs[0].Message)
}

func TestCreateWorkOrderSeedsInitialStock(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)

	_, err := svc.Create(context.Background(), CreatePayload{
		VehicleID:   vehicle.ID,
		Description: "Oil change",
		LineItems: []LineItemInput{
			{Type: enums.LineItemTypePart, Name: "Oil Filter", Quantity: 1, UnitPrice: dec("12.50"), InitialStock: intPtr(10)},
		},
	})
	require.NoError(t, err)

	var item models.InventoryItem
	require.NoError(t, conn.Where("name = ?", "Oil Filter").First(&item).Error)
	assert.Equal(t, 9, item.QuantityOnHand)
}

func TestCreateWorkOrderUnknownInventoryID(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)

	_, err := svc.Create(context.Background(), CreatePayload{
		VehicleID:   vehicle.ID,
		Description: "Bad reference",
		LineItems: []LineItemInput{
			{Type: enums.LineItemTypePart, InventoryItemID: func() *int64 { id := int64(999); return &id }(), Name: "Ghost", Quantity: 1, UnitPrice: dec("1")},
		},
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	// the failed transaction must leave nothing behind
	var count int64
	require.NoError(t, conn.Model(&models.WorkOrder{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateWorkOrderAssignmentNeedsWorkerReference(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)

	_, err := svc.Create(context.Background(), CreatePayload{
		VehicleID:   vehicle.ID,
		Description: "No worker reference",
		Assignments: []AssignmentInput{{Role: strPtr("lead")}},
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUpdateWorkOrderIdenticalLineSetIsIdempotent(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)
	ctx := context.Background()

	lines := []LineItemInput{
		{Type: enums.LineItemTypePart, Name: "Spark Plug", Quantity: 4, UnitPrice: dec("9")},
	}
	order, err := svc.Create(ctx, CreatePayload{VehicleID: vehicle.ID, Description: "Tune up", LineItems: lines})
	require.NoError(t, err)

	quantityAfter := func() int {
		var item models.InventoryItem
		require.NoError(t, conn.Where("name = ?", "Spark Plug").First(&item).Error)
		return item.QuantityOnHand
	}
	first := quantityAfter()

	_, err = svc.Update(ctx, order.ID, UpdatePayload{LineItems: &lines})
	require.NoError(t, err)
	assert.Equal(t, first, quantityAfter())

	_, err = svc.Update(ctx, order.ID, UpdatePayload{LineItems: &lines})
	require.NoError(t, err)
	assert.Equal(t, first, quantityAfter())
}

func TestUpdateWorkOrderReplacesAssignments(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)
	ctx := context.Background()

	order, err := svc.Create(ctx, CreatePayload{
		VehicleID:   vehicle.ID,
		Description: "Suspension work",
		LineItems: []LineItemInput{
			{Type: enums.LineItemTypeService, Name: "Alignment", Quantity: 2, UnitPrice: dec("60")},
		},
		Assignments: []AssignmentInput{{WorkerName: strPtr("Alex")}},
	})
	require.NoError(t, err)

	newSet := []AssignmentInput{{WorkerName: strPtr("Morgan"), ServicesCount: intPtr(5)}}
	_, err = svc.Update(ctx, order.ID, UpdatePayload{Assignments: &newSet})
	require.NoError(t, err)

	var alex, morgan models.Worker
	require.NoError(t, conn.Where("name = ?", "Alex").First(&alex).Error)
	require.NoError(t, conn.Where("name = ?", "Morgan").First(&morgan).Error)
	assert.Equal(t, 0, alex.TotalJobs)
	assert.Equal(t, 0, alex.TotalServices)
	assert.Equal(t, 1, morgan.TotalJobs)
	assert.Equal(t, 5, morgan.TotalServices)
}

func TestUpdateWorkOrderKeepsAbsentFinancialFields(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)
	ctx := context.Background()

	taxes := dec("30")
	order, err := svc.Create(ctx, CreatePayload{
		VehicleID:   vehicle.ID,
		Description: "Detailing",
		Taxes:       &taxes,
		LineItems: []LineItemInput{
			{Type: enums.LineItemTypeService, Name: "Detail", Quantity: 1, UnitPrice: dec("100")},
		},
	})
	require.NoError(t, err)
	require.True(t, order.TotalCost.Equal(dec("130")), order.TotalCost.String())

	discount := dec("20")
	updated, err := svc.Update(ctx, order.ID, UpdatePayload{Discount: &discount})
	require.NoError(t, err)

	assert.True(t, updated.Taxes.Equal(dec("30")), updated.Taxes.String())
	assert.True(t, updated.TotalCost.Equal(dec("110")), updated.TotalCost.String())

	var logs []models.WorkOrderLog
	require.NoError(t, conn.Where("work_order_id = ?", order.ID).Find(&logs).Error)
	assert.Len(t, logs, 2)
}

func TestUpdateWorkOrderNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), 4242, UpdatePayload{})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCompleteWorkOrderIsTerminal(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)
	ctx := context.Background()

	order, err := svc.Create(ctx, CreatePayload{VehicleID: vehicle.ID, Description: "Quick fix"})
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.WorkOrderStatusCompleted, completed.Status)
	assert.True(t, completed.IsHistorical)
	require.NotNil(t, completed.CompletedDate)

	logCount := func() int64 {
		var count int64
		require.NoError(t, conn.Model(&models.WorkOrderLog{}).Where("work_order_id = ?", order.ID).Count(&count).Error)
		return count
	}
	before := logCount()

	again, err := svc.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.WorkOrderStatusCompleted, again.Status)
	assert.Equal(t, completed.CompletedDate.Unix(), again.CompletedDate.Unix())
	assert.Equal(t, before, logCount())
}

func TestDeleteWorkOrderReversesEverything(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)
	ctx := context.Background()

	order, err := svc.Create(ctx, CreatePayload{
		VehicleID:   vehicle.ID,
		Description: "Full service",
		LineItems: []LineItemInput{
			{Type: enums.LineItemTypePart, Name: "Air Filter", Quantity: 3, UnitPrice: dec("20"), InitialStock: intPtr(8)},
			{Type: enums.LineItemTypeService, Name: "Service A", Quantity: 2, UnitPrice: dec("150")},
		},
		Assignments: []AssignmentInput{{WorkerName: strPtr("Alex")}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, order.ID))

	var item models.InventoryItem
	require.NoError(t, conn.Where("name = ?", "Air Filter").First(&item).Error)
	assert.Equal(t, 8, item.QuantityOnHand)

	var worker models.Worker
	require.NoError(t, conn.Where("name = ?", "Alex").First(&worker).Error)
	assert.Equal(t, 0, worker.TotalJobs)
	assert.Equal(t, 0, worker.TotalServices)

	_, err = svc.Get(ctx, order.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	var children int64
	require.NoError(t, conn.Model(&models.WorkOrderLineItem{}).Where("work_order_id = ?", order.ID).Count(&children).Error)
	assert.Zero(t, children)
}

func TestListWorkOrdersFilters(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreatePayload{VehicleID: vehicle.ID, Description: "Brake job"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreatePayload{VehicleID: vehicle.ID, Description: "Paint touch up"})
	require.NoError(t, err)
	_, err = svc.Complete(ctx, first.ID)
	require.NoError(t, err)

	status := "COMPLETED"
	completed, err := svc.List(ctx, ListFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, first.ID, completed[0].ID)

	all, err := svc.List(ctx, ListFilters{Search: "Brake"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Brake job", all[0].Description)

	bogus := "NOT_A_STATUS"
	_, err = svc.List(ctx, ListFilters{Status: &bogus})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCreateWorkOrderHistoricalBackdate(t *testing.T) {
	svc, conn := newTestService(t)
	vehicle := seedVehicle(t, conn)
	ctx := context.Background()

	override := mustParseTime(t, "2023-03-15T10:00:00Z")
	mode := enums.WorkOrderModeHistorical
	order, err := svc.Create(ctx, CreatePayload{
		VehicleID:         vehicle.ID,
		Description:       "Backfilled job",
		Mode:              &mode,
		CreatedAtOverride: &override,
	})
	require.NoError(t, err)
	assert.True(t, order.IsHistorical)

	var stored models.WorkOrder
	require.NoError(t, conn.First(&stored, order.ID).Error)
	assert.True(t, stored.CreatedAt.Equal(override), stored.CreatedAt.String())
}
