package workers

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
)

var workerSchema = []string{
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
	)`,
	`CREATE TABLE work_order_assignments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		work_order_id INTEGER NOT NULL,
		worker_id INTEGER NOT NULL,
		role TEXT,
		notes TEXT,
		services_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`,
}

func setupWorkerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	for _, stmt := range workerSchema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := setupWorkerTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func strPtr(s string) *string { return &s }

func TestCreateWorkerRoundsExpenses(t *testing.T) {
	svc, _ := newTestService(t)

	commute := decimal.RequireFromString("12.345")
	worker, err := svc.Create(context.Background(), CreatePayload{
		Name:           "Alex",
		Email:          strPtr("alex@shop.test"),
		CommuteExpense: &commute,
	})
	require.NoError(t, err)

	require.NotNil(t, worker.CommuteExpense)
	assert.True(t, worker.CommuteExpense.Equal(decimal.RequireFromString("12.35")),
		"expected 12.35, got %s", worker.CommuteExpense)
	assert.Zero(t, worker.TotalJobs)
}

func TestUpdateWorkerNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), 99, UpdatePayload{Name: strPtr("Nobody")})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteWorkerBlockedByAssignments(t *testing.T) {
	svc, conn := newTestService(t)

	worker, err := svc.Create(context.Background(), CreatePayload{Name: "Morgan"})
	require.NoError(t, err)
	require.NoError(t, conn.Create(&models.WorkOrderAssignment{
		WorkOrderID:   1,
		WorkerID:      worker.ID,
		ServicesCount: 2,
	}).Error)

	err = svc.Delete(context.Background(), worker.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	// Removing the assignment lifts the guard.
	require.NoError(t, conn.Where("worker_id = ?", worker.ID).
		Delete(&models.WorkOrderAssignment{}).Error)
	require.NoError(t, svc.Delete(context.Background(), worker.ID))

	_, err = svc.Get(context.Background(), worker.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListWorkersOrdersByWorkload(t *testing.T) {
	svc, conn := newTestService(t)

	for _, w := range []models.Worker{
		{Name: "Idle"},
		{Name: "Busy", TotalJobs: 5, TotalServices: 9},
		{Name: "Steady", TotalJobs: 2, TotalServices: 4},
	} {
		worker := w
		require.NoError(t, conn.Create(&worker).Error)
	}

	workers, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, workers, 3)
	assert.Equal(t, "Busy", workers[0].Name)
	assert.Equal(t, "Steady", workers[1].Name)
	assert.Equal(t, "Idle", workers[2].Name)
}
