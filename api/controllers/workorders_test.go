package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarroquin/gearbox-backend/internal/workorders"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"github.com/dmarroquin/gearbox-backend/pkg/logger"
)

type stubWorkOrderService struct {
	getFn  func(ctx context.Context, id int64) (*models.WorkOrder, error)
	listFn func(ctx context.Context, filters workorders.ListFilters) ([]models.WorkOrder, error)
}

func (s *stubWorkOrderService) Create(ctx context.Context, payload workorders.CreatePayload) (*models.WorkOrder, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s *stubWorkOrderService) Update(ctx context.Context, id int64, payload workorders.UpdatePayload) (*models.WorkOrder, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s *stubWorkOrderService) Complete(ctx context.Context, id int64) (*models.WorkOrder, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s *stubWorkOrderService) Delete(ctx context.Context, id int64) error {
	return pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s *stubWorkOrderService) List(ctx context.Context, filters workorders.ListFilters) ([]models.WorkOrder, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filters)
	}
	return nil, nil
}

func (s *stubWorkOrderService) Get(ctx context.Context, id int64) (*models.WorkOrder, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "not found")
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
}

func routeRequest(t *testing.T, handler http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, "/work-orders/{id}", handler)
	r.MethodFunc(method, "/work-orders", handler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestGetWorkOrderRejectsBadID(t *testing.T) {
	svc := &stubWorkOrderService{}
	rec := routeRequest(t, GetWorkOrder(svc, testLogger()), http.MethodGet, "/work-orders/abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestGetWorkOrderMapsNotFound(t *testing.T) {
	svc := &stubWorkOrderService{
		getFn: func(ctx context.Context, id int64) (*models.WorkOrder, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "work order 42 not found")
		},
	}
	rec := routeRequest(t, GetWorkOrder(svc, testLogger()), http.MethodGet, "/work-orders/42")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "work order 42 not found")
}

func TestListWorkOrdersParsesFilters(t *testing.T) {
	var captured workorders.ListFilters
	svc := &stubWorkOrderService{
		listFn: func(ctx context.Context, filters workorders.ListFilters) ([]models.WorkOrder, error) {
			captured = filters
			return []models.WorkOrder{}, nil
		},
	}

	target := "/work-orders?status=completed&search=brake&historical=true&limit=50&from=2026-01-01T00:00:00Z"
	rec := routeRequest(t, ListWorkOrders(svc, testLogger()), http.MethodGet, target)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured.Status)
	assert.Equal(t, "COMPLETED", *captured.Status)
	assert.Equal(t, "brake", captured.Search)
	require.NotNil(t, captured.Historical)
	assert.True(t, *captured.Historical)
	assert.Equal(t, 50, captured.Limit)
	require.NotNil(t, captured.From)
	assert.Equal(t, 2026, captured.From.Year())
	assert.Nil(t, captured.To)
}

func TestListWorkOrdersRejectsBadDate(t *testing.T) {
	svc := &stubWorkOrderService{}
	rec := routeRequest(t, ListWorkOrders(svc, testLogger()), http.MethodGet, "/work-orders?from=yesterday")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "RFC3339")
}

func TestListWorkOrdersRejectsOversizedLimit(t *testing.T) {
	svc := &stubWorkOrderService{}
	rec := routeRequest(t, ListWorkOrders(svc, testLogger()), http.MethodGet, "/work-orders?limit=5000")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
