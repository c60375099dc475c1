package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmarroquin/gearbox-backend/api/responses"
	"github.com/dmarroquin/gearbox-backend/api/validators"
	"github.com/dmarroquin/gearbox-backend/internal/workorders"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"github.com/dmarroquin/gearbox-backend/pkg/logger"
)

// ListWorkOrders handles GET /work-orders with optional status, date range,
// search, and historical filters.
func ListWorkOrders(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filters, err := workOrderFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orders, err := svc.List(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

func GetWorkOrder(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func CreateWorkOrder(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload workorders.CreatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Create(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func UpdateWorkOrder(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload workorders.UpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Update(ctx, id, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func CompleteWorkOrder(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Complete(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func DeleteWorkOrder(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": true})
	}
}

func workOrderFilters(r *http.Request) (workorders.ListFilters, error) {
	filters := workorders.ListFilters{Search: searchParam(r)}
	query := r.URL.Query()

	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 500)
	if err != nil {
		return filters, err
	}
	filters.Limit = limit

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status := strings.ToUpper(raw)
		filters.Status = &status
	}

	for key, dest := range map[string]**time.Time{"from": &filters.From, "to": &filters.To} {
		raw := strings.TrimSpace(query.Get(key))
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "date filters must be RFC3339 timestamps").
				WithDetails(map[string]any{"field": key})
		}
		*dest = &parsed
	}

	if raw := strings.TrimSpace(query.Get("historical")); raw != "" {
		historical, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "historical must be a boolean").
				WithDetails(map[string]any{"field": "historical"})
		}
		filters.Historical = &historical
	}

	return filters, nil
}
