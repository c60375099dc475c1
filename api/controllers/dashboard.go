package controllers

import (
	"net/http"

	"github.com/dmarroquin/gearbox-backend/api/responses"
	"github.com/dmarroquin/gearbox-backend/internal/dashboard"
	"github.com/dmarroquin/gearbox-backend/pkg/logger"
)

func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		summary, err := svc.Summary(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
