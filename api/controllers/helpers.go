package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
)

// parseIDParam reads a positive integer path parameter or fails validation.
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive integer").
			WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

func searchParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("search"))
}
