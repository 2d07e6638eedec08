package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"pingly_server/models"
	"pingly_server/services"
	"pingly_server/utils"
)

type contextKey int

const dashboardKey contextKey = iota

// RequireDashboard resolves the bearer token to a signed-in dashboard and
// rejects the request with 401 otherwise.
func RequireDashboard(sessions *services.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dash, err := sessions.Dashboard(utils.BearerToken(r))
			if err != nil {
				writeServiceError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), dashboardKey, dash)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func dashboardFrom(r *http.Request) *services.Dashboard {
	dash, _ := r.Context().Value(dashboardKey).(*services.Dashboard)
	return dash
}

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteJSONError(w, http.StatusBadRequest, verr.Error(), verr.FieldErrors)
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		utils.WriteJSONError(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		utils.WriteJSONError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrEmailTaken):
		utils.WriteJSONError(w, http.StatusConflict, err.Error(), nil)
	default:
		log.Printf("❌ Unhandled error: %v", err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

// writeChange reports the outcome of an operation that may be a no-op on a
// stale reference.
func writeChange(w http.ResponseWriter, changed bool, key string, v interface{}) {
	body := map[string]interface{}{"changed": changed}
	if key != "" {
		body[key] = v
	}
	utils.WriteJSONResponse(w, http.StatusOK, body)
}

func badRequest(w http.ResponseWriter, msg string) {
	utils.WriteJSONError(w, http.StatusBadRequest, msg, nil)
}

// modeParam reads ?mode=, defaulting to professional.
func modeParam(r *http.Request) (models.Mode, bool) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return models.ModeProfessional, true
	}
	mode := models.Mode(raw)
	return mode, mode.Valid()
}
