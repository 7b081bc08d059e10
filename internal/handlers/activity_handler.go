package handlers

import (
	"net/http"
	"strconv"

	"github.com/naturecards/social/internal/services"
	"github.com/naturecards/social/pkg/apperrors"
	"github.com/naturecards/social/pkg/logger"
	"github.com/naturecards/social/pkg/middleware"
)

type ActivityHandler struct {
	Service *services.ActivityService
}

func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: service}
}

// GET /social/activity?limit=20
func (h *ActivityHandler) GetActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if h.Service == nil {
		middleware.WriteError(w, apperrors.NotFound("activity log is disabled"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.WriteError(w, apperrors.ErrInvalidInput)
			return
		}
		limit = n
	}

	activities, err := h.Service.GetRecentActivities(r.Context(), userID, limit)
	if err != nil {
		logger.Log.Errorf("Failed to fetch activities for user %s: %v", userID, err)
		middleware.WriteError(w, apperrors.ErrInternal)
		return
	}

	writeJSON(w, http.StatusOK, activities)
}
