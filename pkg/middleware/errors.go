package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/naturecards/social/pkg/apperrors"
	"github.com/naturecards/social/pkg/logger"
)

// RecoveryMiddleware turns a panic into a 500 JSON response.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.WithField("panic", rec).Error("Panic recovered")
				WriteError(w, apperrors.ErrInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WriteError writes err as a JSON APIError response.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := apperrors.Wrap(err, "UNKNOWN_ERROR", "Unexpected error", http.StatusInternalServerError)

	// Log server errors
	if apiErr.Status >= 500 {
		logger.Log.Errorf("Server error %s", apiErr.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
