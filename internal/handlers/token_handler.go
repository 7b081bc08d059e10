package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/naturecards/social/internal/gallery"
	"github.com/naturecards/social/pkg/apperrors"
	jwtutil "github.com/naturecards/social/pkg/jwt"
	"github.com/naturecards/social/pkg/logger"
	"github.com/naturecards/social/pkg/middleware"
)

// TokenHandler issues bearer tokens for users of a local document store. It stands
// in for the NatureCards auth provider when running against the memory backend.
type TokenHandler struct {
	Store  gallery.Store
	Secret string
	Expiry time.Duration
}

func NewTokenHandler(store gallery.Store, secret string, expiry time.Duration) *TokenHandler {
	return &TokenHandler{Store: store, Secret: secret, Expiry: expiry}
}

// Register mounts the handler on router under /dev.
func (h *TokenHandler) Register(router *mux.Router) {
	router.HandleFunc("/dev/token", h.IssueTokenHandler).Methods("POST")
}

// POST /dev/token {"username": "..."}
func (h *TokenHandler) IssueTokenHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Username) == "" {
		middleware.WriteError(w, apperrors.ErrInvalidInput)
		return
	}

	user, err := h.Store.FetchUserByUsername(r.Context(), strings.TrimSpace(body.Username))
	if err != nil {
		logger.Log.Warnf("Token request for unknown user %q: %v", body.Username, err)
		middleware.WriteError(w, err)
		return
	}

	expiresAt := time.Now().Add(h.Expiry)
	token, err := jwtutil.GenerateToken(user.ID, user.Username, h.Secret, h.Expiry)
	if err != nil {
		logger.Log.Errorf("Failed to issue token for %s: %v", user.ID, err)
		middleware.WriteError(w, apperrors.ErrInternal)
		return
	}

	logger.Log.Infof("Issued development token for %s", user.Username)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"user_id":    user.ID,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}
