package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/naturecards/social/internal/services"
	"github.com/naturecards/social/pkg/apperrors"
	"github.com/naturecards/social/pkg/logger"
	"github.com/naturecards/social/pkg/middleware"
)

// FriendHandler manages HTTP endpoints related to friends and friend requests.
type FriendHandler struct {
	Service       *services.FriendService
	SocialService *services.SocialService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService, socialService *services.SocialService) *FriendHandler {
	return &FriendHandler{Service: service, SocialService: socialService}
}

// currentUserID returns the signed-in user's id, writing a 401 when there is none.
func currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil || claims.UserID == "" {
		logger.Log.Warnf("Unauthorized request to %s", r.URL.Path)
		middleware.WriteError(w, apperrors.ErrUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// GetOverviewHandler returns friends, friend requests and trades in one response.
func (h *FriendHandler) GetOverviewHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	overview, err := h.SocialService.Overview(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to load social overview for user %s: %v", userID, err)
		middleware.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

// GetFriendsHandler returns a list of user's friends.
func (h *FriendHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	friends, err := h.Service.GetFriends(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch friends for user %s: %v", userID, err)
		middleware.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, friends)
}

// GetFriendRequestsHandler shows all incoming and outgoing friend requests.
func (h *FriendHandler) GetFriendRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	requests, err := h.Service.GetFriendRequests(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to get friend requests for user %s: %v", userID, err)
		middleware.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// SendFriendRequestHandler sends a friend request to the user named in the body.
func (h *FriendHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Log.Warnf("Failed to decode friend request body: %v", err)
		middleware.WriteError(w, apperrors.ErrInvalidInput)
		return
	}
	defer r.Body.Close()

	request, err := h.Service.SendFriendRequest(r.Context(), userID, body.Username)
	if err != nil {
		logger.Log.Warnf("Failed to send friend request from %s to %q: %v", userID, body.Username, err)
		middleware.WriteError(w, err)
		return
	}

	logger.Log.Infof("User %s sent a friend request to %s", userID, request.RecipientID)
	writeJSON(w, http.StatusCreated, request)
}

// AcceptFriendRequestHandler accepts the request sent by the user in the path.
func (h *FriendHandler) AcceptFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	friendID := mux.Vars(r)["id"]

	if err := h.Service.AcceptFriendRequest(r.Context(), userID, friendID); err != nil {
		logger.Log.Errorf("Failed to accept friend request %s -> %s: %v", friendID, userID, err)
		middleware.WriteError(w, err)
		return
	}

	logger.Log.Infof("User %s accepted friend request from %s", userID, friendID)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Friend request accepted",
	})
}

// DeclineFriendRequestHandler declines the request sent by the user in the path.
func (h *FriendHandler) DeclineFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	friendID := mux.Vars(r)["id"]

	if err := h.Service.DeclineFriendRequest(r.Context(), userID, friendID); err != nil {
		logger.Log.Errorf("Failed to decline friend request %s -> %s: %v", friendID, userID, err)
		middleware.WriteError(w, err)
		return
	}

	logger.Log.Infof("User %s declined friend request from %s", userID, friendID)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Friend request declined",
	})
}

// GetFriendshipStatusHandler reports how the signed-in user relates to another user.
func (h *FriendHandler) GetFriendshipStatusHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	otherID := mux.Vars(r)["id"]

	status, err := h.Service.CheckFriendshipStatus(r.Context(), userID, otherID)
	if err != nil {
		logger.Log.Errorf("Failed to check friendship status %s/%s: %v", userID, otherID, err)
		middleware.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"user_id": otherID,
		"status":  string(status),
	})
}
