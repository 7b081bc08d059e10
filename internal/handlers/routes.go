package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/naturecards/social/pkg/middleware"
)

// NewRouter wires the social API onto a gorilla/mux router.
func NewRouter(jwtSecret string, friendHandler *FriendHandler, tradeHandler *TradeHandler, activityHandler *ActivityHandler) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Everything under /social acts on behalf of the signed-in user
	social := router.PathPrefix("/social").Subrouter()
	social.Use(middleware.AuthMiddleware(jwtSecret))

	social.HandleFunc("/overview", friendHandler.GetOverviewHandler).Methods("GET")
	social.HandleFunc("/friends", friendHandler.GetFriendsHandler).Methods("GET")
	social.HandleFunc("/friend-requests", friendHandler.GetFriendRequestsHandler).Methods("GET")
	social.HandleFunc("/friend-requests", friendHandler.SendFriendRequestHandler).Methods("POST")
	social.HandleFunc("/friend-requests/{id}/accept", friendHandler.AcceptFriendRequestHandler).Methods("POST")
	social.HandleFunc("/friend-requests/{id}/decline", friendHandler.DeclineFriendRequestHandler).Methods("POST")
	social.HandleFunc("/status/{id}", friendHandler.GetFriendshipStatusHandler).Methods("GET")

	social.HandleFunc("/trades", tradeHandler.GetTradeRequestsHandler).Methods("GET")
	social.HandleFunc("/trades", tradeHandler.SendTradeRequestHandler).Methods("POST")
	social.HandleFunc("/trades/accept", tradeHandler.AcceptTradeRequestHandler).Methods("POST")
	social.HandleFunc("/trades/decline", tradeHandler.DeclineTradeRequestHandler).Methods("POST")

	social.HandleFunc("/activity", activityHandler.GetActivitiesHandler).Methods("GET")

	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)

	return router
}
