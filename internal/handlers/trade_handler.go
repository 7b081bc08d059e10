package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/naturecards/social/internal/models"
	"github.com/naturecards/social/internal/services"
	"github.com/naturecards/social/pkg/apperrors"
	"github.com/naturecards/social/pkg/logger"
	"github.com/naturecards/social/pkg/middleware"
)

type TradeHandler struct {
	Service *services.TradeService
}

func NewTradeHandler(service *services.TradeService) *TradeHandler {
	return &TradeHandler{Service: service}
}

type tradeResult struct {
	Success bool `json:"success"`
}

// GET /social/trades
func (h *TradeHandler) GetTradeRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	trades, err := h.Service.GetTradeRequests(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch trades for user %s: %v", userID, err)
		middleware.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trades)
}

// POST /social/trades
func (h *TradeHandler) SendTradeRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	trade, ok := decodeTrade(w, r)
	if !ok {
		return
	}

	success := h.Service.SendTradeRequest(r.Context(), userID, trade.OfferedCard, trade.RequestedCard)
	writeJSON(w, http.StatusOK, tradeResult{Success: success})
}

// POST /social/trades/accept
func (h *TradeHandler) AcceptTradeRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	trade, ok := decodeTrade(w, r)
	if !ok {
		return
	}

	success := h.Service.AcceptTradeRequest(r.Context(), userID, trade)
	writeJSON(w, http.StatusOK, tradeResult{Success: success})
}

// POST /social/trades/decline
func (h *TradeHandler) DeclineTradeRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	trade, ok := decodeTrade(w, r)
	if !ok {
		return
	}

	success := h.Service.DeclineTradeRequest(r.Context(), userID, trade)
	writeJSON(w, http.StatusOK, tradeResult{Success: success})
}

func decodeTrade(w http.ResponseWriter, r *http.Request) (models.TradeRequest, bool) {
	defer r.Body.Close()

	var trade models.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		logger.Log.Warnf("Failed to decode trade request: %v", err)
		middleware.WriteError(w, apperrors.ErrInvalidInput)
		return trade, false
	}
	return trade, true
}
