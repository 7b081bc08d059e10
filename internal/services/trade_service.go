package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/naturecards/social/internal/gallery"
	"github.com/naturecards/social/internal/models"
	"github.com/naturecards/social/pkg/apperrors"
	"github.com/sirupsen/logrus"
)

// TradeService reconciles card trades between two user documents. A pending trade
// is stored as the same TradeRequest value in both users' trading lists.
//
// Mutations report success as a bool; the cause of a failure is only logged.
type TradeService struct {
	store    gallery.Store
	activity *ActivityService
}

// NewTradeService creates a new TradeService. activity may be nil.
func NewTradeService(store gallery.Store, activity *ActivityService) *TradeService {
	return &TradeService{
		store:    store,
		activity: activity,
	}
}

// GetTradeRequests loads the user's document and returns their pending trades.
func (s *TradeService) GetTradeRequests(ctx context.Context, userID string) ([]models.TradeRequest, error) {
	doc, err := gallery.FetchCurrentUser(ctx, s.store, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return DeriveTradeRequestList(doc), nil
}

// DeriveTradeRequestList returns the document's trades as stored.
func DeriveTradeRequestList(doc *models.UserDocument) []models.TradeRequest {
	if doc.Trading == nil {
		return []models.TradeRequest{}
	}
	return doc.Trading
}

// AcceptTradeRequest swaps the two cards of trade between userID and the owner of
// the offered card, then removes the trade from both users. The trade must be
// pending in userID's list and both cards must still be held by their owners.
func (s *TradeService) AcceptTradeRequest(ctx context.Context, userID string, trade models.TradeRequest) bool {
	if err := s.acceptTrade(ctx, userID, trade); err != nil {
		logrus.WithFields(logrus.Fields{
			"userID":        userID,
			"offeredCard":   trade.OfferedCard.ID,
			"requestedCard": trade.RequestedCard.ID,
			"error":         err,
		}).Error("Error accepting trade")
		return false
	}
	return true
}

func (s *TradeService) acceptTrade(ctx context.Context, userID string, trade models.TradeRequest) error {
	if err := checkCardIDs(trade); err != nil {
		return err
	}
	partnerID := trade.OfferedCard.Owner
	if partnerID == "" {
		return apperrors.Validation("offered card has no owner")
	}
	if partnerID == userID {
		return apperrors.Validation("cannot accept your own trade offer")
	}

	me, partner, err := fetchPair(ctx, s.store, userID, partnerID)
	if err != nil {
		return err
	}

	// The body only names the trade; cards move as they are stored.
	if !slices.ContainsFunc(me.Trading, trade.Matches) {
		return apperrors.NotFound("trade not found")
	}
	storedOffered, ok := findCard(partner.Cards, trade.OfferedCard.ID)
	if !ok {
		return apperrors.NotFound("offered card not found")
	}
	storedRequested, ok := findCard(me.Cards, trade.RequestedCard.ID)
	if !ok {
		return apperrors.NotFound("requested card not found")
	}

	offered := storedOffered.WithOwner(me.ID)
	requested := storedRequested.WithOwner(partner.ID)

	me.Cards = slices.DeleteFunc(me.Cards, func(c models.Card) bool {
		return c.ID == requested.ID || c.ID == offered.ID
	})
	me.Cards = append(me.Cards, offered)
	partner.Cards = slices.DeleteFunc(partner.Cards, func(c models.Card) bool {
		return c.ID == offered.ID || c.ID == requested.ID
	})
	partner.Cards = append(partner.Cards, requested)

	// Only entries naming both cards are resolved; a stale entry that matches on one
	// card alone stays put.
	me.Trading = slices.DeleteFunc(me.Trading, trade.Matches)
	partner.Trading = slices.DeleteFunc(partner.Trading, trade.Matches)

	if err := writePair(ctx, s.store, me, partner); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"userID":    userID,
		"partnerID": partnerID,
		"received":  offered.ID,
		"given":     requested.ID,
	}).Info("Trade accepted")
	s.activity.record(ctx, userID, models.ActivityTradeAccepted, offered.ID,
		fmt.Sprintf("Traded %s for %s with %s", requested.CommonName, offered.CommonName, partner.Username))
	return nil
}

// DeclineTradeRequest removes every trade offering the same card from both users.
// Unlike acceptance, only the offered card's id is compared.
func (s *TradeService) DeclineTradeRequest(ctx context.Context, userID string, trade models.TradeRequest) bool {
	if err := s.declineTrade(ctx, userID, trade); err != nil {
		logrus.WithFields(logrus.Fields{
			"userID":      userID,
			"offeredCard": trade.OfferedCard.ID,
			"error":       err,
		}).Error("Error declining trade")
		return false
	}
	return true
}

func (s *TradeService) declineTrade(ctx context.Context, userID string, trade models.TradeRequest) error {
	if err := checkCardIDs(trade); err != nil {
		return err
	}
	// The recipient declines against the offer's owner; a sender withdrawing their
	// own offer declines against the requested card's owner.
	partnerID := trade.OfferedCard.Owner
	if partnerID == userID {
		partnerID = trade.RequestedCard.Owner
	}
	if partnerID == "" || partnerID == userID {
		return apperrors.Validation("trade has no counterpart")
	}

	me, partner, err := fetchPair(ctx, s.store, userID, partnerID)
	if err != nil {
		return err
	}

	me.Trading = slices.DeleteFunc(me.Trading, trade.SameOffer)
	partner.Trading = slices.DeleteFunc(partner.Trading, trade.SameOffer)

	if err := writePair(ctx, s.store, me, partner); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"userID": userID, "partnerID": partnerID}).Info("Trade declined")
	s.activity.record(ctx, userID, models.ActivityTradeDeclined, trade.OfferedCard.ID,
		fmt.Sprintf("Declined trade with %s", partner.Username))
	return nil
}

// SendTradeRequest offers offered in exchange for requested, recording the trade
// in both the sender's and the requested card owner's documents. Both cards must be
// held by their owners; the stored copies are what gets recorded.
func (s *TradeService) SendTradeRequest(ctx context.Context, userID string, offered, requested models.Card) bool {
	if err := s.sendTrade(ctx, userID, offered, requested); err != nil {
		logrus.WithFields(logrus.Fields{
			"userID":        userID,
			"offeredCard":   offered.ID,
			"requestedCard": requested.ID,
			"error":         err,
		}).Error("Error sending trade request")
		return false
	}
	return true
}

func (s *TradeService) sendTrade(ctx context.Context, userID string, offered, requested models.Card) error {
	if err := checkCardIDs(models.TradeRequest{OfferedCard: offered, RequestedCard: requested}); err != nil {
		return err
	}
	switch offered.Owner {
	case "":
		offered.Owner = userID
	case userID:
	default:
		return apperrors.Validation("offered card belongs to another user")
	}
	partnerID := requested.Owner
	if partnerID == "" || partnerID == userID {
		return apperrors.Validation("requested card must belong to another user")
	}

	me, partner, err := fetchPair(ctx, s.store, userID, partnerID)
	if err != nil {
		return err
	}

	storedOffered, ok := findCard(me.Cards, offered.ID)
	if !ok {
		return apperrors.NotFound("offered card not found")
	}
	storedRequested, ok := findCard(partner.Cards, requested.ID)
	if !ok {
		return apperrors.NotFound("requested card not found")
	}
	offered = storedOffered.WithOwner(me.ID)
	requested = storedRequested.WithOwner(partner.ID)

	trade := models.TradeRequest{OfferedCard: offered, RequestedCard: requested}
	me.Trading = append(me.Trading, trade)
	partner.Trading = append(partner.Trading, trade)

	if err := writePair(ctx, s.store, me, partner); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"userID": userID, "partnerID": partnerID}).Info("Trade request sent")
	s.activity.record(ctx, userID, models.ActivityTradeSent, offered.ID,
		fmt.Sprintf("Offered %s to %s for %s", offered.CommonName, partner.Username, requested.CommonName))
	return nil
}

func checkCardIDs(trade models.TradeRequest) error {
	if trade.OfferedCard.ID == "" || trade.RequestedCard.ID == "" {
		return apperrors.Validation("both cards need an id")
	}
	return nil
}

func findCard(cards []models.Card, id string) (models.Card, bool) {
	i := slices.IndexFunc(cards, func(c models.Card) bool { return c.ID == id })
	if i < 0 {
		return models.Card{}, false
	}
	return cards[i], true
}
