package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/naturecards/social/internal/gallery"
	"github.com/naturecards/social/internal/models"
	"github.com/naturecards/social/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FriendService reconciles friend relationships stored in user documents.
//
// Every mutation reads both documents, edits local copies and writes both back.
// The two writes are independent: if one fails the other may still land, and two
// concurrent mutations of the same pair can overwrite each other.
type FriendService struct {
	store       gallery.Store
	activity    *ActivityService
	concurrency int
}

// NewFriendService creates a new FriendService. activity may be nil.
func NewFriendService(store gallery.Store, activity *ActivityService, concurrency int) *FriendService {
	return &FriendService{
		store:       store,
		activity:    activity,
		concurrency: concurrency,
	}
}

// GetFriends loads the user's document and derives their friend list.
func (s *FriendService) GetFriends(ctx context.Context, userID string) ([]models.Friend, error) {
	doc, err := gallery.FetchCurrentUser(ctx, s.store, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return s.DeriveFriendList(ctx, doc), nil
}

// DeriveFriendList fetches every friend's document and projects it for display.
// Friends that cannot be fetched are logged and left out.
func (s *FriendService) DeriveFriendList(ctx context.Context, doc *models.UserDocument) []models.Friend {
	ids := doc.Friends
	return collect(ctx, s.concurrency, len(ids), func(ctx context.Context, i int) (models.Friend, error) {
		friend, err := s.store.FetchUser(ctx, ids[i])
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"userID":   doc.ID,
				"friendID": ids[i],
				"error":    err,
			}).Warn("Dropping friend that could not be fetched")
			return models.Friend{}, err
		}
		return models.NewFriend(friend), nil
	})
}

// GetFriendRequests loads the user's document and derives their pending requests.
func (s *FriendService) GetFriendRequests(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	doc, err := gallery.FetchCurrentUser(ctx, s.store, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return s.DeriveFriendRequestList(ctx, doc), nil
}

// DeriveFriendRequestList joins each well-formed pending request with the other
// party's document. Malformed entries and counterparts that cannot be fetched are
// logged and left out.
func (s *FriendService) DeriveFriendRequestList(ctx context.Context, doc *models.UserDocument) []models.FriendRequest {
	pending := make([]models.PendingFriend, 0, len(doc.PendingFriends))
	for _, req := range doc.PendingFriends {
		if !req.Valid() {
			logrus.WithFields(logrus.Fields{
				"userID":    doc.ID,
				"sending":   req.Sending,
				"receiving": req.Receiving,
			}).Warn("Skipping malformed friend request")
			continue
		}
		pending = append(pending, req)
	}

	return collect(ctx, s.concurrency, len(pending), func(ctx context.Context, i int) (models.FriendRequest, error) {
		req := pending[i]
		otherID := models.Counterpart(req, doc.ID)
		other, err := s.store.FetchUser(ctx, otherID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"userID":  doc.ID,
				"otherID": otherID,
				"error":   err,
			}).Warn("Dropping friend request whose user could not be fetched")
			return models.FriendRequest{}, err
		}
		return models.NewFriendRequest(req, doc.ID, other), nil
	})
}

// AcceptFriendRequest accepts the request friendID sent to userID. Both users end up
// in each other's friends list and every pending request between them is removed.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, userID, friendID string) error {
	if friendID == "" || friendID == userID {
		return apperrors.Validation("invalid friend id")
	}

	me, other, err := fetchPair(ctx, s.store, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	if !slices.ContainsFunc(me.PendingFriends, func(p models.PendingFriend) bool { return p.Sending == friendID }) {
		return apperrors.NotFound("friend request not found")
	}

	me.AddFriend(friendID)
	other.AddFriend(userID)
	me.PendingFriends = dropBetween(me.PendingFriends, userID, friendID)
	other.PendingFriends = dropBetween(other.PendingFriends, userID, friendID)

	if err := writePair(ctx, s.store, me, other); err != nil {
		logrus.WithFields(logrus.Fields{
			"userID":   userID,
			"friendID": friendID,
			"error":    err,
		}).Error("Failed to accept friend request")
		return fmt.Errorf("failed to accept friend request: %w", err)
	}

	logrus.WithFields(logrus.Fields{"userID": userID, "friendID": friendID}).Info("Friend request accepted")
	s.activity.record(ctx, userID, models.ActivityFriendRequestAccepted, friendID,
		fmt.Sprintf("You are now friends with %s", other.Username))
	return nil
}

// DeclineFriendRequest removes the request friendID sent to userID from both users.
func (s *FriendService) DeclineFriendRequest(ctx context.Context, userID, friendID string) error {
	if friendID == "" || friendID == userID {
		return apperrors.Validation("invalid friend id")
	}

	me, other, err := fetchPair(ctx, s.store, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	me.PendingFriends = slices.DeleteFunc(me.PendingFriends, func(p models.PendingFriend) bool {
		return p.Sending == friendID
	})
	other.PendingFriends = slices.DeleteFunc(other.PendingFriends, func(p models.PendingFriend) bool {
		return p.Sending == friendID && p.Receiving == userID
	})

	if err := writePair(ctx, s.store, me, other); err != nil {
		logrus.WithFields(logrus.Fields{
			"userID":   userID,
			"friendID": friendID,
			"error":    err,
		}).Error("Failed to decline friend request")
		return fmt.Errorf("failed to decline friend request: %w", err)
	}

	logrus.WithFields(logrus.Fields{"userID": userID, "friendID": friendID}).Info("Friend request declined")
	s.activity.record(ctx, userID, models.ActivityFriendRequestDeclined, friendID,
		fmt.Sprintf("Declined friend request from %s", other.Username))
	return nil
}

// SendFriendRequest sends a friend request from userID to the user called username.
// It fails with CONFLICT when the two are already friends or a request between them
// exists in either direction.
func (s *FriendService) SendFriendRequest(ctx context.Context, userID, username string) (*models.FriendRequest, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.Validation("username is required")
	}

	var me, target *models.UserDocument
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := gallery.FetchCurrentUser(gctx, s.store, userID)
		me = doc
		return err
	})
	g.Go(func() error {
		doc, err := s.store.FetchUserByUsername(gctx, username)
		target = doc
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	if target.ID == me.ID {
		return nil, apperrors.Validation("cannot send a friend request to yourself")
	}
	if slices.ContainsFunc(target.PendingFriends, func(p models.PendingFriend) bool {
		return p.Sending == me.ID || p.Receiving == me.ID
	}) || me.HasPendingWith(target.ID) {
		return nil, apperrors.Conflict("friend request already exists")
	}
	if target.Friends.Contains(me.ID) || me.Friends.Contains(target.ID) {
		return nil, apperrors.Conflict("already friends with this user")
	}

	req := models.PendingFriend{Sending: me.ID, Receiving: target.ID}
	me.PendingFriends = append(me.PendingFriends, req)
	target.PendingFriends = append(target.PendingFriends, req)

	if err := writePair(ctx, s.store, me, target); err != nil {
		logrus.WithFields(logrus.Fields{
			"userID":   me.ID,
			"targetID": target.ID,
			"error":    err,
		}).Error("Failed to send friend request")
		return nil, fmt.Errorf("failed to send friend request: %w", err)
	}

	logrus.WithFields(logrus.Fields{"userID": me.ID, "targetID": target.ID}).Info("Friend request sent")
	s.activity.record(ctx, me.ID, models.ActivityFriendRequestSent, target.ID,
		fmt.Sprintf("Sent a friend request to %s", target.Username))

	view := models.NewFriendRequest(req, me.ID, target)
	return &view, nil
}

// CheckFriendshipStatus reports how userID relates to otherID.
func (s *FriendService) CheckFriendshipStatus(ctx context.Context, userID, otherID string) (models.FriendshipStatus, error) {
	doc, err := gallery.FetchCurrentUser(ctx, s.store, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	return models.FriendshipStatusOf(doc, otherID), nil
}

func dropBetween(list []models.PendingFriend, a, b string) []models.PendingFriend {
	return slices.DeleteFunc(list, func(p models.PendingFriend) bool { return p.Involves(a, b) })
}
