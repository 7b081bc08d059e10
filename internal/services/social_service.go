package services

import (
	"context"
	"fmt"

	"github.com/naturecards/social/internal/gallery"
	"github.com/naturecards/social/internal/models"
	"golang.org/x/sync/errgroup"
)

// SocialService assembles the social page: friends, friend requests and trades.
type SocialService struct {
	store   gallery.Store
	friends *FriendService
}

func NewSocialService(store gallery.Store, friends *FriendService) *SocialService {
	return &SocialService{store: store, friends: friends}
}

// Overview loads the user's document once and derives all three lists from it.
// The friend and request lists are fetched concurrently; each degrades on its own.
func (s *SocialService) Overview(ctx context.Context, userID string) (*models.SocialOverview, error) {
	doc, err := gallery.FetchCurrentUser(ctx, s.store, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	overview := &models.SocialOverview{
		TradeRequests: DeriveTradeRequestList(doc),
	}

	var g errgroup.Group
	g.Go(func() error {
		overview.Friends = s.friends.DeriveFriendList(ctx, doc)
		return nil
	})
	g.Go(func() error {
		overview.FriendRequests = s.friends.DeriveFriendRequestList(ctx, doc)
		return nil
	})
	_ = g.Wait()

	return overview, nil
}
