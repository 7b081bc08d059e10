package models

import (
	"slices"
)

// FriendshipStatus describes the relationship between the viewer and another user.
type FriendshipStatus string

const (
	StatusFriend          FriendshipStatus = "friend"
	StatusPendingOutgoing FriendshipStatus = "pending_outgoing"
	StatusPendingIncoming FriendshipStatus = "pending_incoming"
	StatusNone            FriendshipStatus = "none"
)

// Request directions relative to the viewer.
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// Friend is the display projection of a friend's document.
type Friend struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image"`
	GalleryURL   string `json:"gallery_url"`
}

// FriendRequest joins a PendingFriend with the other party's document.
type FriendRequest struct {
	ID           string `json:"id"`
	SenderID     string `json:"sender_id"`
	RecipientID  string `json:"recipient_id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image"`
	Sending      string `json:"sending"`
	Receiving    string `json:"receiving"`
	Direction    string `json:"direction"`
}

// SocialOverview holds everything the social page shows at once.
type SocialOverview struct {
	Friends        []Friend        `json:"friends"`
	FriendRequests []FriendRequest `json:"friend_requests"`
	TradeRequests  []TradeRequest  `json:"trade_requests"`
}

// GalleryURL is the frontend path of a user's card gallery.
func GalleryURL(userID string) string {
	return "/gallery?userid=" + userID
}

// NewFriend projects a user document for display.
func NewFriend(doc *UserDocument) Friend {
	return Friend{
		ID:           doc.ID,
		Username:     doc.Username,
		ProfileImage: doc.ProfileImage(),
		GalleryURL:   GalleryURL(doc.ID),
	}
}

// NewFriendRequest builds the view of req as seen by viewerID, where other is the
// counterpart's document.
func NewFriendRequest(req PendingFriend, viewerID string, other *UserDocument) FriendRequest {
	direction := DirectionIncoming
	if req.Sending == viewerID {
		direction = DirectionOutgoing
	}
	return FriendRequest{
		ID:           req.Key(),
		SenderID:     req.Sending,
		RecipientID:  req.Receiving,
		Username:     other.Username,
		ProfileImage: other.ProfileImage(),
		Sending:      req.Sending,
		Receiving:    req.Receiving,
		Direction:    direction,
	}
}

// Counterpart returns the id on the other end of req from viewerID.
func Counterpart(req PendingFriend, viewerID string) string {
	if req.Sending == viewerID {
		return req.Receiving
	}
	return req.Sending
}

// FriendshipStatusOf derives how doc's owner relates to userID. The first matching
// case wins: friend, then outgoing request, then incoming request.
func FriendshipStatusOf(doc *UserDocument, userID string) FriendshipStatus {
	if doc.Friends.Contains(userID) {
		return StatusFriend
	}
	if slices.ContainsFunc(doc.PendingFriends, func(p PendingFriend) bool { return p.Receiving == userID }) {
		return StatusPendingOutgoing
	}
	if slices.ContainsFunc(doc.PendingFriends, func(p PendingFriend) bool { return p.Sending == userID }) {
		return StatusPendingIncoming
	}
	return StatusNone
}
