package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendshipStatusOf(t *testing.T) {
	tests := []struct {
		name string
		doc  *UserDocument
		want FriendshipStatus
	}{
		{
			name: "friend",
			doc:  &UserDocument{ID: "a", Friends: IDList{"b"}},
			want: StatusFriend,
		},
		{
			name: "outgoing",
			doc:  &UserDocument{ID: "a", PendingFriends: []PendingFriend{{Sending: "a", Receiving: "b"}}},
			want: StatusPendingOutgoing,
		},
		{
			name: "incoming",
			doc:  &UserDocument{ID: "a", PendingFriends: []PendingFriend{{Sending: "b", Receiving: "a"}}},
			want: StatusPendingIncoming,
		},
		{
			name: "friend wins over pending",
			doc: &UserDocument{
				ID:             "a",
				Friends:        IDList{"b"},
				PendingFriends: []PendingFriend{{Sending: "b", Receiving: "a"}},
			},
			want: StatusFriend,
		},
		{
			name: "outgoing wins over incoming",
			doc: &UserDocument{
				ID: "a",
				PendingFriends: []PendingFriend{
					{Sending: "b", Receiving: "a"},
					{Sending: "a", Receiving: "b"},
				},
			},
			want: StatusPendingOutgoing,
		},
		{
			name: "none",
			doc:  &UserDocument{ID: "a", Friends: IDList{"c"}},
			want: StatusNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FriendshipStatusOf(tt.doc, "b"))
		})
	}
}

func TestNewFriendRequestDirection(t *testing.T) {
	req := PendingFriend{Sending: "a", Receiving: "b"}

	fromB := NewFriendRequest(req, "b", &UserDocument{ID: "a", Username: "alder"})
	assert.Equal(t, "a:b", fromB.ID)
	assert.Equal(t, "a", fromB.SenderID)
	assert.Equal(t, "b", fromB.RecipientID)
	assert.Equal(t, "alder", fromB.Username)
	assert.Equal(t, DefaultProfileImage, fromB.ProfileImage)
	assert.Equal(t, DirectionIncoming, fromB.Direction)

	fromA := NewFriendRequest(req, "a", &UserDocument{ID: "b", Username: "birch", ProfilePicture: "/b.png"})
	assert.Equal(t, DirectionOutgoing, fromA.Direction)
	assert.Equal(t, "/b.png", fromA.ProfileImage)

	assert.Equal(t, "b", Counterpart(req, "a"))
	assert.Equal(t, "a", Counterpart(req, "b"))
}

func TestNewFriend(t *testing.T) {
	f := NewFriend(&UserDocument{ID: "u9", Username: "moss"})
	assert.Equal(t, Friend{
		ID:           "u9",
		Username:     "moss",
		ProfileImage: DefaultProfileImage,
		GalleryURL:   "/gallery?userid=u9",
	}, f)
}

func TestTradeRequestMatching(t *testing.T) {
	tr := TradeRequest{OfferedCard: Card{ID: "o1"}, RequestedCard: Card{ID: "r1"}}

	assert.True(t, tr.Matches(TradeRequest{OfferedCard: Card{ID: "o1"}, RequestedCard: Card{ID: "r1"}}))
	assert.False(t, tr.Matches(TradeRequest{OfferedCard: Card{ID: "o1"}, RequestedCard: Card{ID: "r2"}}))
	assert.True(t, tr.SameOffer(TradeRequest{OfferedCard: Card{ID: "o1"}, RequestedCard: Card{ID: "r2"}}))

	c := Card{ID: "o1", Owner: "a"}
	moved := c.WithOwner("b")
	assert.Equal(t, "b", moved.Owner)
	assert.Equal(t, "a", c.Owner)
}
