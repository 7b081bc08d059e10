package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity types recorded after a successful social mutation.
const (
	ActivityFriendRequestSent     = "friend_request_sent"
	ActivityFriendRequestAccepted = "friend_request_accepted"
	ActivityFriendRequestDeclined = "friend_request_declined"
	ActivityTradeSent             = "trade_sent"
	ActivityTradeAccepted         = "trade_accepted"
	ActivityTradeDeclined         = "trade_declined"
)

type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Type      string             `bson:"type" json:"type"`           // e.g. "friend_request_sent", "trade_accepted"
	TargetID  string             `bson:"target_id" json:"target_id"` // the other user or the offered card
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Message   string             `bson:"message" json:"message"`
}
