package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// DefaultProfileImage is shown for users that never uploaded a profile picture.
const DefaultProfileImage = "/default-avatar.png"

// UserDocument is the backend's whole record for one user. It is always read and
// written as a unit; there is no version field.
type UserDocument struct {
	ID             string          `json:"_id" bson:"_id,omitempty"`
	Username       string          `json:"username" bson:"username"`
	ProfilePicture string          `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
	Cards          []Card          `json:"cards" bson:"cards"`
	Friends        IDList          `json:"friends" bson:"friends"`
	PendingFriends []PendingFriend `json:"pending_friends" bson:"pending_friends"`
	Trading        []TradeRequest  `json:"trading" bson:"trading"`
}

// PendingFriend is a directed, unconfirmed friend relationship.
type PendingFriend struct {
	Sending   string `json:"sending" bson:"sending"`
	Receiving string `json:"receiving" bson:"receiving"`
}

// Valid reports whether both ends of the request are set.
func (p PendingFriend) Valid() bool {
	return p.Sending != "" && p.Receiving != ""
}

// Involves reports whether the request links a and b in either direction.
func (p PendingFriend) Involves(a, b string) bool {
	return (p.Sending == a && p.Receiving == b) || (p.Sending == b && p.Receiving == a)
}

// Key identifies the relationship rather than either user.
func (p PendingFriend) Key() string {
	return p.Sending + ":" + p.Receiving
}

// IDList is a list of user ids. Entries may be stored as plain strings or as
// extended JSON object ids ({"$oid": "..."}); they always encode as strings.
type IDList []string

func (l *IDList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("friends must be an array: %v", err)
	}

	ids := make(IDList, 0, len(raw))
	for _, item := range raw {
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			ids = append(ids, id)
			continue
		}
		var oid struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(item, &oid); err != nil || oid.OID == "" {
			return fmt.Errorf("invalid user id %s", string(item))
		}
		ids = append(ids, oid.OID)
	}
	*l = ids
	return nil
}

// Contains reports whether id is in the list.
func (l IDList) Contains(id string) bool {
	return slices.Contains(l, id)
}

// Clone returns a deep copy so the caller can mutate it without touching the original.
func (u *UserDocument) Clone() *UserDocument {
	if u == nil {
		return nil
	}
	c := *u
	c.Cards = slices.Clone(u.Cards)
	c.Friends = slices.Clone(u.Friends)
	c.PendingFriends = slices.Clone(u.PendingFriends)
	c.Trading = slices.Clone(u.Trading)
	return &c
}

// Normalize replaces missing lists with empty ones so a written document never
// carries nulls.
func (u *UserDocument) Normalize() {
	if u.Cards == nil {
		u.Cards = []Card{}
	}
	if u.Friends == nil {
		u.Friends = IDList{}
	}
	if u.PendingFriends == nil {
		u.PendingFriends = []PendingFriend{}
	}
	if u.Trading == nil {
		u.Trading = []TradeRequest{}
	}
}

// ProfileImage returns the profile picture or the default avatar.
func (u *UserDocument) ProfileImage() string {
	if u.ProfilePicture == "" {
		return DefaultProfileImage
	}
	return u.ProfilePicture
}

// AddFriend appends id to the friend list unless it is already there.
func (u *UserDocument) AddFriend(id string) {
	if !u.Friends.Contains(id) {
		u.Friends = append(u.Friends, id)
	}
}

// HasPendingWith reports whether any pending request links the user and other.
func (u *UserDocument) HasPendingWith(other string) bool {
	return slices.ContainsFunc(u.PendingFriends, func(p PendingFriend) bool {
		return p.Involves(u.ID, other)
	})
}
