package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDocumentDecodesMixedFriendIDs(t *testing.T) {
	body := `{
		"_id": "u1",
		"username": "fern",
		"cards": [],
		"friends": ["u2", {"$oid": "65f1c0ffee0000000000abcd"}],
		"pending_friends": [{"sending": "u3", "receiving": "u1"}]
	}`

	var doc UserDocument
	require.NoError(t, json.Unmarshal([]byte(body), &doc))

	assert.Equal(t, IDList{"u2", "65f1c0ffee0000000000abcd"}, doc.Friends)
	assert.Equal(t, DefaultProfileImage, doc.ProfileImage())
	assert.Nil(t, doc.Trading)

	out, err := json.Marshal(doc.Friends)
	require.NoError(t, err)
	assert.JSONEq(t, `["u2", "65f1c0ffee0000000000abcd"]`, string(out))
}

func TestIDListRejectsGarbage(t *testing.T) {
	var ids IDList
	assert.Error(t, json.Unmarshal([]byte(`[42]`), &ids))
	assert.Error(t, json.Unmarshal([]byte(`[{"id": "x"}]`), &ids))
	assert.Error(t, json.Unmarshal([]byte(`"u1"`), &ids))

	require.NoError(t, json.Unmarshal([]byte(`null`), &ids))
	assert.Nil(t, ids)
}

func TestCloneDoesNotAlias(t *testing.T) {
	doc := &UserDocument{
		ID:             "u1",
		Friends:        IDList{"u2"},
		PendingFriends: []PendingFriend{{Sending: "u3", Receiving: "u1"}},
		Cards:          []Card{{ID: "c1", Owner: "u1"}},
	}

	c := doc.Clone()
	c.Friends[0] = "changed"
	c.Cards[0].Owner = "changed"
	c.PendingFriends = c.PendingFriends[:0]
	c.AddFriend("u4")

	assert.Equal(t, IDList{"u2"}, doc.Friends)
	assert.Equal(t, "u1", doc.Cards[0].Owner)
	assert.Len(t, doc.PendingFriends, 1)
}

func TestAddFriendSkipsDuplicates(t *testing.T) {
	doc := &UserDocument{ID: "u1"}
	doc.AddFriend("u2")
	doc.AddFriend("u2")
	assert.Equal(t, IDList{"u2"}, doc.Friends)
}

func TestPendingFriendHelpers(t *testing.T) {
	p := PendingFriend{Sending: "a", Receiving: "b"}
	assert.True(t, p.Valid())
	assert.True(t, p.Involves("a", "b"))
	assert.True(t, p.Involves("b", "a"))
	assert.False(t, p.Involves("a", "c"))
	assert.Equal(t, "a:b", p.Key())

	assert.False(t, PendingFriend{Sending: "a"}.Valid())
	assert.False(t, PendingFriend{Receiving: "b"}.Valid())

	doc := &UserDocument{ID: "b", PendingFriends: []PendingFriend{p}}
	assert.True(t, doc.HasPendingWith("a"))
	assert.False(t, doc.HasPendingWith("c"))
}
