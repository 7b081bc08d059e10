package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/naturecards/social/internal/models"
	"github.com/naturecards/social/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, routes func(r *mux.Router)) *Client {
	t.Helper()
	r := mux.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second)
}

func TestClientFetchUser(t *testing.T) {
	client := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/db/user/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"_id": "` + mux.Vars(r)["id"] + `",
				"username": "alder",
				"friends": [{"$oid": "u2"}, "u3"],
				"pending_friends": [{"sending": "u4", "receiving": "u1"}]
			}`))
		}).Methods("GET")
	})

	doc, err := client.FetchUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", doc.ID)
	assert.Equal(t, "alder", doc.Username)
	assert.Equal(t, models.IDList{"u2", "u3"}, doc.Friends)
	assert.Equal(t, []models.PendingFriend{{Sending: "u4", Receiving: "u1"}}, doc.PendingFriends)
	assert.NotNil(t, doc.Cards)
	assert.NotNil(t, doc.Trading)
}

func TestClientFetchUserByUsername(t *testing.T) {
	client := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/db/findUsername/{username}", func(w http.ResponseWriter, r *http.Request) {
			if mux.Vars(r)["username"] != "birch" {
				w.Write([]byte(`{}`))
				return
			}
			w.Write([]byte(`{"_id": "u2", "username": "birch"}`))
		}).Methods("GET")
	})

	doc, err := client.FetchUserByUsername(context.Background(), "birch")
	require.NoError(t, err)
	assert.Equal(t, "u2", doc.ID)

	_, err = client.FetchUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   *apperrors.APIError
	}{
		{"not found", http.StatusNotFound, apperrors.ErrNotFound},
		{"bad request", http.StatusBadRequest, apperrors.ErrValidation},
		{"unprocessable", http.StatusUnprocessableEntity, apperrors.ErrValidation},
		{"server error", http.StatusInternalServerError, apperrors.ErrNetwork},
		{"unavailable", http.StatusServiceUnavailable, apperrors.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newBackend(t, func(r *mux.Router) {
				r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "nope", tt.status)
				})
			})

			_, err := client.FetchUser(context.Background(), "u1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClientBadBodyIsNetworkError(t *testing.T) {
	client := newBackend(t, func(r *mux.Router) {
		r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		})
	})

	_, err := client.FetchUser(context.Background(), "u1")
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL, time.Second).FetchUser(context.Background(), "u1")
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestClientWriteUser(t *testing.T) {
	var got models.UserDocument
	var method string
	client := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/db/user/{id}", func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"acknowledged": true}`))
		}).Methods("PUT")
	})

	doc := &models.UserDocument{
		ID:       "u1",
		Username: "alder",
		Friends:  models.IDList{"u2"},
	}
	require.NoError(t, client.WriteUser(context.Background(), doc))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, models.IDList{"u2"}, got.Friends)
	assert.NotNil(t, got.PendingFriends)
}

func TestClientWriteUserRejectsIncompleteDocument(t *testing.T) {
	called := false
	client := newBackend(t, func(r *mux.Router) {
		r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})
	})

	err := client.WriteUser(context.Background(), &models.UserDocument{ID: "u1"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.False(t, called)
}
