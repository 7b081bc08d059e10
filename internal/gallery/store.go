// Package gallery reads and writes whole user documents. Nothing is cached and
// nothing is retried: every call goes to the backing store.
package gallery

import (
	"context"

	"github.com/naturecards/social/internal/models"
	"github.com/naturecards/social/pkg/apperrors"
)

// Store is the user document store.
//
// Fetches fail with a NOT_FOUND or NETWORK_ERROR APIError; writes fail with
// VALIDATION_ERROR or NETWORK_ERROR. Returned documents are owned by the caller.
type Store interface {
	FetchUser(ctx context.Context, userID string) (*models.UserDocument, error)
	FetchUserByUsername(ctx context.Context, username string) (*models.UserDocument, error)
	WriteUser(ctx context.Context, doc *models.UserDocument) error
}

// FetchCurrentUser loads the document of the signed-in user.
func FetchCurrentUser(ctx context.Context, store Store, userID string) (*models.UserDocument, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return store.FetchUser(ctx, userID)
}

func checkWritable(doc *models.UserDocument) error {
	if doc == nil || doc.ID == "" {
		return apperrors.Validation("user document has no id")
	}
	if doc.Username == "" {
		return apperrors.Validation("user document has no username")
	}
	return nil
}
