package gallery

import (
	"context"

	"github.com/naturecards/social/internal/models"
	"github.com/naturecards/social/internal/repository"
)

// MongoStore reads and writes user documents straight from the users collection.
type MongoStore struct {
	repo *repository.UserRepository
}

func NewMongoStore(repo *repository.UserRepository) *MongoStore {
	return &MongoStore{repo: repo}
}

func (s *MongoStore) FetchUser(ctx context.Context, userID string) (*models.UserDocument, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *MongoStore) FetchUserByUsername(ctx context.Context, username string) (*models.UserDocument, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

func (s *MongoStore) WriteUser(ctx context.Context, doc *models.UserDocument) error {
	if err := checkWritable(doc); err != nil {
		return err
	}
	return s.repo.UpdateUser(ctx, doc)
}
