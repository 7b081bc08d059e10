package repository

import (
	"context"
	"errors"

	"github.com/naturecards/social/internal/models"
	"github.com/naturecards/social/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles database operations on whole user documents.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// idFilter matches the stored _id, which is an ObjectID for documents created by
// the NatureCards backend and a plain string otherwise.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.UserDocument, error) {
	return r.findOne(ctx, idFilter(id), logrus.Fields{"userID": id})
}

// GetUserByUsername retrieves a user by username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.UserDocument, error) {
	return r.findOne(ctx, bson.M{"username": username}, logrus.Fields{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, fields logrus.Fields) (*models.UserDocument, error) {
	var user models.UserDocument
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		logrus.WithFields(fields).Warn("User not found")
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		logrus.WithFields(fields).WithError(err).Error("Failed to find user")
		return nil, apperrors.Network(err, "failed to find user")
	}

	user.Normalize()
	return &user, nil
}

// UpdateUser overwrites every field of the stored document except its _id.
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.UserDocument) error {
	doc := user.Clone()
	doc.Normalize()

	result, err := r.collection.UpdateOne(ctx, idFilter(doc.ID), replaceFields(doc))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": doc.ID,
			"error":  err,
		}).Error("Failed to update user")
		return apperrors.Network(err, "failed to update user")
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("user not found")
	}

	logrus.WithField("userID", doc.ID).Info("User updated successfully")
	return nil
}

// replaceFields builds an update that sets every stored field of doc and drops
// a profile picture the document no longer has.
func replaceFields(doc *models.UserDocument) bson.M {
	set := bson.M{
		"username":        doc.Username,
		"cards":           doc.Cards,
		"friends":         doc.Friends,
		"pending_friends": doc.PendingFriends,
		"trading":         doc.Trading,
	}
	update := bson.M{"$set": set}
	if doc.ProfilePicture != "" {
		set["profile_picture"] = doc.ProfilePicture
	} else {
		update["$unset"] = bson.M{"profile_picture": ""}
	}
	return update
}
