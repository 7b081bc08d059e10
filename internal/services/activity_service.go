package services

import (
	"context"
	"time"

	"github.com/naturecards/social/internal/models"
	"github.com/sirupsen/logrus"
)

// ActivityStore persists activity entries. Implemented by repository.ActivityRepository.
type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error
	GetUserActivities(ctx context.Context, userID string, limit int) ([]models.Activity, error)
}

type ActivityService struct {
	repo ActivityStore
}

func NewActivityService(repo ActivityStore) *ActivityService {
	return &ActivityService{repo: repo}
}

// LogActivity logs a user activity
func (s *ActivityService) LogActivity(ctx context.Context, userID, actionType, targetID, message string) error {
	activity := &models.Activity{
		UserID:    userID,
		Type:      actionType,
		TargetID:  targetID,
		Message:   message,
		Timestamp: time.Now(),
	}

	err := s.repo.CreateActivity(ctx, activity)
	if err != nil {
		logrus.WithError(err).Error("Failed to log activity in service")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"action_type": actionType,
	}).Info("Activity logged successfully")

	return nil
}

// GetRecentActivities returns recent actions performed by a user
func (s *ActivityService) GetRecentActivities(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}
	return s.repo.GetUserActivities(ctx, userID, limit)
}

// record logs an activity when the service is configured. Failures are already
// logged by LogActivity and never fail the mutation that triggered them.
func (s *ActivityService) record(ctx context.Context, userID, actionType, targetID, message string) {
	if s == nil {
		return
	}
	_ = s.LogActivity(ctx, userID, actionType, targetID, message)
}
