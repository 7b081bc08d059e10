package services

import (
	"context"
	"testing"

	"github.com/naturecards/social/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limitRecorder struct {
	limits []int
}

func (l *limitRecorder) CreateActivity(context.Context, *models.Activity) error { return nil }

func (l *limitRecorder) GetUserActivities(_ context.Context, _ string, limit int) ([]models.Activity, error) {
	l.limits = append(l.limits, limit)
	return []models.Activity{}, nil
}

func TestGetRecentActivitiesLimit(t *testing.T) {
	repo := &limitRecorder{}
	svc := NewActivityService(repo)

	for _, limit := range []int{-1, 0, 5, 100, 500} {
		_, err := svc.GetRecentActivities(context.Background(), "u1", limit)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{20, 20, 5, 100, 100}, repo.limits)
}

func TestLogActivityStampsTime(t *testing.T) {
	repo := &fakeActivityStore{}
	svc := NewActivityService(repo)

	require.NoError(t, svc.LogActivity(context.Background(), "u1", models.ActivityTradeSent, "c1", "Offered a card"))
	require.Len(t, repo.created, 1)
	assert.False(t, repo.created[0].Timestamp.IsZero())
	assert.Equal(t, "c1", repo.created[0].TargetID)
}
