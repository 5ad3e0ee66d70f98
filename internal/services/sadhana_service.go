package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/repository"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/logger"
)

// SadhanaService handles the daily activity log. One record per user per
// calendar day; once the day has passed the record is closed and rejected
// for update.
type SadhanaService struct {
	repo *repository.ActivityRepository
}

func NewSadhanaService(repo *repository.ActivityRepository) *SadhanaService {
	return &SadhanaService{repo: repo}
}

// LogToday upserts the user's record for the current UTC day. Negative
// counters are normalized to zero rather than rejected; the dashboard must
// stay renderable on sloppy input.
func (s *SadhanaService) LogToday(ctx context.Context, userID primitive.ObjectID, rec *models.ActivityRecord) (*models.ActivityRecord, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if !rec.Date.IsZero() {
		recDay := rec.Date.UTC().Truncate(24 * time.Hour)
		if !recDay.Equal(today) {
			logger.Log.WithField("user_id", userID.Hex()).Warn("Attempt to modify a closed sadhana day")
			return nil, fmt.Errorf("sadhana records are closed once the day has passed")
		}
	}

	rec.UserID = userID
	rec.Date = today
	clampRecord(rec)

	if err := s.repo.UpsertRecord(ctx, rec); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", userID.Hex()).Info("Sadhana record logged")
	return rec, nil
}

// GetHistory returns the user's recent records, newest first.
func (s *SadhanaService) GetHistory(ctx context.Context, userID primitive.ObjectID, days int64) ([]models.ActivityRecord, error) {
	if days <= 0 {
		days = historyWindow
	}
	return s.repo.GetRecentByUser(ctx, userID, days)
}

func clampRecord(rec *models.ActivityRecord) {
	if rec.JapaRounds < 0 {
		rec.JapaRounds = 0
	}
	if rec.ReadingMinutes < 0 {
		rec.ReadingMinutes = 0
	}
	if rec.SevaHours < 0 {
		rec.SevaHours = 0
	}
}
