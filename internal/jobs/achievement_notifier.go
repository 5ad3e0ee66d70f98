package jobs

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/engine"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/repository"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/services"
)

// AchievementNotifier announces newly unlocked achievements. Unlock state
// itself is never stored; this job just turns the derived state into a
// one-time notification per badge.
type AchievementNotifier struct {
	ActivityRepo        *repository.ActivityRepository
	UserRepo            *repository.UserRepository
	NotificationService *services.NotificationService

	rule engine.QualifyRule
	defs []engine.AchievementDef
}

// NewAchievementNotifier creates the job with the standard rules.
func NewAchievementNotifier(activityRepo *repository.ActivityRepository, userRepo *repository.UserRepository, notifService *services.NotificationService) *AchievementNotifier {
	return &AchievementNotifier{
		ActivityRepo:        activityRepo,
		UserRepo:            userRepo,
		NotificationService: notifService,
		rule:                engine.DefaultQualifyRule,
		defs:                engine.DefaultAchievements(),
	}
}

// RunDailyScan re-evaluates every user's achievements and notifies on each
// one currently unlocked. NotifyOnce keeps repeat runs silent.
func (j *AchievementNotifier) RunDailyScan(ctx context.Context) error {
	users, err := j.UserRepo.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %v", err)
	}

	for _, user := range users {
		history, err := j.ActivityRepo.GetRecentByUser(ctx, user.ID, 90)
		if err != nil {
			logrus.WithError(err).Warnf("Skipping achievement scan for user %s", user.ID.Hex())
			continue
		}

		streak := engine.ComputeStreak(history, j.rule)
		for _, a := range engine.EvaluateAchievements(history, streak, j.defs) {
			if !a.Achieved {
				continue
			}

			message := fmt.Sprintf("Achievement unlocked: %s!", a.Name)
			if err := j.NotificationService.NotifyOnce(ctx, user.ID, models.NotificationAchievement, message, nil); err != nil {
				logrus.WithError(err).Warnf("Failed to announce achievement %s", a.ID)
			}
		}
	}

	logrus.Info("Achievement scan completed")
	return nil
}
