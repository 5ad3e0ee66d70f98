package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/jobs"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/services"
)

// StartNotificationCronJobs wires the periodic work: the refresh tick that
// re-checks event urgency (the same cadence the dashboard refreshes its
// countdowns on), the daily achievement scan, and the daily
// expired-notification sweep.
func StartNotificationCronJobs(notificationService *services.NotificationService, achievementNotifier *jobs.AchievementNotifier, refreshInterval, urgencyWindow time.Duration) *cron.Cron {
	c := cron.New()

	// Service reminders on the refresh tick
	c.AddFunc(fmt.Sprintf("@every %s", refreshInterval), func() {
		err := notificationService.CheckServiceReminders(context.Background(), urgencyWindow)
		if err != nil {
			logrus.WithError(err).Error("CheckServiceReminders failed")
		}
	})

	// Achievement unlock announcements
	c.AddFunc("30 0 * * *", func() {
		err := achievementNotifier.RunDailyScan(context.Background())
		if err != nil {
			logrus.WithError(err).Error("Achievement scan failed")
		}
	})

	// Expired notification cleanup
	c.AddFunc("0 0 * * *", func() {
		err := notificationService.DeleteExpiredNotifications(context.Background())
		if err != nil {
			logrus.WithError(err).Error("DeleteExpiredNotifications failed")
		}
	})

	c.Start()
	return c
}
