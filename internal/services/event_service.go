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

// EventService wraps the read-only event schedule plus the one intent the
// dashboard forwards to it: RSVP.
type EventService struct {
	repo         *repository.EventRepository
	notifService *NotificationService
}

func NewEventService(repo *repository.EventRepository, notifService *NotificationService) *EventService {
	return &EventService{repo: repo, notifService: notifService}
}

func (s *EventService) GetUpcomingEvents(ctx context.Context, from time.Time, limit int64) ([]models.ServiceEvent, error) {
	return s.repo.GetUpcoming(ctx, from, limit)
}

// RSVP registers the user for an event and confirms with a notification.
func (s *EventService) RSVP(ctx context.Context, eventID, userID primitive.ObjectID) error {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		logger.Log.WithField("event_id", eventID.Hex()).WithError(err).Warn("RSVP for unknown event")
		return fmt.Errorf("event not found: %v", err)
	}

	if err := s.repo.AddParticipant(ctx, eventID, userID); err != nil {
		logger.Log.WithField("event_id", eventID.Hex()).WithError(err).Error("Failed to record RSVP")
		return err
	}

	message := fmt.Sprintf("You are confirmed for \"%s\" on %s.", event.Name, event.ScheduledAt.Format("Jan 2 15:04"))
	if err := s.notifService.Notify(ctx, userID, models.NotificationUpdate, message, &eventID); err != nil {
		logger.Log.WithError(err).Warn("Failed to send RSVP confirmation")
	}

	logger.Log.WithField("event_id", eventID.Hex()).WithField("user_id", userID.Hex()).Info("RSVP recorded")
	return nil
}
