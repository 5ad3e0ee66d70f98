package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/engine"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/repository"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/logger"
)

const (
	historyWindow = 30 // days of activity fed to streak/achievement rules
	eventLimit    = 10
	feedLimit     = 20
)

// DashboardService assembles one RawSnapshot per request and hands it to the
// engine. It never builds from absent data: a failed user fetch fails the
// call, while optional collections degrade to empty.
type DashboardService struct {
	activityRepo *repository.ActivityRepository
	eventRepo    *repository.EventRepository
	postRepo     *repository.PostRepository
	userRepo     *repository.UserRepository
	chatRepo     *repository.ChatRepository
	notifService *NotificationService
	builder      *engine.Builder
}

func NewDashboardService(
	activityRepo *repository.ActivityRepository,
	eventRepo *repository.EventRepository,
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
	chatRepo *repository.ChatRepository,
	notifService *NotificationService,
	builder *engine.Builder,
) *DashboardService {
	return &DashboardService{
		activityRepo: activityRepo,
		eventRepo:    eventRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		chatRepo:     chatRepo,
		notifService: notifService,
		builder:      builder,
	}
}

// BuildDashboard fetches a fresh snapshot and derives the view model for one
// user at the given instant. now is passed through so countdowns are always
// re-evaluated against current wall-clock time.
func (s *DashboardService) BuildDashboard(ctx context.Context, userID primitive.ObjectID, now time.Time) (*engine.ViewModel, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Log.WithField("user_id", userID.Hex()).WithError(err).Error("Failed to load user for dashboard")
		return nil, fmt.Errorf("failed to load user: %v", err)
	}

	raw := engine.RawSnapshot{User: user}

	history, err := s.activityRepo.GetRecentByUser(ctx, userID, historyWindow)
	if err != nil {
		logger.Log.WithError(err).Warn("Dashboard proceeding without activity history")
	} else {
		raw.History = history
		if len(history) > 0 && sameDay(history[0].Date, now) {
			raw.Today = &history[0]
		}
	}

	if events, err := s.eventRepo.GetUpcoming(ctx, now, eventLimit); err != nil {
		logger.Log.WithError(err).Warn("Dashboard proceeding without events")
	} else {
		raw.Events = events
	}

	if posts, err := s.postRepo.GetRecent(ctx, feedLimit); err != nil {
		logger.Log.WithError(err).Warn("Dashboard proceeding without community feed")
	} else {
		raw.Feed = posts
	}

	if inb, err := s.notifService.InboxFor(ctx, userID); err != nil {
		logger.Log.WithError(err).Warn("Dashboard proceeding without notifications")
	} else {
		raw.Notifications = inb.Notifications()
	}

	raw.Chat = s.chatStatus(ctx, user)

	vm := s.builder.Build(raw, now)
	return &vm, nil
}

// GetFeed passes the community feed through for standalone display.
func (s *DashboardService) GetFeed(ctx context.Context, limit int64) ([]models.CommunityPost, error) {
	if limit <= 0 {
		limit = feedLimit
	}
	return s.postRepo.GetRecent(ctx, limit)
}

// chatStatus derives the counsellor-chat summary. Any failure degrades to
// nil; chat status is decoration, not a reason to fail the dashboard.
func (s *DashboardService) chatStatus(ctx context.Context, user *models.User) *models.ChatStatus {
	if user.CounsellorID.IsZero() {
		return nil
	}

	status := &models.ChatStatus{CounsellorID: user.CounsellorID}

	if counsellor, err := s.userRepo.GetUserByID(ctx, user.CounsellorID); err == nil {
		status.CounsellorName = counsellor.Name
	}

	unseen, err := s.chatRepo.CountUnseen(ctx, user.ID)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to count unseen messages")
		return status
	}
	status.UnseenMessages = unseen

	if msg, err := s.chatRepo.GetLatestMessage(ctx, user.ID, user.CounsellorID); err == nil {
		status.LastMessageAt = msg.CreatedAt
	}

	return status
}

// sameDay compares calendar days in UTC, the timezone activity dates are
// stored in.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
