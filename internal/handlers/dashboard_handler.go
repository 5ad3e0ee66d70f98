package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/engine"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/services"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/logger"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/middleware"
)

// DashboardHandler serves the composed view model. Durations are formatted
// into display strings here, at the presentation boundary; the engine only
// ever deals in time.Duration.
type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// eventView decorates an engine countdown with its display string.
type eventView struct {
	engine.EventCountdown
	RemainingDisplay string `json:"remaining_display"`
}

type dashboardResponse struct {
	engine.ViewModel
	Events []eventView `json:"events"`
}

// GET /dashboard
func (h *DashboardHandler) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	vm, err := h.Service.BuildDashboard(r.Context(), userID, time.Now())
	if err != nil {
		logger.Log.Errorf("Failed to build dashboard: %v", err)
		http.Error(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}

	resp := dashboardResponse{ViewModel: *vm, Events: make([]eventView, 0, len(vm.Events))}
	for _, ec := range vm.Events {
		resp.Events = append(resp.Events, eventView{
			EventCountdown:   ec,
			RemainingDisplay: formatRemaining(ec.Remaining),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GET /feed
func (h *DashboardHandler) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Service.GetFeed(r.Context(), 0)
	if err != nil {
		logger.Log.Errorf("Failed to fetch feed: %v", err)
		http.Error(w, "Failed to get feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// formatRemaining renders a duration as "2h 05m"; a finished countdown reads
// "now".
func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}
