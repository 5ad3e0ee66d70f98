package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/services"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/logger"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/middleware"
)

type EventHandler struct {
	Service *services.EventService
}

func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{Service: service}
}

// GET /events
func (h *EventHandler) GetUpcomingEventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.GetUpcomingEvents(r.Context(), time.Now(), 20)
	if err != nil {
		logger.Log.Errorf("Failed to fetch events: %v", err)
		http.Error(w, "Failed to get events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// POST /events/{id}/rsvp
func (h *EventHandler) RSVPHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	eventID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	if err := h.Service.RSVP(r.Context(), eventID, userID); err != nil {
		logger.Log.Errorf("Failed to RSVP: %v", err)
		http.Error(w, "Failed to RSVP", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "RSVP recorded"})
}
