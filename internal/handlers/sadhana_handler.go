package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/services"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/logger"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/middleware"
)

type SadhanaHandler struct {
	Service *services.SadhanaService
}

func NewSadhanaHandler(service *services.SadhanaService) *SadhanaHandler {
	return &SadhanaHandler{Service: service}
}

// PUT /sadhana/today
func (h *SadhanaHandler) LogTodayHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var rec models.ActivityRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		logger.Log.WithError(err).Warn("Invalid sadhana payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	saved, err := h.Service.LogToday(r.Context(), userID, &rec)
	if err != nil {
		logger.Log.Errorf("Failed to log sadhana: %v", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}

// GET /sadhana/history?days=30
func (h *SadhanaHandler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	days, _ := strconv.ParseInt(r.URL.Query().Get("days"), 10, 64)

	records, err := h.Service.GetHistory(r.Context(), userID, days)
	if err != nil {
		logger.Log.Errorf("Failed to fetch sadhana history: %v", err)
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
