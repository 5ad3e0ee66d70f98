package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/config"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/database"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/engine"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/handlers"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/jobs"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/repository"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/scheduler"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/services"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/logger"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/middleware"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	eventRepo := repository.NewEventRepository(db)
	postRepo := repository.NewPostRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	sadhanaService := services.NewSadhanaService(activityRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, eventRepo)
	eventService := services.NewEventService(eventRepo, notificationService)

	builder := engine.NewBuilder(nil, nil, cfg.UrgencyThreshold)
	dashboardService := services.NewDashboardService(activityRepo, eventRepo, postRepo, userRepo, chatRepo, notificationService, builder)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	sadhanaHandler := handlers.NewSadhanaHandler(sadhanaService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	eventHandler := handlers.NewEventHandler(eventService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")

	// Everything below requires a valid token
	protected := router.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protected.Use(middleware.UpdateLastActiveMiddleware(userService))

	protected.HandleFunc("/dashboard", dashboardHandler.GetDashboardHandler).Methods("GET")
	protected.HandleFunc("/feed", dashboardHandler.GetFeedHandler).Methods("GET")
	protected.HandleFunc("/navigation", userHandler.NavigationHandler).Methods("GET")
	protected.HandleFunc("/users/{id}", userHandler.GetUserHandler).Methods("GET")

	protected.HandleFunc("/sadhana/today", sadhanaHandler.LogTodayHandler).Methods("PUT")
	protected.HandleFunc("/sadhana/history", sadhanaHandler.GetHistoryHandler).Methods("GET")

	protected.HandleFunc("/notifications", notificationHandler.GetNotificationsHandler).Methods("GET")
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")
	protected.HandleFunc("/notifications", notificationHandler.ClearAllHandler).Methods("DELETE")

	protected.HandleFunc("/events", eventHandler.GetUpcomingEventsHandler).Methods("GET")
	protected.HandleFunc("/events/{id}/rsvp", eventHandler.RSVPHandler).Methods("POST")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Periodic work: reminder tick, achievement scan, expiry sweep
	achievementNotifier := jobs.NewAchievementNotifier(activityRepo, userRepo, notificationService)
	scheduler.StartNotificationCronJobs(notificationService, achievementNotifier, cfg.RefreshInterval, cfg.UrgencyThreshold)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
