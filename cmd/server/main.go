package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/slice-of-life/backend/internal/cdn"
	"github.com/slice-of-life/backend/internal/config"
	"github.com/slice-of-life/backend/internal/database"
	"github.com/slice-of-life/backend/internal/service"
	"github.com/slice-of-life/backend/internal/transport/http/handlers"
	"github.com/slice-of-life/backend/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Database pool
	instance, err := database.NewInstance(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer instance.Close(ctx)
	log.Printf("Connected to database with %d pooled connections", cfg.DBConnections)

	// CDN
	spaces, err := cdn.NewSpaceIndex(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Services
	authService := service.NewAuthService(instance, cfg.SigningKey)
	sliceService := service.NewSliceService(instance, spaces)
	profileService := service.NewProfileService(instance, spaces)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	sliceHandler := handlers.NewSliceHandler(sliceService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// Auth middleware
	auth := middleware.Auth(cfg.SigningKey)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /api/v1/greeting", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"msg": "Welcome to the first endpoint of the slice of life api"}`))
	})
	mux.HandleFunc("GET /api/v1/slices/latest", sliceHandler.Latest)
	mux.HandleFunc("GET /api/v1/slices/{id}", sliceHandler.GetByID)
	mux.HandleFunc("GET /api/v1/slices/{id}/comments", sliceHandler.Comments)
	mux.HandleFunc("GET /api/v1/slices/{id}/reactions", sliceHandler.Reactions)
	mux.HandleFunc("POST /api/v1/users/account/new", authHandler.CreateAccount)
	mux.HandleFunc("POST /api/v1/users/authenticate", authHandler.Authenticate)

	// Protected
	mux.Handle("POST /api/v1/slices/new", auth(http.HandlerFunc(sliceHandler.Create)))
	mux.Handle("GET /api/v1/users/{handle}/profile", auth(http.HandlerFunc(profileHandler.Profile)))
	mux.Handle("GET /api/v1/users/{handle}/tasklist", auth(http.HandlerFunc(profileHandler.Tasklist)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
