package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/naturecards/social/internal/config"
	"github.com/naturecards/social/internal/database"
	"github.com/naturecards/social/internal/gallery"
	"github.com/naturecards/social/internal/handlers"
	"github.com/naturecards/social/internal/repository"
	"github.com/naturecards/social/internal/services"
	"github.com/naturecards/social/pkg/logger"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load configuration from .env file and environment
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	// MongoDB is only needed for the mongo backend or the activity log
	var db *mongo.Database
	if cfg.GalleryBackend == config.BackendMongo || cfg.ActivityLog {
		db, err = database.ConnectDB(cfg)
		if err != nil {
			log.Fatalf("Database connection error: %v", err)
		}
	}

	// --- Gallery store ---
	var store gallery.Store
	switch cfg.GalleryBackend {
	case config.BackendMongo:
		store = gallery.NewMongoStore(repository.NewUserRepository(db))
	case config.BackendMemory:
		if cfg.SeedFile != "" {
			mem, err := gallery.LoadMemoryStore(cfg.SeedFile)
			if err != nil {
				log.Fatalf("Seed error: %v", err)
			}
			store = mem
		} else {
			store = gallery.NewMemoryStore()
		}
	default:
		store = gallery.NewClient(cfg.BackendURL, cfg.HTTPTimeout)
	}
	logger.Log.Infof("Using %s gallery backend", cfg.GalleryBackend)

	// --- Services ---
	var activityService *services.ActivityService
	if cfg.ActivityLog {
		activityRepo := repository.NewActivityRepository(db)
		if err := activityRepo.EnsureIndexes(context.Background()); err != nil {
			logger.Log.Warnf("Activity index setup failed: %v", err)
		}
		activityService = services.NewActivityService(activityRepo)
	}
	friendService := services.NewFriendService(store, activityService, cfg.FetchConcurrency)
	tradeService := services.NewTradeService(store, activityService)
	socialService := services.NewSocialService(store, friendService)

	// --- Handlers ---
	friendHandler := handlers.NewFriendHandler(friendService, socialService)
	tradeHandler := handlers.NewTradeHandler(tradeService)
	activityHandler := handlers.NewActivityHandler(activityService)

	router := handlers.NewRouter(cfg.JWTSecret, friendHandler, tradeHandler, activityHandler)

	// Without the NatureCards auth provider, local users get tokens from /dev/token
	if cfg.GalleryBackend == config.BackendMemory {
		handlers.NewTokenHandler(store, cfg.JWTSecret, cfg.TokenExpiry).Register(router)
		logger.Log.Warn("Development token endpoint enabled")
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
