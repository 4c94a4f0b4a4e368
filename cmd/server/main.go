package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-admin/internal/api/routes"
	"fleet-admin/internal/config"
	"fleet-admin/internal/engine"
	"fleet-admin/internal/repository"
	"fleet-admin/internal/services"
	"fleet-admin/internal/store"
	"fleet-admin/pkg/cleanup"
	"fleet-admin/pkg/database"
	"fleet-admin/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Disconnect(db.Client())

	// Initialize Redis client
	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	healthStatus := redisClient.HealthCheck()
	if healthStatus.IsConnected {
		log.Printf("Redis connected successfully at %s", healthStatus.ConnectionInfo)
	} else {
		log.Printf("Redis connection failed: %s (will retry automatically)", healthStatus.Error)
	}

	// Repositories back the in-memory store
	truckRepo := repository.NewTruckRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	tripRepo := repository.NewTripRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	if err := truckRepo.CreateIndexes(); err != nil {
		log.Printf("Failed to create truck indexes: %v", err)
	}
	if err := driverRepo.CreateIndexes(); err != nil {
		log.Printf("Failed to create driver indexes: %v", err)
	}
	if err := tripRepo.CreateIndexes(); err != nil {
		log.Printf("Failed to create trip indexes: %v", err)
	}
	if err := notificationRepo.CreateIndexes(); err != nil {
		log.Printf("Failed to create notification indexes: %v", err)
	}

	// Entity store, hydrated from MongoDB. Hydration failure falls back
	// to an empty fleet rather than aborting startup.
	fleetStore := store.New()
	fleetStore.SetPersister(repository.NewStorePersister(truckRepo, driverRepo, tripRepo))
	if fleetStore.Hydrate() {
		log.Println("Fleet store hydrated from database")
	} else {
		log.Println("Fleet store starting empty, hydration failed")
	}

	evaluator := engine.NewEvaluator(fleetStore)

	// Notification sink, with Redis pub/sub fan-out when available
	notificationService := services.NewNotificationService(notificationRepo)
	notificationService.SetPublisher(redisClient)

	// Cooldown state lives in Redis when it is up, memory otherwise
	var cooldowns engine.CooldownStore
	if redisClient.IsConnected() {
		cooldowns = engine.NewRedisCooldownStore(redisClient.GetClient())
	} else {
		log.Println("Using in-memory cooldown store")
		cooldowns = engine.NewMemoryCooldownStore()
	}

	alertEngine := engine.New(fleetStore, cooldowns, notificationService, cfg.Engine)
	fleetStore.SetTruckChangeHook(alertEngine.TruckUpdated)
	alertEngine.Start()
	defer alertEngine.Stop()

	truckService := services.NewTruckService(fleetStore, evaluator)
	driverService := services.NewDriverService(fleetStore, evaluator)
	tripService := services.NewTripService(fleetStore)

	// Prune read notifications daily after a 30 day retention window
	cleanupService := cleanup.NewCleanupService(notificationService, 24*time.Hour, 30)
	go cleanupService.Start()
	defer cleanupService.Stop()

	// Setup Gin router
	router := gin.Default()

	// CORS middleware
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}

	// Handle wildcard origin for development
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false // Cannot use credentials with AllowAllOrigins
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}

	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Deps{
		DB:                  db,
		RedisClient:         redisClient,
		TruckService:        truckService,
		DriverService:       driverService,
		TripService:         tripService,
		NotificationService: notificationService,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	// Shut down cleanly so the engine and cleanup loops stop
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
