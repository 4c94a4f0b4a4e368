package routes

import (
	"fleet-admin/internal/api/handlers"
	"fleet-admin/internal/api/middleware"
	"fleet-admin/internal/repository"
	"fleet-admin/internal/services"
	"fleet-admin/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Deps carries the shared components built in main. Fleet services
// wrap the in-memory store, so they cannot be constructed here from
// the database alone.
type Deps struct {
	DB                  *mongo.Database
	RedisClient         *redis.Client
	TruckService        *services.TruckService
	DriverService       *services.DriverService
	TripService         *services.TripService
	NotificationService *services.NotificationService
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	userRepo := repository.NewUserRepository(deps.DB)
	authService := services.NewAuthService(userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	truckHandler := handlers.NewTruckHandler(deps.TruckService)
	driverHandler := handlers.NewDriverHandler(deps.DriverService)
	tripHandler := handlers.NewTripHandler(deps.TripService)
	notificationHandler := handlers.NewNotificationHandler(deps.NotificationService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.RedisClient)

	router.GET("/health", healthHandler.HealthCheck)

	api := router.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		trucks := protected.Group("/trucks")
		{
			trucks.GET("", truckHandler.GetTrucks)
			trucks.POST("", truckHandler.CreateTruck)
			trucks.GET("/:id", truckHandler.GetTruck)
			trucks.PATCH("/:id", truckHandler.UpdateTruck)
			trucks.DELETE("/:id", truckHandler.DeleteTruck)
		}

		drivers := protected.Group("/drivers")
		{
			drivers.GET("", driverHandler.GetDrivers)
			drivers.POST("", driverHandler.CreateDriver)
			drivers.GET("/:id", driverHandler.GetDriver)
			drivers.PATCH("/:id", driverHandler.UpdateDriver)
			drivers.DELETE("/:id", driverHandler.DeleteDriver)
		}

		trips := protected.Group("/trips")
		{
			trips.GET("", tripHandler.GetTrips)
			trips.POST("", tripHandler.CreateTrip)
			trips.GET("/:id", tripHandler.GetTrip)
			trips.PATCH("/:id", tripHandler.UpdateTrip)
			trips.DELETE("/:id", tripHandler.DeleteTrip)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.POST("", notificationHandler.CreateNotification)
			notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.PATCH("/read-all", notificationHandler.MarkAllRead)
			notifications.DELETE("/:id", notificationHandler.DeleteNotification)
		}
	}
}
