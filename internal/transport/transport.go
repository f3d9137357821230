package transport

import (
	"net/http"

	"github.com/dskendzo/eventplanner/internal/entity"
	"github.com/dskendzo/eventplanner/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(
	jwtSecret string,
	eventHandler *EventHandler,
	registrationHandler *RegistrationHandler,
	userHandler *UserHandler,
	commentHandler *CommentHandler,
	weatherHandler *WeatherHandler,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	protect := middleware.Protect(jwtSecret)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}

		// Event routes
		events := api.Group("/events")
		{
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("", protect, eventHandler.CreateEvent)
			events.PUT("/:id", protect, eventHandler.UpdateEvent)
			events.DELETE("/:id", protect, eventHandler.DeleteEvent)

			// Registration routes
			events.POST("/:id/registrations", protect, registrationHandler.Participate)
			events.GET("/:id/registrations/me", protect, registrationHandler.MyStatus)
			events.DELETE("/:id/registrations/me", protect, registrationHandler.Cancel)
			events.POST("/:id/registrations/me/checkin", protect, registrationHandler.CheckIn)
			events.POST("/:id/registrations/me/checkout", protect, registrationHandler.CheckOut)
			events.DELETE("/:id/registrations", protect, middleware.Authorize(entity.RoleAdmin), registrationHandler.DeleteAllForEvent)

			// Comment routes
			events.GET("/:id/comments", commentHandler.GetEventComments)
			events.POST("/:id/comments", protect, commentHandler.AddComment)
			events.PUT("/:id/comments/:comment_id", protect, commentHandler.UpdateComment)
			events.DELETE("/:id/comments/:comment_id", protect, commentHandler.DeleteComment)
		}

		// Registration overview for the current user
		api.GET("/registrations/me", protect, registrationHandler.MyRegistrations)

		// User routes
		api.GET("/users/:id", protect, userHandler.GetUser)

		// Weather routes
		api.GET("/weather", weatherHandler.GetForecast)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
