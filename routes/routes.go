package routes

import (
	"time"

	"admitdesk/handlers"
	"admitdesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterReminderRoutes registers reminder lifecycle endpoints.
func RegisterReminderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reminders")
	{
		api.Use(middleware.JWTAuthEmployeeMiddleware())
		api.POST("", hb.CreateReminderHandler)
		api.GET("", hb.ListRemindersHandler)
		api.GET("/:id", hb.GetReminderHandler)
		api.DELETE("/:id", hb.DeleteReminderHandler)
		api.DELETE("/target/:type/:targetId", hb.DeleteTargetRemindersHandler)
	}
}

// RegisterEmployeeRoutes registers employee and contact endpoints.
func RegisterEmployeeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/employees")
	{
		api.Use(middleware.JWTAuthEmployeeMiddleware())
		api.POST("", hb.CreateEmployeeHandler)
		api.GET("/:id", hb.GetEmployeeHandler)
		api.PATCH("/:id/contact", hb.UpdateContactHandler)
	}
}

// RegisterRealtimeRoutes registers the event stream. EventSource cannot set
// headers, so the token may also arrive as ?token=.
func RegisterRealtimeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/realtime")
	{
		api.Use(middleware.JWTAuthEmployeeMiddleware())
		api.GET("/stream", hb.StreamHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for operator actions.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminTokenMiddleware(hb.AdminToken))
		adminGroup.POST("/dispatch", hb.DispatchHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	RegisterReminderRoutes(r, hb)
	RegisterEmployeeRoutes(r, hb)
	RegisterRealtimeRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
