package routes

import (
	"net/http"

	"remindify/handlers"
	"remindify/middleware"
	"remindify/utils"

	"github.com/gin-gonic/gin"
)

// RegisterCronRoutes registers the reminder dispatch endpoints.
func RegisterCronRoutes(r *gin.Engine, cronHandler *handlers.CronHandler) {
	api := r.Group("/api/cron")
	{
		api.Use(middleware.CronAuthMiddleware())
		api.POST("/pending-bookings", cronHandler.TriggerPendingReminders)
		api.GET("/last-run", cronHandler.GetLastRun)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes wires all endpoints and the method-not-allowed contract.
func RegisterRoutes(r *gin.Engine, cronHandler *handlers.CronHandler) {
	// Wrong verbs on known routes must answer 405, not 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Invalid method"})
	})

	RegisterCronRoutes(r, cronHandler)
	RegisterHealthRoute(r)
}
