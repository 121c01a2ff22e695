package middleware

import (
	"crypto/subtle"
	"net/http"

	"remindify/config"

	"github.com/gin-gonic/gin"
)

// CronAuthMiddleware authenticates dispatch trigger callers by the shared
// secret, taken from the Authorization header or the apiKey query parameter.
// An unset secret rejects everything rather than opening the endpoint up.
func CronAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := config.AppConfig.CronAPIKey

		provided := c.GetHeader("Authorization")
		if provided == "" {
			provided = c.Query("apiKey")
		}

		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		c.Next()
	}
}
