package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The API uses flat response bodies: errors are always {"error": message},
// plain mutations answer {"success": true}, reads return their payload as-is.

func Err(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func AbortErr(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func Success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
