package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping is the liveness probe endpoint.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Root identifies the service.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "statuswatch API server is running",
	})
}
