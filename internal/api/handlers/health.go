package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Features reports which optional integrations the gateway was started with.
type Features struct {
	Directory bool `json:"directory"`
	Mail      bool `json:"mail"`
}

// Represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Backend   string    `json:"backend"`
	Features  Features  `json:"features"`
}

// HandleHealth returns the health status of the gateway along with the
// backend it forwards to and the optional features it has configured. The
// backend itself is not probed.
func HandleHealth(version string, startTime time.Time, backendURL string, features Features) gin.HandlerFunc {
	return func(c *gin.Context) {
		uptime := time.Since(startTime).Round(time.Second)

		response := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    uptime.String(),
			Backend:   backendURL,
			Features:  features,
		}

		c.JSON(http.StatusOK, response)
	}
}
