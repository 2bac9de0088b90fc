// Package controller contains the HTTP request handlers for the API.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check requests.
type HealthController struct {
	dbHealthChecker func() bool
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
	}
}

// HealthResponse represents the health check response body.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Check handles GET /health.
func (c *HealthController) Check(ctx *gin.Context) {
	dbStatus := "up"
	status := "healthy"
	httpStatus := http.StatusOK

	if c.dbHealthChecker != nil && !c.dbHealthChecker() {
		dbStatus = "down"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	ctx.JSON(httpStatus, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
