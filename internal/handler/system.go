package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"retail-analytics/internal/config"
	"retail-analytics/internal/database"
)

// SystemHandler serves the service metadata and health endpoints.
type SystemHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(db *gorm.DB, cfg *config.Config) *SystemHandler {
	return &SystemHandler{db: db, cfg: cfg}
}

// Index returns service metadata.
func (h *SystemHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     h.cfg.AppName,
		"version":     h.cfg.Version,
		"environment": h.cfg.Env,
	})
}

// Health reports database connectivity. Unhealthy databases return 503 so load
// balancers can rotate the instance out.
func (h *SystemHandler) Health(c *gin.Context) {
	health := database.CheckHealth(h.db)
	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}
