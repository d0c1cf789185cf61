package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailcore/backend/internal/infrastructure/persistence"
)

// SystemHandler handles health and runtime info endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	appName   string
	env       string
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		appName:   appName,
		env:       env,
		startedAt: time.Now(),
	}
}

// Health reports liveness plus database reachability
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"app":      h.appName,
		"env":      h.env,
		"database": dbStatus,
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready reports readiness; it fails until the database answers
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

// DBStats exposes connection pool statistics
func (h *SystemHandler) DBStats(c *gin.Context) {
	stats, err := h.db.Stats()
	if err != nil {
		h.InternalError(c, err.Error())
		return
	}
	h.Success(c, stats)
}
