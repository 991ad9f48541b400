package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/webretro-server/internal/metrics"
)

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"` // seconds
	Port      int     `json:"port"`
}

// HealthHandler reports liveness and server status.
type HealthHandler struct {
	port    int
	romRoot string
	started time.Time
}

// NewHealthHandler creates a new HealthHandler instance. started is the
// process start time uptime is measured from.
func NewHealthHandler(port int, romRoot string, started time.Time) *HealthHandler {
	return &HealthHandler{
		port:    port,
		romRoot: romRoot,
		started: started,
	}
}

// Health always succeeds while the process is alive.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Uptime:    time.Since(h.started).Seconds(),
		Port:      h.port,
	})
}

// Status returns storage and process metrics.
// GET /api/status
func (h *HealthHandler) Status(c *gin.Context) {
	status, err := metrics.GetServerStatus(c.Request.Context(), h.romRoot, h.started)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}
