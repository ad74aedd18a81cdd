package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfcache/internal/database"
	"github.com/mrlokans/shelfcache/internal/live"
)

type HealthResponse struct {
	Status   string            `json:"status"`
	Time     string            `json:"time"`
	Version  string            `json:"version,omitempty"`
	Checks   map[string]string `json:"checks"`
	Versions map[string]uint64 `json:"table_versions,omitempty"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"
	var versions map[string]uint64

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}

		versions = map[string]uint64{
			string(live.TableItems):       h.db.Hub.Version(live.TableItems),
			string(live.TableAnnotations): h.db.Hub.Version(live.TableAnnotations),
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:   status,
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		Checks:   checks,
		Versions: versions,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
