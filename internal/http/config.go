package http

import (
	"time"

	"github.com/mrlokans/shelfcache/internal/database"
	"github.com/mrlokans/shelfcache/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database    *database.Database
	Items       ItemService
	Annotations AnnotationService

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Interval between SSE heartbeats. Default: 30s
	HeartbeatInterval time.Duration

	// Application info
	Version string
}
