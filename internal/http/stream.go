package http

import (
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/shelfcache/internal/live"
)

const defaultHeartbeatInterval = 30 * time.Second

// streamHeartbeat is the interval between keep-alive events on a stream.
type streamHeartbeat time.Duration

// streamSnapshots relays every snapshot of sub as a "snapshot" server-sent
// event until the client disconnects. The subscription is always released.
func streamSnapshots[T any](c *gin.Context, name string, sub *live.Subscription[T], heartbeat streamHeartbeat) {
	defer sub.Close()

	connID := uuid.NewString()
	log.Printf("[SSE] %s connected to %s", connID, name)
	defer log.Printf("[SSE] %s disconnected from %s", connID, name)

	interval := time.Duration(heartbeat)
	if interval <= 0 {
		interval = defaultHeartbeatInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-sub.Updates():
			if !ok {
				return false
			}
			data, err := json.Marshal(snapshot)
			if err != nil {
				log.Printf("[SSE] %s failed to encode snapshot: %v", connID, err)
				return false
			}
			c.SSEvent("snapshot", string(data))
			return true
		case <-ticker.C:
			c.SSEvent("heartbeat", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-ctx.Done():
			return false
		}
	})
}
