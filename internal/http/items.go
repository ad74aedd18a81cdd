package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfcache/internal/entities"
	"github.com/mrlokans/shelfcache/internal/share"
	"github.com/mrlokans/shelfcache/internal/tasks"
)

// ItemRequest is the request body for creating or replacing an item.
type ItemRequest struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Summary  string `json:"summary"`
	Language string `json:"language"`
}

func (r ItemRequest) toItem() *entities.Item {
	return &entities.Item{
		ID:       r.ID,
		Title:    r.Title,
		Author:   r.Author,
		Summary:  r.Summary,
		Language: r.Language,
	}
}

type ItemsController struct {
	items      ItemService
	taskClient *tasks.Client
}

func NewItemsController(items ItemService, taskClient *tasks.Client) *ItemsController {
	return &ItemsController{
		items:      items,
		taskClient: taskClient,
	}
}

// List handles GET /api/items, optionally filtered by ?q=.
func (ic *ItemsController) List(c *gin.Context) {
	var (
		items []entities.Item
		err   error
	)
	if query := strings.TrimSpace(c.Query("q")); query != "" {
		items, err = ic.items.Search(c.Request.Context(), query)
	} else {
		items, err = ic.items.List(c.Request.Context())
	}
	if err != nil {
		respondInternalError(c, err, "list items")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// Get handles GET /api/items/:id
func (ic *ItemsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ic.items.Get(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get item")
		return
	}
	if item == nil {
		respondNotFound(c, "item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /api/items. A body with an id replaces that item.
func (ic *ItemsController) Create(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	item := req.toItem()
	if _, err := ic.items.CreateOrReplace(c.Request.Context(), item); err != nil {
		respondServiceError(c, err, "item", "create item")
		return
	}
	respondCreated(c, item)
}

// Update handles PUT /api/items/:id
func (ic *ItemsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	req.ID = id

	item := req.toItem()
	if err := ic.items.Update(c.Request.Context(), item); err != nil {
		respondServiceError(c, err, "item", "update item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/items/:id. Annotations of the item go with it.
func (ic *ItemsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ic.items.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "item", "delete item")
		return
	}
	respondSuccess(c, "item deleted")
}

// Refresh handles POST /api/items/refresh. With ?async=true the seed runs on
// the task queue instead of the request.
func (ic *ItemsController) Refresh(c *gin.Context) {
	if c.Query("async") == "true" {
		if ic.taskClient == nil {
			respondError(c, http.StatusServiceUnavailable, "task queue is not enabled")
			return
		}
		taskID, err := ic.taskClient.Enqueue(tasks.SeedCatalogTask{Reason: "api"})
		if err != nil {
			respondInternalError(c, err, "enqueue seed")
			return
		}
		respondAccepted(c, "seed enqueued", gin.H{"task_id": taskID})
		return
	}

	result, err := ic.items.RefreshIfEmpty(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "catalog", "refresh items")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Share handles GET /api/items/:id/share
func (ic *ItemsController) Share(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ic.items.Get(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "share item")
		return
	}
	if item == nil {
		respondNotFound(c, "item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": share.Text(*item)})
}

// Stream handles GET /api/items/stream
func (ic *ItemsController) Stream(heartbeat streamHeartbeat) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := ic.items.ObserveAll(c.Request.Context())
		if err != nil {
			respondInternalError(c, err, "observe items")
			return
		}
		streamSnapshots(c, "items", sub, heartbeat)
	}
}

// StreamOne handles GET /api/items/:id/stream. A null snapshot means the
// item does not exist.
func (ic *ItemsController) StreamOne(heartbeat streamHeartbeat) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		sub, err := ic.items.Observe(c.Request.Context(), id)
		if err != nil {
			respondInternalError(c, err, "observe item")
			return
		}
		streamSnapshots(c, "item "+c.Param("id"), sub, heartbeat)
	}
}
