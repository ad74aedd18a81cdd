package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfcache/internal/entities"
)

// AnnotationRequest is the request body for adding or editing an annotation.
// ItemID is only read on edit; zero keeps the current item.
type AnnotationRequest struct {
	ItemID uint   `json:"item_id"`
	Text   string `json:"text"`
}

type AnnotationsController struct {
	annotations AnnotationService
}

func NewAnnotationsController(annotations AnnotationService) *AnnotationsController {
	return &AnnotationsController{annotations: annotations}
}

// List handles GET /api/items/:id/annotations, newest first.
func (ac *AnnotationsController) List(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	annotations, err := ac.annotations.List(c.Request.Context(), itemID)
	if err != nil {
		respondInternalError(c, err, "list annotations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"annotations": annotations, "count": len(annotations)})
}

// Add handles POST /api/items/:id/annotations
func (ac *AnnotationsController) Add(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	annotation, err := ac.annotations.Add(c.Request.Context(), itemID, req.Text)
	if err != nil {
		respondServiceError(c, err, "annotation", "add annotation")
		return
	}
	respondCreated(c, annotation)
}

// Edit handles PUT /api/annotations/:id
func (ac *AnnotationsController) Edit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	itemID := req.ItemID
	if itemID == 0 {
		current, err := ac.annotations.Get(c.Request.Context(), id)
		if err != nil {
			respondInternalError(c, err, "get annotation")
			return
		}
		if current == nil {
			respondNotFound(c, "annotation")
			return
		}
		itemID = current.ItemID
	}

	annotation := &entities.Annotation{ID: id, ItemID: itemID, Text: req.Text}
	if err := ac.annotations.Edit(c.Request.Context(), annotation); err != nil {
		respondServiceError(c, err, "annotation", "edit annotation")
		return
	}
	c.JSON(http.StatusOK, annotation)
}

// Delete handles DELETE /api/annotations/:id
func (ac *AnnotationsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ac.annotations.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "annotation", "delete annotation")
		return
	}
	respondSuccess(c, "annotation deleted")
}

// Stream handles GET /api/items/:id/annotations/stream
func (ac *AnnotationsController) Stream(heartbeat streamHeartbeat) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		sub, err := ac.annotations.Observe(c.Request.Context(), itemID)
		if err != nil {
			respondInternalError(c, err, "observe annotations")
			return
		}
		streamSnapshots(c, "annotations of item "+c.Param("id"), sub, heartbeat)
	}
}
