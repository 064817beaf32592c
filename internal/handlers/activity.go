package handlers

import (
	"log/slog"
	"net/http"

	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ActivityRecorder appends entries to the activity feed and pushes them to
// connected websocket clients. Recording is fire-and-forget: failures are
// logged and never propagate to the request that triggered them.
type ActivityRecorder struct {
	db  *gorm.DB
	hub *FeedHub
}

func NewActivityRecorder(db *gorm.DB, hub *FeedHub) *ActivityRecorder {
	return &ActivityRecorder{db: db, hub: hub}
}

func (r *ActivityRecorder) Record(activityType, description, entityType, entityID string) {
	activity := models.Activity{
		Type:        activityType,
		Description: description,
		EntityType:  entityType,
		EntityID:    entityID,
	}
	if err := r.db.Create(&activity).Error; err != nil {
		slog.Warn("failed to record activity", "type", activityType, "error", err)
		return
	}
	if r.hub != nil {
		r.hub.Broadcast(activity)
	}
}

type ActivityHandler struct {
	db  *gorm.DB
	hub *FeedHub
}

func NewActivityHandler(db *gorm.DB, hub *FeedHub) *ActivityHandler {
	return &ActivityHandler{db: db, hub: hub}
}

// List returns the full feed, newest first.
func (h *ActivityHandler) List(c *gin.Context) {
	activities := make([]models.Activity, 0)
	if err := h.db.Order("created_at desc").Find(&activities).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// Stream upgrades to a websocket that receives each new activity as JSON.
func (h *ActivityHandler) Stream(c *gin.Context) {
	h.hub.Serve(c)
}
