package handlers

import (
	"fmt"
	"net/http"

	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CallLogHandler struct {
	db       *gorm.DB
	activity *ActivityRecorder
}

func NewCallLogHandler(db *gorm.DB, activity *ActivityRecorder) *CallLogHandler {
	return &CallLogHandler{db: db, activity: activity}
}

func (h *CallLogHandler) List(c *gin.Context) {
	logs := make([]models.CallLog, 0)
	if err := h.db.Order("created_at desc").Find(&logs).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ListByLead returns the call history of a single lead, newest first.
func (h *CallLogHandler) ListByLead(c *gin.Context) {
	logs := make([]models.CallLog, 0)
	if err := h.db.Where("lead_id = ?", c.Param("id")).
		Order("created_at desc").Find(&logs).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *CallLogHandler) Create(c *gin.Context) {
	var log models.CallLog
	if err := c.ShouldBindJSON(&log); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.db.Create(&log).Error; err != nil {
		badRequest(c, err)
		return
	}
	desc := fmt.Sprintf("Call logged: %s", log.Outcome)
	if log.CalledBy != "" {
		desc += " by " + log.CalledBy
	}
	h.activity.Record("call_logged", desc, "call_log", log.ID)
	c.JSON(http.StatusCreated, log)
}

func (h *CallLogHandler) Update(c *gin.Context) {
	var log models.CallLog
	if err := h.db.First(&log, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Call log")
			return
		}
		serverError(c, err)
		return
	}
	id, createdAt := log.ID, log.CreatedAt
	if err := c.ShouldBindJSON(&log); err != nil {
		badRequest(c, err)
		return
	}
	log.ID, log.CreatedAt = id, createdAt
	if err := h.db.Save(&log).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *CallLogHandler) Delete(c *gin.Context) {
	if err := h.db.Delete(&models.CallLog{}, "id = ?", c.Param("id")).Error; err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
