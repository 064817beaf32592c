package handlers

import (
	"fmt"
	"net/http"

	"github.com/canvascartel/crm-backend/internal/money"
	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DealHandler struct {
	db       *gorm.DB
	activity *ActivityRecorder
}

func NewDealHandler(db *gorm.DB, activity *ActivityRecorder) *DealHandler {
	return &DealHandler{db: db, activity: activity}
}

func (h *DealHandler) List(c *gin.Context) {
	deals := make([]models.Deal, 0)
	if err := h.db.Order("created_at desc").Find(&deals).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, deals)
}

func (h *DealHandler) Get(c *gin.Context) {
	var deal models.Deal
	if err := h.db.First(&deal, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Deal")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Create(c *gin.Context) {
	var deal models.Deal
	if err := c.ShouldBindJSON(&deal); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.db.Create(&deal).Error; err != nil {
		badRequest(c, err)
		return
	}
	h.activity.Record("deal_created",
		fmt.Sprintf("New deal created: %s (₹%s)", deal.Title, money.Format(deal.Value)),
		"deal", deal.ID)
	c.JSON(http.StatusCreated, deal)
}

func (h *DealHandler) Update(c *gin.Context) {
	var deal models.Deal
	if err := h.db.First(&deal, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Deal")
			return
		}
		serverError(c, err)
		return
	}
	id, createdAt := deal.ID, deal.CreatedAt
	if err := c.ShouldBindJSON(&deal); err != nil {
		badRequest(c, err)
		return
	}
	deal.ID, deal.CreatedAt = id, createdAt
	if err := h.db.Save(&deal).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Delete(c *gin.Context) {
	if err := h.db.Delete(&models.Deal{}, "id = ?", c.Param("id")).Error; err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
