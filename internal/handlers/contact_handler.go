package handlers

import (
	"fmt"
	"net/http"

	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactHandler struct {
	db       *gorm.DB
	activity *ActivityRecorder
}

func NewContactHandler(db *gorm.DB, activity *ActivityRecorder) *ContactHandler {
	return &ContactHandler{db: db, activity: activity}
}

func (h *ContactHandler) List(c *gin.Context) {
	contacts := make([]models.Contact, 0)
	if err := h.db.Order("created_at desc").Find(&contacts).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) Get(c *gin.Context) {
	var contact models.Contact
	if err := h.db.First(&contact, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Contact")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Create(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.db.Create(&contact).Error; err != nil {
		badRequest(c, err)
		return
	}
	h.activity.Record("contact_created", fmt.Sprintf("New contact added: %s", contact.Name), "contact", contact.ID)
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Update(c *gin.Context) {
	var contact models.Contact
	if err := h.db.First(&contact, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Contact")
			return
		}
		serverError(c, err)
		return
	}
	id, createdAt := contact.ID, contact.CreatedAt
	if err := c.ShouldBindJSON(&contact); err != nil {
		badRequest(c, err)
		return
	}
	contact.ID, contact.CreatedAt = id, createdAt
	if err := h.db.Save(&contact).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.db.Delete(&models.Contact{}, "id = ?", c.Param("id")).Error; err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
