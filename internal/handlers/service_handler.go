package handlers

import (
	"net/http"

	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

func (h *ServiceHandler) List(c *gin.Context) {
	services := make([]models.Service, 0)
	if err := h.db.Order("name asc").Find(&services).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var service models.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.db.Create(&service).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Service")
			return
		}
		serverError(c, err)
		return
	}
	id, createdAt := service.ID, service.CreatedAt
	if err := c.ShouldBindJSON(&service); err != nil {
		badRequest(c, err)
		return
	}
	service.ID, service.CreatedAt = id, createdAt
	if err := h.db.Save(&service).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.db.Delete(&models.Service{}, "id = ?", c.Param("id")).Error; err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
