package handlers

import (
	"net/http"

	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db *gorm.DB
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{db: db}
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks := make([]models.Task, 0)
	if err := h.db.Order("created_at desc").Find(&tasks).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	var task models.Task
	if err := h.db.First(&task, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Task")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.db.Create(&task).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var task models.Task
	if err := h.db.First(&task, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Task")
			return
		}
		serverError(c, err)
		return
	}
	id, createdAt := task.ID, task.CreatedAt
	if err := c.ShouldBindJSON(&task); err != nil {
		badRequest(c, err)
		return
	}
	task.ID, task.CreatedAt = id, createdAt
	if err := h.db.Save(&task).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.db.Delete(&models.Task{}, "id = ?", c.Param("id")).Error; err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
