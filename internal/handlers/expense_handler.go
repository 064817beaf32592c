package handlers

import (
	"fmt"
	"net/http"

	"github.com/canvascartel/crm-backend/internal/money"
	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExpenseHandler struct {
	db       *gorm.DB
	activity *ActivityRecorder
}

func NewExpenseHandler(db *gorm.DB, activity *ActivityRecorder) *ExpenseHandler {
	return &ExpenseHandler{db: db, activity: activity}
}

func (h *ExpenseHandler) List(c *gin.Context) {
	expenses := make([]models.Expense, 0)
	if err := h.db.Order("created_at desc").Find(&expenses).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.db.Create(&expense).Error; err != nil {
		badRequest(c, err)
		return
	}
	h.activity.Record("expense_created",
		fmt.Sprintf("Expense recorded: %s - ₹%s", expense.Title, money.Format(expense.Amount)),
		"expense", expense.ID)
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	var expense models.Expense
	if err := h.db.First(&expense, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Expense")
			return
		}
		serverError(c, err)
		return
	}
	id, createdAt := expense.ID, expense.CreatedAt
	if err := c.ShouldBindJSON(&expense); err != nil {
		badRequest(c, err)
		return
	}
	expense.ID, expense.CreatedAt = id, createdAt
	if err := h.db.Save(&expense).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	if err := h.db.Delete(&models.Expense{}, "id = ?", c.Param("id")).Error; err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
