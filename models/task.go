package models

type Task struct {
	Base
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" gorm:"default:'pending'"`
	Priority    string `json:"priority" gorm:"default:'medium'"`
	AssignedTo  string `json:"assignedTo"`
	DueDate     string `json:"dueDate"`
}
