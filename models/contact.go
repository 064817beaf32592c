package models

type Contact struct {
	Base
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}
