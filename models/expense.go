package models

type Expense struct {
	Base
	Title    string `json:"title" binding:"required"`
	Amount   int64  `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}
