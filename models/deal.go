package models

// Deal tracks an opportunity through the pipeline. Value is kept in currency
// minor units like every other money field.
type Deal struct {
	Base
	Title             string `json:"title" binding:"required"`
	Value             int64  `json:"value"`
	Stage             string `json:"stage" gorm:"default:'new_lead'"`
	Probability       int    `json:"probability"`
	ExpectedCloseDate string `json:"expectedCloseDate"`
	Notes             string `json:"notes"`
}
