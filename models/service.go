package models

// Service is a catalog entry offered to clients; Price is a default rate in
// minor units, copied onto invoice items by the frontend.
type Service struct {
	Base
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}
