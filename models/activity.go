package models

// Activity is one entry in the feed. Writes are fire-and-forget: a failed
// insert is logged and never fails the request that produced it.
type Activity struct {
	Base
	Type        string `json:"type"`
	Description string `json:"description"`
	EntityType  string `json:"entityType"`
	EntityID    string `json:"entityId"`
}
