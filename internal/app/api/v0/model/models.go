package model

// Error is the default API error response model.
type Error struct {
	Code    int    `json:"Code"`
	Message string `json:"Message"`
}
