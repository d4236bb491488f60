package errors

// Error represents an API error
type Error struct {
	Message string `json:"message"`
	Error   int    `json:"error"`
}
