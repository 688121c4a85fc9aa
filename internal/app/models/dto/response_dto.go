package dto

// MessageResponse is the envelope for operations that return no resource body.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Operation completed successfully"`
}

// NewMessageResponse creates a success envelope with a human-readable message.
func NewMessageResponse(message string) *MessageResponse {
	return &MessageResponse{
		Success: true,
		Message: message,
	}
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
