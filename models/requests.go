package models

// ChatRequest is the body accepted by both chatbot endpoints and by each
// WebSocket frame.
type ChatRequest struct {
	Message *string `json:"message" binding:"required"`
}

// Text returns the message, or "" when the field was absent.
func (r ChatRequest) Text() string {
	if r.Message == nil {
		return ""
	}
	return *r.Message
}

// Role names used when assembling a prompt. They are provider-neutral; each
// model adapter maps them onto its own wire roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one entry of an outbound chat prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
