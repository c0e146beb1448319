package chat

import "time"

// Speaker roles. Order inside a session is chronological and is replayed
// verbatim as model context, so roles must match the completion API's.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message exchanged in a conversation.
type Turn struct {
	ID        string    `json:"id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
