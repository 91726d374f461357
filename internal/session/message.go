package session

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a conversation. Messages are immutable once
// appended; order is insertion order.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
