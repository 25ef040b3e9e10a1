package types

import "time"

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// ParseMessageRole maps loose role labels to a known role. Unknown labels
// fall back to assistant.
func ParseMessageRole(raw string) (MessageRole, bool) {
	switch raw {
	case "user", "you", "human":
		return MessageRoleUser, true
	case "assistant", "agent", "ai", "vibe":
		return MessageRoleAssistant, true
	case "system":
		return MessageRoleSystem, true
	default:
		return MessageRoleAssistant, false
	}
}

type Message struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}
