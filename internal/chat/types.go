// Package chat implements the conversation-context pipeline: a bounded
// in-memory session store, prompt assembly, the model gateway, and the
// orchestrator that ties them together.
package chat

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged utterance in a conversation. Turns are immutable
// once stored; the store hands out copies, never its own slices.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
