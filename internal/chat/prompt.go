package chat

import "strings"

// AssemblePrompt flattens a turn sequence plus a pending user message into
// the single prompt string sent to the generator. Each turn becomes a
// role-prefixed line; a trailing "Assistant:" line cues the model to
// continue as the assistant. The function is pure: it never mutates turns
// and the same inputs always produce the identical string.
func AssemblePrompt(turns []Turn, pendingUserMessage string) string {
	var b strings.Builder
	for _, turn := range turns {
		b.WriteString(roleLabel(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(pendingUserMessage)
	b.WriteString("\nAssistant:")
	return b.String()
}

func roleLabel(role Role) string {
	switch role {
	case RoleSystem:
		return "System"
	case RoleUser:
		return "User"
	default:
		// Unknown roles read best attributed to the assistant
		return "Assistant"
	}
}
