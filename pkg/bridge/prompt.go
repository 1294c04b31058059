package bridge

import (
	"strings"

	"github.com/n0ko/monty/pkg/session"
)

// roleLabel maps a turn role to its transcript label.
func roleLabel(role session.Role) string {
	if role == session.RoleAssistant {
		return "Assistant"
	}
	return "User"
}

// RenderPrompt renders a conversation history as the transcript prompt
// the upstream expects: one "<RoleLabel>: <content>" line per turn,
// terminated by a trailing "Assistant:" cue line.
func RenderPrompt(turns []session.Turn) string {
	var b strings.Builder
	for _, turn := range turns {
		b.WriteString(roleLabel(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	b.WriteString("Assistant:")
	return b.String()
}
