package bridge

import (
	"testing"

	"github.com/n0ko/monty/pkg/session"
)

func TestRenderPrompt(t *testing.T) {
	tests := []struct {
		name  string
		turns []session.Turn
		want  string
	}{
		{
			name:  "empty history",
			turns: nil,
			want:  "Assistant:",
		},
		{
			name: "single user turn",
			turns: []session.Turn{
				{Role: session.RoleUser, Content: "Hi"},
			},
			want: "User: Hi\nAssistant:",
		},
		{
			name: "multi-turn transcript",
			turns: []session.Turn{
				{Role: session.RoleUser, Content: "Hi"},
				{Role: session.RoleAssistant, Content: "Hello!"},
				{Role: session.RoleUser, Content: "Tell me more"},
			},
			want: "User: Hi\nAssistant: Hello!\nUser: Tell me more\nAssistant:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderPrompt(tt.turns); got != tt.want {
				t.Errorf("RenderPrompt:\nwant %q\ngot  %q", tt.want, got)
			}
		})
	}
}
