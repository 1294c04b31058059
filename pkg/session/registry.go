package session

import (
	"sync"
)

// Role identifies the author of a turn.
type Role string

const (
	// RoleUser marks a turn authored by the client.
	RoleUser Role = "user"

	// RoleAssistant marks a turn generated by the upstream model.
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged unit of conversation text. Turns are immutable
// once appended.
type Turn struct {
	Role    Role
	Content string
}

// Conversation is an ordered sequence of turns keyed by an opaque id.
// All access goes through its methods; callers never hold the slice.
type Conversation struct {
	id    string
	mu    sync.Mutex
	turns []Turn
}

// ID returns the conversation's opaque identifier.
func (c *Conversation) ID() string {
	return c.id
}

// Append adds a turn to the end of the history.
func (c *Conversation) Append(role Role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, Turn{Role: role, Content: content})
}

// Turns returns a copy of the history in append order.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns in the history.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Registry is the process-wide owner of all conversation state. It is
// constructed at startup by the composition root and passed into every
// connection handler; nothing else holds conversation state across
// requests.
type Registry struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		conversations: make(map[string]*Conversation),
	}
}

// GetOrCreate returns the conversation for the given id, creating an
// empty one if the id has not been seen before.
func (r *Registry) GetOrCreate(conversationID string) *Conversation {
	r.mu.RLock()
	conv, ok := r.conversations[conversationID]
	r.mu.RUnlock()
	if ok {
		return conv
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock: another goroutine may have created
	// the conversation between the two lock acquisitions.
	if conv, ok := r.conversations[conversationID]; ok {
		return conv
	}
	conv = &Conversation{id: conversationID}
	r.conversations[conversationID] = conv
	return conv
}

// AppendTurn appends a turn to the conversation's history, creating the
// conversation if needed. Appends preserve strict request order within a
// conversation.
func (r *Registry) AppendTurn(conversationID string, role Role, content string) {
	r.GetOrCreate(conversationID).Append(role, content)
}

// History returns a copy of the conversation's turns in append order.
// An unseen id yields an empty history without creating the conversation.
func (r *Registry) History(conversationID string) []Turn {
	r.mu.RLock()
	conv, ok := r.conversations[conversationID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return conv.Turns()
}

// Len returns the number of conversations currently held.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conversations)
}

// Clear drops all conversation state. Called by the composition root at
// shutdown.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conversations = make(map[string]*Conversation)
}
