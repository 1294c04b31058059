package events

// Type discriminates outbound frame variants on the wire.
type Type string

const (
	// TypeContent tags frames carrying an incremental text fragment.
	TypeContent Type = "content"

	// TypeCompleted tags the successful terminal frame of a task.
	TypeCompleted Type = "completed"

	// TypeError tags the failed terminal frame of a task.
	TypeError Type = "error"
)

// CompletedMarker is the fixed content carried by every completed frame.
const CompletedMarker = "Task completed"

// InboundFrame is one client request: a message and an optional
// conversation id. An absent conversation id asks the server to start a
// new conversation.
type InboundFrame struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// OutboundFrame is implemented by the closed set of outbound frame
// variants. Each variant serializes deterministically to its wire shape
// via encoding/json struct tags.
type OutboundFrame interface {
	// EventType returns the wire discriminator for this frame.
	EventType() Type

	// Task returns the task id this frame belongs to.
	Task() string

	// Terminal reports whether this frame ends the task's lifecycle.
	Terminal() bool
}

// Sink consumes outbound frames, typically by writing them to a client
// connection. Emit must be safe to call from the goroutine driving one
// task at a time; implementations serialize concurrent writers.
type Sink interface {
	Emit(frame OutboundFrame) error
}

// ContentEvent relays one incremental text fragment to the client.
// Fragments are delivered in arrival order without buffering or
// coalescing; IsComplete is always false.
type ContentEvent struct {
	TaskID         string `json:"task_id"`
	Type           Type   `json:"event_type"`
	Content        string `json:"content"`
	ConversationID string `json:"conversation_id"`
	IsComplete     bool   `json:"is_complete"`
}

// NewContentEvent creates a content frame for one relayed fragment.
func NewContentEvent(taskID, conversationID, fragment string) ContentEvent {
	return ContentEvent{
		TaskID:         taskID,
		Type:           TypeContent,
		Content:        fragment,
		ConversationID: conversationID,
		IsComplete:     false,
	}
}

// EventType implements OutboundFrame.
func (e ContentEvent) EventType() Type { return TypeContent }

// Task implements OutboundFrame.
func (e ContentEvent) Task() string { return e.TaskID }

// Terminal implements OutboundFrame. Content frames never end a task.
func (e ContentEvent) Terminal() bool { return false }

// CompletedEvent is the successful terminal frame of a task.
type CompletedEvent struct {
	TaskID         string `json:"task_id"`
	Type           Type   `json:"event_type"`
	Content        string `json:"content"`
	ConversationID string `json:"conversation_id"`
}

// NewCompletedEvent creates the completed frame for a task.
func NewCompletedEvent(taskID, conversationID string) CompletedEvent {
	return CompletedEvent{
		TaskID:         taskID,
		Type:           TypeCompleted,
		Content:        CompletedMarker,
		ConversationID: conversationID,
	}
}

// EventType implements OutboundFrame.
func (e CompletedEvent) EventType() Type { return TypeCompleted }

// Task implements OutboundFrame.
func (e CompletedEvent) Task() string { return e.TaskID }

// Terminal implements OutboundFrame.
func (e CompletedEvent) Terminal() bool { return true }

// ErrorEvent is the failed terminal frame of a task. ConversationID is
// nil only for parse errors, which occur before a conversation is
// resolved; it serializes as JSON null in that case.
type ErrorEvent struct {
	TaskID         string  `json:"task_id"`
	Type           Type    `json:"event_type"`
	ErrorMessage   string  `json:"error_message"`
	ConversationID *string `json:"conversation_id"`
}

// NewErrorEvent creates an error frame tied to a resolved conversation.
func NewErrorEvent(taskID, conversationID, message string) ErrorEvent {
	return ErrorEvent{
		TaskID:         taskID,
		Type:           TypeError,
		ErrorMessage:   message,
		ConversationID: &conversationID,
	}
}

// NewParseErrorEvent creates an error frame for an inbound payload that
// could not be decoded. The conversation id is absent (null on the wire).
func NewParseErrorEvent(taskID, message string) ErrorEvent {
	return ErrorEvent{
		TaskID:       taskID,
		Type:         TypeError,
		ErrorMessage: message,
	}
}

// EventType implements OutboundFrame.
func (e ErrorEvent) EventType() Type { return TypeError }

// Task implements OutboundFrame.
func (e ErrorEvent) Task() string { return e.TaskID }

// Terminal implements OutboundFrame.
func (e ErrorEvent) Terminal() bool { return true }
