// Package events defines the frame protocol spoken over client connections.
//
// # Overview
//
// Clients send InboundFrame messages (a chat message plus an optional
// conversation id) and receive a closed set of tagged outbound frames:
//
//   - ContentEvent: one incremental text fragment relayed from the upstream
//     model as it arrives
//   - CompletedEvent: the successful terminal marker for a task
//   - ErrorEvent: the failed terminal marker for a task
//
// Every outbound frame carries the task id that correlates it with the
// inbound message that triggered it. A task emits zero or more content
// frames followed by exactly one terminal frame (completed or error).
//
// # Wire Format
//
// All frames are JSON objects. Outbound frames are discriminated by the
// "event_type" field:
//
//	{"task_id": "...", "event_type": "content", "content": "Hel", "conversation_id": "...", "is_complete": false}
//	{"task_id": "...", "event_type": "completed", "content": "Task completed", "conversation_id": "..."}
//	{"task_id": "...", "event_type": "error", "error_message": "...", "conversation_id": "..." | null}
//
// The error frame's conversation_id is null only when the inbound payload
// could not be parsed, which happens before a conversation is resolved.
//
// The package is pure data and serialization; it performs no I/O.
package events
