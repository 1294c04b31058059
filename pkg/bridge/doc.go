// Package bridge relays one client request to the upstream inference
// service and converts its chunk stream into outbound event frames.
//
// # Task Lifecycle
//
// One Run invocation is one task: Idle → Streaming → {Completed |
// Errored}. Both end states are terminal; there is no retry and no
// resumption. Regardless of how the upstream stream behaves, Run emits
// zero or more content frames followed by exactly one terminal frame.
//
// # Algorithm
//
//  1. Append the user turn to the conversation history.
//  2. Render the whole transcript as "User:"/"Assistant:" lines with a
//     trailing "Assistant:" cue; the upstream has no native multi-turn
//     session support, so it receives the full transcript every call.
//  3. Open one streaming upstream request.
//  4. Relay every non-empty fragment as a content frame the moment it
//     arrives, in order, while accumulating the full text.
//  5. On clean completion, append the assistant turn and emit completed.
//  6. On any fault, emit one error frame and append nothing.
//
// A failed generation leaves the user turn from step 1 in history with
// no assistant reply. This dangling turn is deliberate: rolling it back
// could race with a concurrent reader of the same conversation, and the
// preserved turn keeps the user's intent available for a retry.
package bridge
