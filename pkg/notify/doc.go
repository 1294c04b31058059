// Package notify implements a small HTTP relay that turns webhook JSON
// payloads into local desktop notifications. It listens on its own
// port, independent of the chat gateway, and shells out to notify-send
// for delivery. Requests are acknowledged with 202 Accepted once the
// payload is validated; delivery itself is fire-and-forget.
package notify
