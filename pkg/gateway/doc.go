// Package gateway exposes the websocket chat surface and its HTTP
// server. Each accepted connection gets its own handler goroutine that
// reads inbound frames and drives the bridge sequentially, so a
// connection never has more than one generation in flight. The server
// registers the chat endpoint under two alias paths plus liveness and
// metrics endpoints, and wires the middleware chain around them.
//
// Protocol errors never close a connection. A malformed payload or an
// empty message produces a single error frame and the read loop keeps
// going; only a peer disconnect ends it.
package gateway
