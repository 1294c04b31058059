// Package middleware provides the HTTP middleware chain for the gateway
// server: CORS, request id assignment, structured request logging, and
// panic recovery.
//
// The chain is websocket-aware: wrappers pass http.Hijacker through so
// connection upgrades keep working underneath them.
package middleware
