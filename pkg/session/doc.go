// Package session holds per-conversation turn history for the life of the
// process.
//
// The Registry maps opaque conversation ids to ordered turn histories.
// Conversations are created implicitly on first reference and are never
// destroyed individually; the composition root clears the whole registry
// at shutdown. History is unbounded: the source behavior defines no cap,
// TTL, or summarization, and inventing one would change observable
// behavior.
//
// Concurrency: the registry may be shared by many connection goroutines,
// and two connections can legally reference the same conversation id (a
// client that reconnects and reuses its id). An outer RWMutex guards the
// map and a per-conversation mutex guards each turn slice, so concurrent
// appends never interleave within a history and an append is visible to
// any subsequent read.
package session
