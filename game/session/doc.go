// Package session provides session management for the swap puzzle.
//
// The session package implements:
//   - Thread-safe in-memory session storage and retrieval
//   - Unique session ID generation
//   - Idle expiry with a periodic cleanup loop
//
// Session Identifiers:
//
// Sessions use 4-character hexadecimal IDs for easy reference. Lookups are
// case-insensitive. Generated IDs are drawn from crypto/rand and retried on
// collision.
//
// Concurrency:
//
// The manager guards its map with a RWMutex. The machine inside each session
// is guarded separately by the session itself (see service.Session.Do), so
// events for different sessions never wait on each other.
//
// Usage:
//
//	manager := session.NewManager()
//	sess, err := manager.Create("", image, machine)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	go manager.RunCleanup(ctx, time.Minute, 30*time.Minute, logger)
package session
