package orchestrators

import "sync"

// SessionSyncTracker remembers which scopes were synced during this process
// lifetime. State is deliberately not persisted: restarting the server drops
// the flags and the next sync re-checks the catalog itself.
type SessionSyncTracker struct {
	mu     sync.Mutex
	synced map[string]bool
}

// NewSessionSyncTracker creates an empty tracker.
func NewSessionSyncTracker() *SessionSyncTracker {
	return &SessionSyncTracker{synced: make(map[string]bool)}
}

// Synced reports whether a scope was already synced this session.
func (t *SessionSyncTracker) Synced(scope string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.synced[scope]
}

// MarkSynced records a completed sync for a scope.
func (t *SessionSyncTracker) MarkSynced(scope string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.synced[scope] = true
}

// Forget clears the flag for a scope, forcing the next sync to re-check.
func (t *SessionSyncTracker) Forget(scope string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.synced, scope)
}
