package web

import (
	"sync"

	"architect/internal/domain/template"
)

// EditorRegistry holds each account's in-progress plan template. Editors are
// session state: they live for the process lifetime and are dropped on
// restart, like the sync flags.
type EditorRegistry struct {
	mu      sync.Mutex
	editors map[string]*template.Editor
}

// NewEditorRegistry creates an empty registry.
func NewEditorRegistry() *EditorRegistry {
	return &EditorRegistry{editors: make(map[string]*template.Editor)}
}

// With runs fn against the account's editor while holding the registry lock.
// The Editor type itself is not safe for concurrent use; all access goes
// through here.
func (r *EditorRegistry) With(accountID string, fn func(*template.Editor) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ed, ok := r.editors[accountID]
	if !ok {
		ed = &template.Editor{}
		r.editors[accountID] = ed
	}
	return fn(ed)
}

// Snapshot returns a deep copy of the account's current day templates.
func (r *EditorRegistry) Snapshot(accountID string) []template.WorkoutTemplate {
	var days []template.WorkoutTemplate
	_ = r.With(accountID, func(ed *template.Editor) error {
		days = ed.Snapshot()
		return nil
	})
	return days
}

// Reset clears the account's editor back to empty.
func (r *EditorRegistry) Reset(accountID string) {
	_ = r.With(accountID, func(ed *template.Editor) error {
		ed.Reset()
		return nil
	})
}
