package projections

import (
	"context"
	"log/slog"
	"strings"

	"architect/internal/domain/catalog"
)

// CatalogStoreForLibrary defines the reads needed by the library view.
type CatalogStoreForLibrary interface {
	ListExercises(ctx context.Context, scope string) ([]catalog.Exercise, error)
	CategoriesByExercise(ctx context.Context, scope string) (map[string][]string, error)
}

// LibraryEntry is one row of the exercise library listing.
type LibraryEntry struct {
	ID         string
	Name       string
	Categories string // comma-joined category names
	Notes      string
}

// LibraryDeps holds dependencies for the library view.
type LibraryDeps struct {
	CatalogStore CatalogStoreForLibrary
}

// QueryLibrary returns the scope's exercise library ordered by name, each
// entry tagged with its comma-joined categories. Read failures degrade to
// an empty listing with a logged warning.
func QueryLibrary(ctx context.Context, scope string, deps LibraryDeps) []LibraryEntry {
	exercises, err := deps.CatalogStore.ListExercises(ctx, scope)
	if err != nil {
		slog.Warn("view_event", "event", "library_read_failed", "scope", scope, "error", err)
		return nil
	}
	catsByID, err := deps.CatalogStore.CategoriesByExercise(ctx, scope)
	if err != nil {
		slog.Warn("view_event", "event", "library_read_failed", "scope", scope, "error", err)
		return nil
	}

	entries := make([]LibraryEntry, 0, len(exercises))
	for _, e := range exercises {
		entries = append(entries, LibraryEntry{
			ID:         e.ID,
			Name:       e.Name,
			Categories: strings.Join(catsByID[e.ID], ", "),
			Notes:      e.DefaultNotes,
		})
	}
	return entries
}
