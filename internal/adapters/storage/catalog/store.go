package catalog

import (
	"context"

	domain "architect/internal/domain/catalog"
)

// SyncBatch is a set of catalog rows missing from a scope, applied in one
// transaction by the library synchronizer. Rows carry pre-minted ids; links
// are expressed by natural keys because ids differ between scopes.
type SyncBatch struct {
	Scope      string
	Categories []domain.Category
	Exercises  []domain.Exercise
	Links      []domain.NamePair
}

// Empty reports whether the batch would write nothing.
func (b SyncBatch) Empty() bool {
	return len(b.Categories) == 0 && len(b.Exercises) == 0 && len(b.Links) == 0
}

// Store persists the scoped exercise/category catalog. All create operations
// are idempotent: creating an existing name returns the existing row.
type Store interface {
	FindCategory(ctx context.Context, scope, name string) (domain.Category, error)
	EnsureCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	FindExercise(ctx context.Context, scope, name string) (domain.Exercise, error)
	EnsureExercise(ctx context.Context, e domain.Exercise) (domain.Exercise, error)
	Link(ctx context.Context, exerciseID, categoryID string) error
	ListCategories(ctx context.Context, scope string) ([]domain.Category, error)
	ListExercises(ctx context.Context, scope string) ([]domain.Exercise, error)
	ListLinks(ctx context.Context, scope string) ([]domain.NamePair, error)
	CategoriesByExercise(ctx context.Context, scope string) (map[string][]string, error)
	CountCategories(ctx context.Context, scope string) (int, error)
	CountExercises(ctx context.Context, scope string) (int, error)
	ApplyMissing(ctx context.Context, batch SyncBatch) error
}
