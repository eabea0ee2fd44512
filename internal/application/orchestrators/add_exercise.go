package orchestrators

import (
	"context"
	"log/slog"

	"architect/internal/domain/catalog"
)

// CatalogStoreForAdd defines the store interface needed by AddLibraryExercise.
type CatalogStoreForAdd interface {
	EnsureExercise(ctx context.Context, e catalog.Exercise) (catalog.Exercise, error)
	EnsureCategory(ctx context.Context, c catalog.Category) (catalog.Category, error)
	Link(ctx context.Context, exerciseID, categoryID string) error
}

// AddLibraryExerciseInput carries input for the orchestrator.
type AddLibraryExerciseInput struct {
	Scope      string
	Name       string
	Notes      string
	Categories []string
}

// AddLibraryExerciseDeps holds dependencies for AddLibraryExercise.
type AddLibraryExerciseDeps struct {
	CatalogStore CatalogStoreForAdd
	GenerateID   func() string
}

// ExecuteAddLibraryExercise adds a custom exercise to the user's catalog and
// tags it with the given categories, creating any that are missing. Re-adding
// an existing name returns the stored exercise unchanged.
// PRE: Name is non-empty after trimming
// POST: The exercise exists in the scope with a link per category
func ExecuteAddLibraryExercise(ctx context.Context, input AddLibraryExerciseInput, deps AddLibraryExerciseDeps) (catalog.Exercise, error) {
	ex := catalog.Exercise{
		ID:           deps.GenerateID(),
		Scope:        input.Scope,
		Name:         catalog.NormalizeName(input.Name),
		DefaultNotes: input.Notes,
	}
	if err := ex.Validate(); err != nil {
		return catalog.Exercise{}, err
	}

	stored, err := deps.CatalogStore.EnsureExercise(ctx, ex)
	if err != nil {
		return catalog.Exercise{}, err
	}

	for _, name := range input.Categories {
		c := catalog.Category{
			ID:    deps.GenerateID(),
			Scope: input.Scope,
			Name:  catalog.NormalizeName(name),
		}
		if err := c.Validate(); err != nil {
			return catalog.Exercise{}, err
		}
		storedCat, err := deps.CatalogStore.EnsureCategory(ctx, c)
		if err != nil {
			return catalog.Exercise{}, err
		}
		if err := deps.CatalogStore.Link(ctx, stored.ID, storedCat.ID); err != nil {
			return catalog.Exercise{}, err
		}
	}

	slog.Info("catalog_event", "event", "exercise_added", "scope", input.Scope,
		"exercise", stored.Name, "categories", len(input.Categories))
	return stored, nil
}
