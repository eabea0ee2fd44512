package orchestrators

import (
	"context"
	"log/slog"

	catalogStore "architect/internal/adapters/storage/catalog"
	"architect/internal/domain/catalog"
)

// CatalogStoreForSeed defines the store interface needed by SeedBaseCatalog.
type CatalogStoreForSeed interface {
	CountExercises(ctx context.Context, scope string) (int, error)
	ApplyMissing(ctx context.Context, batch catalogStore.SyncBatch) error
}

// SeedCatalogDeps holds dependencies for SeedBaseCatalog.
type SeedCatalogDeps struct {
	CatalogStore CatalogStoreForSeed
	GenerateID   func() string
}

// baseCategories is the fixed body-part and movement-pattern taxonomy
// installed into the base scope at first run.
var baseCategories = []string{
	"Chest", "Back", "Shoulders", "Biceps", "Triceps",
	"Quads", "Hamstrings", "Glutes", "Calves", "Core", "Forearms",
	"Full Body", "Upper Body", "Lower Body",
	"Push", "Pull", "Legs", "Compound", "Isolation",
}

type seedExercise struct {
	name       string
	notes      string
	categories []string
}

var baseExercises = []seedExercise{
	{"Bench Press (Barbell)", "Feet planted, slight arch, bar to mid chest.",
		[]string{"Chest", "Triceps", "Shoulders", "Compound", "Upper Body", "Push"}},
	{"Incline Dumbbell Press", "",
		[]string{"Chest", "Shoulders", "Upper Body", "Push"}},
	{"Overhead Press (Barbell)", "Squeeze glutes, ribs down.",
		[]string{"Shoulders", "Triceps", "Compound", "Upper Body", "Push"}},
	{"Pull Up", "Full hang at the bottom of every rep.",
		[]string{"Back", "Biceps", "Forearms", "Compound", "Upper Body", "Pull"}},
	{"Barbell Row", "",
		[]string{"Back", "Biceps", "Compound", "Upper Body", "Pull"}},
	{"Deadlift", "Hinge, not squat. Bar stays on the legs.",
		[]string{"Back", "Hamstrings", "Glutes", "Forearms", "Compound", "Full Body"}},
	{"Back Squat (Barbell)", "Brace before every descent.",
		[]string{"Quads", "Glutes", "Hamstrings", "Compound", "Lower Body", "Legs"}},
	{"Front Squat (Barbell)", "",
		[]string{"Quads", "Core", "Compound", "Lower Body", "Legs"}},
	{"Romanian Deadlift", "Soft knees, push hips back.",
		[]string{"Hamstrings", "Glutes", "Compound", "Lower Body", "Legs"}},
	{"Barbell Curl", "",
		[]string{"Biceps", "Forearms", "Isolation", "Upper Body", "Pull"}},
	{"Cable Triceps Pushdown", "",
		[]string{"Triceps", "Isolation", "Upper Body", "Push"}},
	{"Standing Calf Raise", "Pause at the stretch.",
		[]string{"Calves", "Isolation", "Lower Body", "Legs"}},
}

// ExecuteSeedBaseCatalog installs the fixed exercise library into the base
// scope if it is empty. Safe to call on every startup.
// PRE: Database is initialized
// POST: Base scope holds the seed categories, exercises and links
func ExecuteSeedBaseCatalog(ctx context.Context, deps SeedCatalogDeps) error {
	n, err := deps.CatalogStore.CountExercises(ctx, catalog.ScopeBase)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil // Already seeded
	}

	batch := buildSeedBatch(catalog.ScopeBase, deps.GenerateID)
	if err := deps.CatalogStore.ApplyMissing(ctx, batch); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "base_catalog_seeded",
		"categories", len(batch.Categories), "exercises", len(batch.Exercises), "links", len(batch.Links))
	return nil
}

// buildSeedBatch assembles the fixed base library as one sync batch.
func buildSeedBatch(scope string, generateID func() string) catalogStore.SyncBatch {
	batch := catalogStore.SyncBatch{Scope: scope}
	for _, name := range baseCategories {
		batch.Categories = append(batch.Categories, catalog.Category{
			ID: generateID(), Scope: scope, Name: name,
		})
	}
	for _, e := range baseExercises {
		batch.Exercises = append(batch.Exercises, catalog.Exercise{
			ID: generateID(), Scope: scope, Name: e.name, DefaultNotes: e.notes,
		})
		for _, c := range e.categories {
			batch.Links = append(batch.Links, catalog.NamePair{
				ExerciseName: e.name, CategoryName: c,
			})
		}
	}
	return batch
}
