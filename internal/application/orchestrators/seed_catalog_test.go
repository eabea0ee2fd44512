package orchestrators

import (
	"context"
	"errors"
	"testing"

	catalogStore "architect/internal/adapters/storage/catalog"
	"architect/internal/domain/catalog"
)

// mockCatalogForSeed implements CatalogStoreForSeed.
type mockCatalogForSeed struct {
	existing int
	countErr error
	applied  []catalogStore.SyncBatch
}

func (m *mockCatalogForSeed) CountExercises(_ context.Context, _ string) (int, error) {
	return m.existing, m.countErr
}

func (m *mockCatalogForSeed) ApplyMissing(_ context.Context, batch catalogStore.SyncBatch) error {
	m.applied = append(m.applied, batch)
	return nil
}

// TestExecuteSeedBaseCatalog_SeedsOnce tests the empty-catalog path and that
// the seed data is internally consistent.
func TestExecuteSeedBaseCatalog_SeedsOnce(t *testing.T) {
	store := &mockCatalogForSeed{}
	err := ExecuteSeedBaseCatalog(context.Background(),
		SeedCatalogDeps{CatalogStore: store, GenerateID: seqIDGen()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.applied) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(store.applied))
	}

	batch := store.applied[0]
	if batch.Scope != catalog.ScopeBase {
		t.Errorf("scope = %q", batch.Scope)
	}
	if len(batch.Categories) != 19 {
		t.Errorf("expected 19 categories, got %d", len(batch.Categories))
	}
	if len(batch.Exercises) != 12 {
		t.Errorf("expected 12 exercises, got %d", len(batch.Exercises))
	}

	// Every link must reference a seeded exercise and category by name.
	catNames := make(map[string]bool)
	for _, c := range batch.Categories {
		catNames[c.Name] = true
	}
	exNames := make(map[string]bool)
	for _, e := range batch.Exercises {
		exNames[e.Name] = true
	}
	for _, l := range batch.Links {
		if !exNames[l.ExerciseName] {
			t.Errorf("link references unseeded exercise %q", l.ExerciseName)
		}
		if !catNames[l.CategoryName] {
			t.Errorf("link references unseeded category %q", l.CategoryName)
		}
	}

	// Ids must be unique across the whole batch.
	ids := make(map[string]bool)
	for _, c := range batch.Categories {
		ids[c.ID] = true
	}
	for _, e := range batch.Exercises {
		ids[e.ID] = true
	}
	if len(ids) != len(batch.Categories)+len(batch.Exercises) {
		t.Error("expected unique ids across the seed batch")
	}
}

// TestExecuteSeedBaseCatalog_SkipsWhenPopulated tests the already-seeded path.
func TestExecuteSeedBaseCatalog_SkipsWhenPopulated(t *testing.T) {
	store := &mockCatalogForSeed{existing: 12}
	err := ExecuteSeedBaseCatalog(context.Background(),
		SeedCatalogDeps{CatalogStore: store, GenerateID: seqIDGen()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.applied) != 0 {
		t.Errorf("expected no batch, got %d", len(store.applied))
	}
}

// TestExecuteSeedBaseCatalog_CountFailure tests that a read failure aborts.
func TestExecuteSeedBaseCatalog_CountFailure(t *testing.T) {
	store := &mockCatalogForSeed{countErr: errors.New("no such table")}
	err := ExecuteSeedBaseCatalog(context.Background(),
		SeedCatalogDeps{CatalogStore: store, GenerateID: seqIDGen()})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.applied) != 0 {
		t.Error("expected no batch on failure")
	}
}
