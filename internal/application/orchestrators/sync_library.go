package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	catalogStore "architect/internal/adapters/storage/catalog"
	"architect/internal/domain/catalog"
)

// CatalogStoreForSync defines the store interface needed by SyncLibrary.
type CatalogStoreForSync interface {
	ListCategories(ctx context.Context, scope string) ([]catalog.Category, error)
	ListExercises(ctx context.Context, scope string) ([]catalog.Exercise, error)
	ListLinks(ctx context.Context, scope string) ([]catalog.NamePair, error)
	ApplyMissing(ctx context.Context, batch catalogStore.SyncBatch) error
}

// SyncTracker suppresses redundant sync runs within one session. It is a
// short-circuit only, never proof of completion: a fresh session always
// re-checks actual catalog contents.
type SyncTracker interface {
	Synced(scope string) bool
	MarkSynced(scope string)
}

// SyncLibraryInput carries input for the sync orchestrator.
type SyncLibraryInput struct {
	Scope string
}

// SyncLibraryDeps holds dependencies for SyncLibrary.
type SyncLibraryDeps struct {
	CatalogStore CatalogStoreForSync
	Tracker      SyncTracker // optional
	GenerateID   func() string
}

var ErrSyncScopeInvalid = errors.New("sync requires a user scope")

// ExecuteSyncLibrary copies every base-catalog category, exercise and
// exercise-category link the user's scope is missing, in one transaction.
// Running it twice yields the same catalog state as running it once.
// PRE: input.Scope identifies a user, not the base scope
// POST: User scope contains every base entry; existing rows are untouched
func ExecuteSyncLibrary(ctx context.Context, input SyncLibraryInput, deps SyncLibraryDeps) error {
	if input.Scope == "" || input.Scope == catalog.ScopeBase {
		return ErrSyncScopeInvalid
	}
	if deps.Tracker != nil && deps.Tracker.Synced(input.Scope) {
		return nil
	}

	batch, err := missingEntries(ctx, input.Scope, deps)
	if err != nil {
		slog.Warn("sync_event", "event", "sync_read_failed", "scope", input.Scope, "error", err)
		return err
	}

	if !batch.Empty() {
		if err := deps.CatalogStore.ApplyMissing(ctx, batch); err != nil {
			slog.Warn("sync_event", "event", "sync_failed", "scope", input.Scope, "error", err)
			return err
		}
		slog.Info("sync_event", "event", "library_synced", "scope", input.Scope,
			"categories", len(batch.Categories), "exercises", len(batch.Exercises), "links", len(batch.Links))
	}

	if deps.Tracker != nil {
		deps.Tracker.MarkSynced(input.Scope)
	}
	return nil
}

// missingEntries computes the set difference between the base catalog and
// the user's scoped catalog, phase by phase: categories, then exercises,
// then links.
func missingEntries(ctx context.Context, scope string, deps SyncLibraryDeps) (catalogStore.SyncBatch, error) {
	batch := catalogStore.SyncBatch{Scope: scope}

	baseCats, err := deps.CatalogStore.ListCategories(ctx, catalog.ScopeBase)
	if err != nil {
		return batch, err
	}
	userCats, err := deps.CatalogStore.ListCategories(ctx, scope)
	if err != nil {
		return batch, err
	}
	haveCat := make(map[string]bool, len(userCats))
	for _, c := range userCats {
		haveCat[c.Name] = true
	}
	for _, c := range baseCats {
		if !haveCat[c.Name] {
			batch.Categories = append(batch.Categories, catalog.Category{
				ID: deps.GenerateID(), Scope: scope, Name: c.Name,
			})
		}
	}

	baseExs, err := deps.CatalogStore.ListExercises(ctx, catalog.ScopeBase)
	if err != nil {
		return batch, err
	}
	userExs, err := deps.CatalogStore.ListExercises(ctx, scope)
	if err != nil {
		return batch, err
	}
	haveEx := make(map[string]bool, len(userExs))
	for _, e := range userExs {
		haveEx[e.Name] = true
	}
	for _, e := range baseExs {
		if !haveEx[e.Name] {
			batch.Exercises = append(batch.Exercises, catalog.Exercise{
				ID: deps.GenerateID(), Scope: scope, Name: e.Name, DefaultNotes: e.DefaultNotes,
			})
		}
	}

	baseLinks, err := deps.CatalogStore.ListLinks(ctx, catalog.ScopeBase)
	if err != nil {
		return batch, err
	}
	userLinks, err := deps.CatalogStore.ListLinks(ctx, scope)
	if err != nil {
		return batch, err
	}
	haveLink := make(map[catalog.NamePair]bool, len(userLinks))
	for _, p := range userLinks {
		haveLink[p] = true
	}
	for _, p := range baseLinks {
		if !haveLink[p] {
			batch.Links = append(batch.Links, p)
		}
	}

	return batch, nil
}
