package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"architect/internal/adapters/storage"
	"architect/internal/apperr"
	domain "architect/internal/domain/catalog"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new catalog store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// FindCategory looks up a category by its natural key.
// PRE: scope and name are non-empty
// POST: Returns the row or a not-found error
func (s *SQLiteStore) FindCategory(ctx context.Context, scope, name string) (domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, scope, name FROM category WHERE scope = ? AND name = ?",
		scope, domain.NormalizeName(name))
	var c domain.Category
	err := row.Scan(&c.ID, &c.Scope, &c.Name)
	if err == sql.ErrNoRows {
		return domain.Category{}, apperr.Wrap(apperr.KindNotFound, "catalog.FindCategory", fmt.Errorf("category %q not in scope %q", name, scope))
	}
	return c, err
}

// EnsureCategory inserts a category if its name is absent from the scope and
// returns the stored row either way. Duplicate-key races are absorbed here:
// insert-if-absent, then fetch the id.
// PRE: c has been validated
// POST: A row with c's scope and name exists; the returned id is the stored one
func (s *SQLiteStore) EnsureCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	c.Name = domain.NormalizeName(c.Name)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO category (id, scope, name) VALUES (?, ?, ?) ON CONFLICT(scope, name) DO NOTHING",
		c.ID, c.Scope, c.Name)
	if err != nil {
		return domain.Category{}, storage.ClassifyWriteError("catalog.EnsureCategory", err)
	}
	return s.FindCategory(ctx, c.Scope, c.Name)
}

// FindExercise looks up an exercise by its natural key.
// PRE: scope and name are non-empty
// POST: Returns the row or a not-found error
func (s *SQLiteStore) FindExercise(ctx context.Context, scope, name string) (domain.Exercise, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, scope, name, default_notes FROM exercise WHERE scope = ? AND name = ?",
		scope, domain.NormalizeName(name))
	var e domain.Exercise
	err := row.Scan(&e.ID, &e.Scope, &e.Name, &e.DefaultNotes)
	if err == sql.ErrNoRows {
		return domain.Exercise{}, apperr.Wrap(apperr.KindNotFound, "catalog.FindExercise", fmt.Errorf("exercise %q not in scope %q", name, scope))
	}
	return e, err
}

// EnsureExercise inserts an exercise if its name is absent from the scope
// and returns the stored row either way.
// PRE: e has been validated
// POST: A row with e's scope and name exists; the returned id is the stored one
func (s *SQLiteStore) EnsureExercise(ctx context.Context, e domain.Exercise) (domain.Exercise, error) {
	e.Name = domain.NormalizeName(e.Name)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO exercise (id, scope, name, default_notes) VALUES (?, ?, ?, ?) ON CONFLICT(scope, name) DO NOTHING",
		e.ID, e.Scope, e.Name, e.DefaultNotes)
	if err != nil {
		return domain.Exercise{}, storage.ClassifyWriteError("catalog.EnsureExercise", err)
	}
	return s.FindExercise(ctx, e.Scope, e.Name)
}

// Link connects an exercise to a category. A no-op if the link exists.
// PRE: both ids reference existing rows
// POST: The link row exists exactly once
func (s *SQLiteStore) Link(ctx context.Context, exerciseID, categoryID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO exercise_category (exercise_id, category_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		exerciseID, categoryID)
	return storage.ClassifyWriteError("catalog.Link", err)
}

// ListCategories retrieves all categories in a scope, ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context, scope string) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, scope, name FROM category WHERE scope = ? ORDER BY name", scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Scope, &c.Name); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// ListExercises retrieves all exercises in a scope, ordered by name.
func (s *SQLiteStore) ListExercises(ctx context.Context, scope string) ([]domain.Exercise, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, scope, name, default_notes FROM exercise WHERE scope = ? ORDER BY name", scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Exercise
	for rows.Next() {
		var e domain.Exercise
		if err := rows.Scan(&e.ID, &e.Scope, &e.Name, &e.DefaultNotes); err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// ListLinks retrieves all exercise↔category links in a scope as name pairs.
func (s *SQLiteStore) ListLinks(ctx context.Context, scope string) ([]domain.NamePair, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.name, c.name
		FROM exercise_category ec
		JOIN exercise e ON e.id = ec.exercise_id
		JOIN category c ON c.id = ec.category_id
		WHERE e.scope = ?
		ORDER BY e.name, c.name`, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.NamePair
	for rows.Next() {
		var p domain.NamePair
		if err := rows.Scan(&p.ExerciseName, &p.CategoryName); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// CategoriesByExercise returns category names keyed by exercise id for a
// scope, each list ordered by name. Built once per read so display code
// never does per-row lookups.
func (s *SQLiteStore) CategoriesByExercise(ctx context.Context, scope string) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ec.exercise_id, c.name
		FROM exercise_category ec
		JOIN exercise e ON e.id = ec.exercise_id
		JOIN category c ON c.id = ec.category_id
		WHERE e.scope = ?
		ORDER BY ec.exercise_id, c.name`, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var exID, catName string
		if err := rows.Scan(&exID, &catName); err != nil {
			return nil, err
		}
		out[exID] = append(out[exID], catName)
	}
	return out, rows.Err()
}

// CountCategories returns the number of categories in a scope.
func (s *SQLiteStore) CountCategories(ctx context.Context, scope string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM category WHERE scope = ?", scope).Scan(&n)
	return n, err
}

// CountExercises returns the number of exercises in a scope.
func (s *SQLiteStore) CountExercises(ctx context.Context, scope string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM exercise WHERE scope = ?", scope).Scan(&n)
	return n, err
}

// ApplyMissing writes a sync batch in one transaction. Any failure rolls
// back all three phases, leaving the scope exactly as it was.
// PRE: batch rows are validated and scoped to batch.Scope
// POST: Either every row is present or none of the batch was applied
func (s *SQLiteStore) ApplyMissing(ctx context.Context, batch SyncBatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Wrap(apperr.KindConnectivity, "catalog.ApplyMissing", err)
	}
	defer tx.Rollback()

	for _, c := range batch.Categories {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO category (id, scope, name) VALUES (?, ?, ?) ON CONFLICT(scope, name) DO NOTHING",
			c.ID, batch.Scope, domain.NormalizeName(c.Name)); err != nil {
			return storage.ClassifyWriteError("catalog.ApplyMissing.category", err)
		}
	}

	for _, e := range batch.Exercises {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO exercise (id, scope, name, default_notes) VALUES (?, ?, ?, ?) ON CONFLICT(scope, name) DO NOTHING",
			e.ID, batch.Scope, domain.NormalizeName(e.Name), e.DefaultNotes); err != nil {
			return storage.ClassifyWriteError("catalog.ApplyMissing.exercise", err)
		}
	}

	// Links resolve ids by natural key inside the transaction, so rows
	// inserted by the two phases above are visible.
	for _, p := range batch.Links {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_category (exercise_id, category_id)
			SELECT e.id, c.id
			FROM exercise e, category c
			WHERE e.scope = ? AND e.name = ? AND c.scope = ? AND c.name = ?
			ON CONFLICT DO NOTHING`,
			batch.Scope, p.ExerciseName, batch.Scope, p.CategoryName); err != nil {
			return storage.ClassifyWriteError("catalog.ApplyMissing.link", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Wrap(apperr.KindConnectivity, "catalog.ApplyMissing", err)
	}
	return nil
}
