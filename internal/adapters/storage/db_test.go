package storage_test

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"

	"architect/internal/adapters/storage"
	"architect/internal/apperr"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// In-memory SQLite gives every connection its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after schema init.
var expectedTables = []string{
	"account",
	"category",
	"exercise",
	"exercise_category",
	"logged_set",
	"macrocycle",
	"minicycle",
	"planned_exercise",
	"workout",
	"workout_log",
}

// TestInitDB_CreatesAllTables tests that every table exists after init.
func TestInitDB_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Fatalf("expected %d tables, got %d: %v", len(expectedTables), len(got), got)
	}
	for i, name := range expectedTables {
		if got[i] != name {
			t.Errorf("table %d: expected %q, got %q", i, name, got[i])
		}
	}
}

// TestInitDB_Idempotent tests that running init twice is safe.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}
}

// TestInitDB_ForeignKeysEnabled tests that FK enforcement is on, which the
// cascade-delete behavior depends on.
func TestInitDB_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	var on int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&on); err != nil {
		t.Fatalf("failed to read pragma: %v", err)
	}
	if on != 1 {
		t.Error("expected foreign_keys pragma to be enabled")
	}

	// A child row pointing at a missing parent must be rejected.
	_, err := db.Exec("INSERT INTO minicycle (id, macro_id, week, name) VALUES ('x', 'missing', 1, 'Week 1')")
	if err == nil {
		t.Error("expected foreign key violation for orphan minicycle")
	}
}

// TestClassifyWriteError tests error kind mapping.
func TestClassifyWriteError(t *testing.T) {
	db := openTestDB(t)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	_, err := db.Exec("INSERT INTO category (id, scope, name) VALUES ('c1', 'base', 'Chest')")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	_, err = db.Exec("INSERT INTO category (id, scope, name) VALUES ('c2', 'base', 'Chest')")
	if err == nil {
		t.Fatal("expected unique violation")
	}

	wrapped := storage.ClassifyWriteError("category.insert", err)
	if !apperr.IsIntegrity(wrapped) {
		t.Errorf("expected integrity kind, got %v", apperr.KindOf(wrapped))
	}

	if storage.ClassifyWriteError("op", nil) != nil {
		t.Error("expected nil for nil error")
	}
}
