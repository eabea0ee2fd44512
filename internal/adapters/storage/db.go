package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"architect/internal/apperr"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode and foreign keys enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement; cascade deletes depend on it
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. The plan hierarchy declares ON DELETE CASCADE top to
	// bottom so deleting a macrocycle can never leave orphaned children.
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS category (
		id TEXT PRIMARY KEY,
		scope TEXT NOT NULL,
		name TEXT NOT NULL,
		UNIQUE (scope, name)
	);

	CREATE TABLE IF NOT EXISTS exercise (
		id TEXT PRIMARY KEY,
		scope TEXT NOT NULL,
		name TEXT NOT NULL,
		default_notes TEXT NOT NULL DEFAULT '',
		UNIQUE (scope, name)
	);

	CREATE TABLE IF NOT EXISTS exercise_category (
		exercise_id TEXT NOT NULL,
		category_id TEXT NOT NULL,
		PRIMARY KEY (exercise_id, category_id),
		FOREIGN KEY (exercise_id) REFERENCES exercise(id) ON DELETE CASCADE,
		FOREIGN KEY (category_id) REFERENCES category(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS macrocycle (
		id TEXT PRIMARY KEY,
		scope TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS minicycle (
		id TEXT PRIMARY KEY,
		macro_id TEXT NOT NULL,
		week INTEGER NOT NULL,
		name TEXT NOT NULL,
		FOREIGN KEY (macro_id) REFERENCES macrocycle(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS workout (
		id TEXT PRIMARY KEY,
		mini_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		FOREIGN KEY (mini_id) REFERENCES minicycle(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS planned_exercise (
		id TEXT PRIMARY KEY,
		workout_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		exercise_id TEXT NOT NULL,
		sets INTEGER NOT NULL,
		target_rir_json TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (workout_id) REFERENCES workout(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercise(id)
	);

	CREATE TABLE IF NOT EXISTS workout_log (
		id TEXT PRIMARY KEY,
		workout_id TEXT NOT NULL UNIQUE,
		completed_at TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (workout_id) REFERENCES workout(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS logged_set (
		id TEXT PRIMARY KEY,
		log_id TEXT NOT NULL,
		planned_exercise_id TEXT NOT NULL,
		set_index INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		weight REAL NOT NULL,
		rpe INTEGER NOT NULL,
		FOREIGN KEY (log_id) REFERENCES workout_log(id) ON DELETE CASCADE,
		FOREIGN KEY (planned_exercise_id) REFERENCES planned_exercise(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_minicycle_macro ON minicycle(macro_id);
	CREATE INDEX IF NOT EXISTS idx_workout_mini ON workout(mini_id);
	CREATE INDEX IF NOT EXISTS idx_planned_exercise_workout ON planned_exercise(workout_id);
	CREATE INDEX IF NOT EXISTS idx_macrocycle_scope ON macrocycle(scope);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// ClassifyWriteError maps a driver error to an apperr kind: constraint
// violations become integrity errors, everything else is treated as a
// connectivity failure of the persistence layer.
func ClassifyWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "constraint") || strings.Contains(msg, "unique") || strings.Contains(msg, "foreign key") {
		return apperr.Wrap(apperr.KindIntegrity, op, err)
	}
	return apperr.Wrap(apperr.KindConnectivity, op, err)
}
