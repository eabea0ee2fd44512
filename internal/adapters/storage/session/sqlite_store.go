package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"architect/internal/adapters/storage"
	"architect/internal/apperr"
	domain "architect/internal/domain/session"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// SaveLog persists a workout log and all of its sets in one transaction.
// The workout must belong to the scope's plan hierarchy and every entry must
// reference one of that workout's planned exercises; a workout outside the
// scope reads as not-found. The workout_id UNIQUE constraint rejects a
// second log for the same workout, which surfaces as an integrity error.
// PRE: l has been validated (WorkoutLog.Validate)
// POST: Either the log and every set row is persisted or none is
func (s *SQLiteStore) SaveLog(ctx context.Context, scope string, l domain.WorkoutLog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Wrap(apperr.KindConnectivity, "session.SaveLog", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, `
		SELECT 1
		FROM workout w
		JOIN minicycle m ON m.id = w.mini_id
		JOIN macrocycle mc ON mc.id = m.macro_id
		WHERE w.id = ? AND mc.scope = ?`, l.WorkoutID, scope).Scan(&one)
	if err == sql.ErrNoRows {
		return apperr.Wrap(apperr.KindNotFound, "session.SaveLog", fmt.Errorf("workout %s not found", l.WorkoutID))
	}
	if err != nil {
		return apperr.Wrap(apperr.KindConnectivity, "session.SaveLog", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO workout_log (id, workout_id, completed_at, notes) VALUES (?, ?, ?, ?)",
		l.ID, l.WorkoutID, l.CompletedAt.UTC().Format(time.RFC3339Nano), l.Notes); err != nil {
		return storage.ClassifyWriteError("session.SaveLog.log", err)
	}

	for ei, e := range l.Entries {
		err = tx.QueryRowContext(ctx,
			"SELECT 1 FROM planned_exercise WHERE id = ? AND workout_id = ?",
			e.PlannedExerciseID, l.WorkoutID).Scan(&one)
		if err == sql.ErrNoRows {
			return apperr.Wrap(apperr.KindIntegrity, "session.SaveLog",
				fmt.Errorf("planned exercise %s does not belong to workout %s", e.PlannedExerciseID, l.WorkoutID))
		}
		if err != nil {
			return apperr.Wrap(apperr.KindConnectivity, "session.SaveLog", err)
		}
		for si, set := range e.Sets {
			// Set ids are derived from the log id; sets are never
			// addressed outside their log.
			setID := fmt.Sprintf("%s-%d-%d", l.ID, ei, si)
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO logged_set (id, log_id, planned_exercise_id, set_index, reps, weight, rpe) VALUES (?, ?, ?, ?, ?, ?, ?)",
				setID, l.ID, e.PlannedExerciseID, si, set.Reps, set.Weight, set.RPE); err != nil {
				return storage.ClassifyWriteError("session.SaveLog.set", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Wrap(apperr.KindConnectivity, "session.SaveLog", err)
	}
	return nil
}

// GetByWorkout retrieves the log recorded against a workout, with its sets
// grouped back into per-exercise entries in recorded order. A log whose
// workout belongs to a different scope reads as not-found.
func (s *SQLiteStore) GetByWorkout(ctx context.Context, scope, workoutID string) (domain.WorkoutLog, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT wl.id, wl.workout_id, wl.completed_at, wl.notes
		FROM workout_log wl
		JOIN workout w ON w.id = wl.workout_id
		JOIN minicycle m ON m.id = w.mini_id
		JOIN macrocycle mc ON mc.id = m.macro_id
		WHERE wl.workout_id = ? AND mc.scope = ?`, workoutID, scope)

	var l domain.WorkoutLog
	var completedAt string
	err := row.Scan(&l.ID, &l.WorkoutID, &completedAt, &l.Notes)
	if err == sql.ErrNoRows {
		return domain.WorkoutLog{}, apperr.Wrap(apperr.KindNotFound, "session.GetByWorkout", fmt.Errorf("no log for workout %s", workoutID))
	}
	if err != nil {
		return domain.WorkoutLog{}, err
	}
	l.CompletedAt, err = time.Parse(time.RFC3339Nano, completedAt)
	if err != nil {
		return domain.WorkoutLog{}, fmt.Errorf("corrupt completed_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT planned_exercise_id, set_index, reps, weight, rpe
		FROM logged_set
		WHERE log_id = ?
		ORDER BY rowid`, l.ID)
	if err != nil {
		return domain.WorkoutLog{}, err
	}
	defer rows.Close()

	entryIdx := make(map[string]int)
	for rows.Next() {
		var peID string
		var setIndex int
		var set domain.LoggedSet
		if err := rows.Scan(&peID, &setIndex, &set.Reps, &set.Weight, &set.RPE); err != nil {
			return domain.WorkoutLog{}, err
		}
		i, ok := entryIdx[peID]
		if !ok {
			i = len(l.Entries)
			entryIdx[peID] = i
			l.Entries = append(l.Entries, domain.LoggedExercise{PlannedExerciseID: peID})
		}
		l.Entries[i].Sets = append(l.Entries[i].Sets, set)
	}
	return l, rows.Err()
}

// LoggedWorkoutIDs returns the set of workout ids in a scope that already
// have a completed log.
func (s *SQLiteStore) LoggedWorkoutIDs(ctx context.Context, scope string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT wl.workout_id
		FROM workout_log wl
		JOIN workout w ON w.id = wl.workout_id
		JOIN minicycle m ON m.id = w.mini_id
		JOIN macrocycle mc ON mc.id = m.macro_id
		WHERE mc.scope = ?`, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// CountLogs returns the number of completed sessions in a scope.
func (s *SQLiteStore) CountLogs(ctx context.Context, scope string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM workout_log wl
		JOIN workout w ON w.id = wl.workout_id
		JOIN minicycle m ON m.id = w.mini_id
		JOIN macrocycle mc ON mc.id = m.macro_id
		WHERE mc.scope = ?`, scope).Scan(&n)
	return n, err
}
