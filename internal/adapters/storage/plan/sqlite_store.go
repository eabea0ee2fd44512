package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"architect/internal/adapters/storage"
	"architect/internal/apperr"
	domain "architect/internal/domain/plan"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new plan store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// encodeRIR serializes the per-set RIR targets for the target_rir_json column.
func encodeRIR(rirs []int) (string, error) {
	b, err := json.Marshal(rirs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeRIR parses the target_rir_json column.
func decodeRIR(raw string) ([]int, error) {
	var rirs []int
	if err := json.Unmarshal([]byte(raw), &rirs); err != nil {
		return nil, fmt.Errorf("corrupt target RIR list: %w", err)
	}
	return rirs, nil
}

// SaveTree persists a fully expanded macrocycle in one transaction, inserting
// in parent-before-child order so foreign keys are always satisfiable. Any
// insert failure rolls the whole plan back.
// PRE: t has been validated (Tree.Validate)
// POST: Either every row of the tree is persisted or none is
func (s *SQLiteStore) SaveTree(ctx context.Context, t domain.Tree) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Wrap(apperr.KindConnectivity, "plan.SaveTree", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO macrocycle (id, scope, name, created_at) VALUES (?, ?, ?, ?)",
		t.Macro.ID, t.Macro.Scope, t.Macro.Name, t.Macro.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return storage.ClassifyWriteError("plan.SaveTree.macrocycle", err)
	}

	for _, wk := range t.Weeks {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO minicycle (id, macro_id, week, name) VALUES (?, ?, ?, ?)",
			wk.Mini.ID, wk.Mini.MacroID, wk.Mini.Week, wk.Mini.Name); err != nil {
			return storage.ClassifyWriteError("plan.SaveTree.minicycle", err)
		}
		for _, wo := range wk.Workouts {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO workout (id, mini_id, seq, name) VALUES (?, ?, ?, ?)",
				wo.Workout.ID, wo.Workout.MiniID, wo.Workout.Seq, wo.Workout.Name); err != nil {
				return storage.ClassifyWriteError("plan.SaveTree.workout", err)
			}
			for _, pe := range wo.Exercises {
				rir, err := encodeRIR(pe.TargetRIR)
				if err != nil {
					return apperr.Wrap(apperr.KindValidation, "plan.SaveTree.plannedExercise", err)
				}
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO planned_exercise (id, workout_id, seq, exercise_id, sets, target_rir_json, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
					pe.ID, pe.WorkoutID, pe.Seq, pe.ExerciseID, pe.Sets, rir, pe.Notes); err != nil {
					return storage.ClassifyWriteError("plan.SaveTree.plannedExercise", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Wrap(apperr.KindConnectivity, "plan.SaveTree", err)
	}
	return nil
}

// List retrieves the macrocycles of a scope, oldest first.
func (s *SQLiteStore) List(ctx context.Context, scope string) ([]domain.Macrocycle, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, scope, name, created_at FROM macrocycle WHERE scope = ? ORDER BY created_at, id", scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Macrocycle
	for rows.Next() {
		m, err := scanMacro(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// Count returns the number of macrocycles in a scope.
func (s *SQLiteStore) Count(ctx context.Context, scope string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM macrocycle WHERE scope = ?", scope).Scan(&n)
	return n, err
}

// GetTree reconstructs the full hierarchy for one macrocycle in a bounded
// set of queries. MiniCycles come back ordered by week number, Workouts and
// PlannedExercises by their stored sequence.
// PRE: macroID is non-empty
// POST: Returns the tree, or a not-found error if the id is absent from the scope
func (s *SQLiteStore) GetTree(ctx context.Context, scope, macroID string) (domain.Tree, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, scope, name, created_at FROM macrocycle WHERE id = ? AND scope = ?", macroID, scope)
	macro, err := scanMacro(row)
	if err == sql.ErrNoRows {
		return domain.Tree{}, apperr.Wrap(apperr.KindNotFound, "plan.GetTree", fmt.Errorf("macrocycle %s not found", macroID))
	}
	if err != nil {
		return domain.Tree{}, err
	}
	t := domain.Tree{Macro: macro}

	miniRows, err := s.db.QueryContext(ctx,
		"SELECT id, macro_id, week, name FROM minicycle WHERE macro_id = ? ORDER BY week", macroID)
	if err != nil {
		return domain.Tree{}, err
	}
	defer miniRows.Close()

	weekIdx := make(map[string]int)
	for miniRows.Next() {
		var mc domain.MiniCycle
		if err := miniRows.Scan(&mc.ID, &mc.MacroID, &mc.Week, &mc.Name); err != nil {
			return domain.Tree{}, err
		}
		weekIdx[mc.ID] = len(t.Weeks)
		t.Weeks = append(t.Weeks, domain.WeekNode{Mini: mc})
	}
	if err := miniRows.Err(); err != nil {
		return domain.Tree{}, err
	}

	workoutRows, err := s.db.QueryContext(ctx, `
		SELECT w.id, w.mini_id, w.seq, w.name
		FROM workout w
		JOIN minicycle m ON m.id = w.mini_id
		WHERE m.macro_id = ?
		ORDER BY m.week, w.seq`, macroID)
	if err != nil {
		return domain.Tree{}, err
	}
	defer workoutRows.Close()

	workoutIdx := make(map[string][2]int) // workout id -> (week index, workout index)
	for workoutRows.Next() {
		var w domain.Workout
		if err := workoutRows.Scan(&w.ID, &w.MiniID, &w.Seq, &w.Name); err != nil {
			return domain.Tree{}, err
		}
		wi := weekIdx[w.MiniID]
		workoutIdx[w.ID] = [2]int{wi, len(t.Weeks[wi].Workouts)}
		t.Weeks[wi].Workouts = append(t.Weeks[wi].Workouts, domain.WorkoutNode{Workout: w})
	}
	if err := workoutRows.Err(); err != nil {
		return domain.Tree{}, err
	}

	peRows, err := s.db.QueryContext(ctx, `
		SELECT pe.id, pe.workout_id, pe.seq, pe.exercise_id, pe.sets, pe.target_rir_json, pe.notes
		FROM planned_exercise pe
		JOIN workout w ON w.id = pe.workout_id
		JOIN minicycle m ON m.id = w.mini_id
		WHERE m.macro_id = ?
		ORDER BY m.week, w.seq, pe.seq`, macroID)
	if err != nil {
		return domain.Tree{}, err
	}
	defer peRows.Close()

	for peRows.Next() {
		var pe domain.PlannedExercise
		var rirJSON string
		if err := peRows.Scan(&pe.ID, &pe.WorkoutID, &pe.Seq, &pe.ExerciseID, &pe.Sets, &rirJSON, &pe.Notes); err != nil {
			return domain.Tree{}, err
		}
		pe.TargetRIR, err = decodeRIR(rirJSON)
		if err != nil {
			return domain.Tree{}, err
		}
		pos := workoutIdx[pe.WorkoutID]
		node := &t.Weeks[pos[0]].Workouts[pos[1]]
		node.Exercises = append(node.Exercises, pe)
	}
	return t, peRows.Err()
}

// Delete removes a macrocycle and cascades to every minicycle, workout and
// planned exercise beneath it.
// PRE: macroID is non-empty
// POST: No row of the subtree remains; not-found if the id was absent
func (s *SQLiteStore) Delete(ctx context.Context, scope, macroID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM macrocycle WHERE id = ? AND scope = ?", macroID, scope)
	if err != nil {
		return storage.ClassifyWriteError("plan.Delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.Wrap(apperr.KindNotFound, "plan.Delete", fmt.Errorf("macrocycle %s not found", macroID))
	}
	return nil
}

// FirstUnloggedWorkout finds the earliest workout in plan/week/day order
// with no completed session log.
func (s *SQLiteStore) FirstUnloggedWorkout(ctx context.Context, scope string) (UpNext, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT w.id, w.name, m.name, mc.name
		FROM workout w
		JOIN minicycle m ON m.id = w.mini_id
		JOIN macrocycle mc ON mc.id = m.macro_id
		LEFT JOIN workout_log wl ON wl.workout_id = w.id
		WHERE wl.id IS NULL AND mc.scope = ?
		ORDER BY mc.created_at, mc.id, m.week, w.seq
		LIMIT 1`, scope)

	var next UpNext
	err := row.Scan(&next.WorkoutID, &next.WorkoutName, &next.WeekName, &next.PlanName)
	if err == sql.ErrNoRows {
		return UpNext{}, false, nil
	}
	if err != nil {
		return UpNext{}, false, err
	}
	return next, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMacro(r rowScanner) (domain.Macrocycle, error) {
	var m domain.Macrocycle
	var createdAt string
	if err := r.Scan(&m.ID, &m.Scope, &m.Name, &createdAt); err != nil {
		return domain.Macrocycle{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return domain.Macrocycle{}, fmt.Errorf("corrupt created_at: %w", err)
	}
	m.CreatedAt = ts
	return m, nil
}
