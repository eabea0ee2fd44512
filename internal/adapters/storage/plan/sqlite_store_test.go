package plan_test

import (
	"context"
	"database/sql"
	"reflect"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"architect/internal/adapters/storage"
	catalogStore "architect/internal/adapters/storage/catalog"
	planStore "architect/internal/adapters/storage/plan"
	"architect/internal/apperr"
	"architect/internal/domain/catalog"
	"architect/internal/domain/plan"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// In-memory SQLite gives every connection its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	return db
}

// seedExercise inserts one catalog exercise and returns its id.
func seedExercise(t *testing.T, db *sql.DB, name string) string {
	t.Helper()
	ex, err := catalogStore.NewSQLiteStore(db).EnsureExercise(context.Background(),
		catalog.Exercise{ID: "ex-" + name, Scope: "user-001", Name: name})
	if err != nil {
		t.Fatalf("seed exercise failed: %v", err)
	}
	return ex.ID
}

// twoWeekTree builds a small valid tree: 2 weeks x 1 workout x 1 exercise.
func twoWeekTree(exerciseID string) plan.Tree {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	t := plan.Tree{
		Macro: plan.Macrocycle{ID: "m1", Scope: "user-001", Name: "Winter Bulk", CreatedAt: created},
	}
	for week := 1; week <= 2; week++ {
		miniID := "mc" + plan.WeekName(week)
		wk := plan.WeekNode{
			Mini: plan.MiniCycle{ID: miniID, MacroID: "m1", Week: week, Name: plan.WeekName(week)},
		}
		workoutID := miniID + "-w0"
		wk.Workouts = append(wk.Workouts, plan.WorkoutNode{
			Workout: plan.Workout{ID: workoutID, MiniID: miniID, Seq: 0, Name: "Day 1"},
			Exercises: []plan.PlannedExercise{
				{ID: workoutID + "-p0", WorkoutID: workoutID, Seq: 0, ExerciseID: exerciseID, Sets: 3, TargetRIR: []int{2, 2, 1}},
			},
		})
		t.Weeks = append(t.Weeks, wk)
	}
	return t
}

// TestSaveTree_RoundTrip tests that a saved tree reads back identically.
func TestSaveTree_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := planStore.NewSQLiteStore(db)
	ctx := context.Background()
	exID := seedExercise(t, db, "Deadlift")

	tree := twoWeekTree(exID)
	if err := tree.Validate(); err != nil {
		t.Fatalf("test tree invalid: %v", err)
	}
	if err := store.SaveTree(ctx, tree); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	got, err := store.GetTree(ctx, "user-001", "m1")
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}
	if got.Macro.Name != "Winter Bulk" {
		t.Errorf("macro name = %q", got.Macro.Name)
	}
	if len(got.Weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(got.Weeks))
	}
	for i, wk := range got.Weeks {
		if wk.Mini.Week != i+1 || wk.Mini.Name != plan.WeekName(i+1) {
			t.Errorf("week %d: got %+v", i, wk.Mini)
		}
		if len(wk.Workouts) != 1 {
			t.Fatalf("week %d: expected 1 workout, got %d", i, len(wk.Workouts))
		}
		pe := wk.Workouts[0].Exercises[0]
		if pe.Sets != 3 || !reflect.DeepEqual(pe.TargetRIR, []int{2, 2, 1}) {
			t.Errorf("week %d: planned exercise %+v", i, pe)
		}
		if pe.ExerciseID != exID {
			t.Errorf("week %d: exercise id %q, want %q", i, pe.ExerciseID, exID)
		}
	}
}

// TestSaveTree_RollsBackOnFailure tests that a mid-tree foreign key failure
// leaves zero rows behind.
func TestSaveTree_RollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	store := planStore.NewSQLiteStore(db)
	ctx := context.Background()
	exID := seedExercise(t, db, "Deadlift")

	tree := twoWeekTree(exID)
	// Point the second week's planned exercise at a nonexistent catalog row.
	tree.Weeks[1].Workouts[0].Exercises[0].ExerciseID = "missing"

	err := store.SaveTree(ctx, tree)
	if err == nil {
		t.Fatal("expected foreign key failure")
	}
	if !apperr.IsIntegrity(err) {
		t.Errorf("expected integrity kind, got %v", apperr.KindOf(err))
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM macrocycle").Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 macrocycles after rollback, got %d", n)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM planned_exercise").Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 planned exercises after rollback, got %d", n)
	}
}

// TestGetTree_NotFound tests reads of missing or foreign-scope plans.
func TestGetTree_NotFound(t *testing.T) {
	db := newTestDB(t)
	store := planStore.NewSQLiteStore(db)
	ctx := context.Background()
	exID := seedExercise(t, db, "Deadlift")

	if err := store.SaveTree(ctx, twoWeekTree(exID)); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	if _, err := store.GetTree(ctx, "user-001", "nope"); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
	// A plan must not be readable from another user's scope.
	if _, err := store.GetTree(ctx, "user-002", "m1"); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found across scopes, got %v", err)
	}
}

// TestDelete_Cascades tests that deleting a macrocycle removes the whole
// subtree, and that deleting a missing id reports not-found.
func TestDelete_Cascades(t *testing.T) {
	db := newTestDB(t)
	store := planStore.NewSQLiteStore(db)
	ctx := context.Background()
	exID := seedExercise(t, db, "Deadlift")

	if err := store.SaveTree(ctx, twoWeekTree(exID)); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}
	if err := store.Delete(ctx, "user-001", "m1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetTree(ctx, "user-001", "m1"); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found after delete, got %v", err)
	}
	for _, table := range []string{"minicycle", "workout", "planned_exercise"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		if n != 0 {
			t.Errorf("expected 0 rows in %s after cascade, got %d", table, n)
		}
	}
	// The catalog is untouched by plan deletion.
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM exercise").Scan(&n); err != nil {
		t.Fatalf("count exercise failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected catalog to survive, got %d exercises", n)
	}

	if err := store.Delete(ctx, "user-001", "m1"); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found on second delete, got %v", err)
	}
}

// TestList_OrderedByCreation tests the plan list ordering.
func TestList_OrderedByCreation(t *testing.T) {
	db := newTestDB(t)
	store := planStore.NewSQLiteStore(db)
	ctx := context.Background()
	exID := seedExercise(t, db, "Deadlift")

	older := twoWeekTree(exID)
	newer := twoWeekTree(exID)
	newer.Macro.ID = "m2"
	newer.Macro.Name = "Spring Cut"
	newer.Macro.CreatedAt = older.Macro.CreatedAt.Add(48 * time.Hour)
	for i := range newer.Weeks {
		newer.Weeks[i].Mini.ID = "b-" + newer.Weeks[i].Mini.ID
		newer.Weeks[i].Mini.MacroID = "m2"
		for j := range newer.Weeks[i].Workouts {
			w := &newer.Weeks[i].Workouts[j]
			w.Workout.ID = "b-" + w.Workout.ID
			w.Workout.MiniID = newer.Weeks[i].Mini.ID
			for k := range w.Exercises {
				w.Exercises[k].ID = "b-" + w.Exercises[k].ID
				w.Exercises[k].WorkoutID = w.Workout.ID
			}
		}
	}

	if err := store.SaveTree(ctx, newer); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}
	if err := store.SaveTree(ctx, older); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	list, err := store.List(ctx, "user-001")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(list))
	}
	if list[0].Name != "Winter Bulk" || list[1].Name != "Spring Cut" {
		t.Errorf("unexpected order: %q, %q", list[0].Name, list[1].Name)
	}

	n, err := store.Count(ctx, "user-001")
	if err != nil || n != 2 {
		t.Errorf("Count = %d, %v", n, err)
	}
}

// TestFirstUnloggedWorkout tests next-session selection in week/day order.
func TestFirstUnloggedWorkout(t *testing.T) {
	db := newTestDB(t)
	store := planStore.NewSQLiteStore(db)
	ctx := context.Background()
	exID := seedExercise(t, db, "Deadlift")

	tree := twoWeekTree(exID)
	if err := store.SaveTree(ctx, tree); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	next, ok, err := store.FirstUnloggedWorkout(ctx, "user-001")
	if err != nil || !ok {
		t.Fatalf("FirstUnloggedWorkout = %v, %v", ok, err)
	}
	if next.WeekName != "Week 1" || next.WorkoutName != "Day 1" || next.PlanName != "Winter Bulk" {
		t.Errorf("unexpected next workout: %+v", next)
	}

	// Log week 1's workout; week 2 becomes next.
	if _, err := db.Exec(
		"INSERT INTO workout_log (id, workout_id, completed_at) VALUES ('l1', ?, '2026-08-03T10:00:00Z')",
		next.WorkoutID); err != nil {
		t.Fatalf("insert log failed: %v", err)
	}
	next, ok, err = store.FirstUnloggedWorkout(ctx, "user-001")
	if err != nil || !ok {
		t.Fatalf("FirstUnloggedWorkout = %v, %v", ok, err)
	}
	if next.WeekName != "Week 2" {
		t.Errorf("expected Week 2 next, got %+v", next)
	}

	// Log the remaining workout; nothing is next.
	if _, err := db.Exec(
		"INSERT INTO workout_log (id, workout_id, completed_at) VALUES ('l2', ?, '2026-08-10T10:00:00Z')",
		next.WorkoutID); err != nil {
		t.Fatalf("insert log failed: %v", err)
	}
	_, ok, err = store.FirstUnloggedWorkout(ctx, "user-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no next workout once all are logged")
	}
}
