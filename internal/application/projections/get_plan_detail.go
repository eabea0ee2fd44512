package projections

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"architect/internal/apperr"
	"architect/internal/domain/catalog"
	"architect/internal/domain/plan"
)

// PlanStoreForDetail defines the store interface needed by the detail view.
type PlanStoreForDetail interface {
	GetTree(ctx context.Context, scope, macroID string) (plan.Tree, error)
}

// CatalogStoreForDetail defines the catalog reads needed to resolve display
// names and category tags.
type CatalogStoreForDetail interface {
	ListExercises(ctx context.Context, scope string) ([]catalog.Exercise, error)
	CategoriesByExercise(ctx context.Context, scope string) (map[string][]string, error)
}

// PlanDetail is the fully resolved nested view of one macrocycle.
type PlanDetail struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Weeks     []WeekView
}

// WeekView is one minicycle with its workouts in sequence order.
type WeekView struct {
	Name     string
	Workouts []WorkoutView
}

// WorkoutView is one workout day with its exercises in authored order.
type WorkoutView struct {
	ID        string
	Name      string
	Exercises []ExerciseView
}

// ExerciseView is one planned exercise with resolved display fields. ID is
// the planned-exercise id, which session logging refers back to.
type ExerciseView struct {
	ID         string
	Name       string
	Categories string // comma-joined category names
	Sets       int
	TargetRIR  []int
	Notes      string
}

// PlanDetailDeps holds dependencies for the detail view.
type PlanDetailDeps struct {
	PlanStore    PlanStoreForDetail
	CatalogStore CatalogStoreForDetail
	Cache        *ViewCache // optional
}

// QueryPlanDetail reconstructs the display tree for one macrocycle. A
// missing id returns found=false; read failures degrade the same way with
// a logged warning.
func QueryPlanDetail(ctx context.Context, scope, macroID string, deps PlanDetailDeps) (PlanDetail, bool) {
	cacheKey := "plan_detail:" + macroID
	if deps.Cache != nil {
		if v, ok := deps.Cache.Get(scope, cacheKey); ok {
			return v.(PlanDetail), true
		}
	}

	tree, err := deps.PlanStore.GetTree(ctx, scope, macroID)
	if apperr.IsNotFound(err) {
		return PlanDetail{}, false
	}
	if err != nil {
		slog.Warn("view_event", "event", "plan_detail_read_failed", "scope", scope, "macro_id", macroID, "error", err)
		return PlanDetail{}, false
	}

	nameByID, catsByID, err := exerciseDisplayData(ctx, scope, deps.CatalogStore)
	if err != nil {
		slog.Warn("view_event", "event", "plan_detail_read_failed", "scope", scope, "macro_id", macroID, "error", err)
		return PlanDetail{}, false
	}

	detail := PlanDetail{
		ID:        tree.Macro.ID,
		Name:      tree.Macro.Name,
		CreatedAt: tree.Macro.CreatedAt,
	}
	for _, wk := range tree.Weeks {
		wv := WeekView{Name: wk.Mini.Name}
		for _, wo := range wk.Workouts {
			wov := WorkoutView{ID: wo.Workout.ID, Name: wo.Workout.Name}
			for _, pe := range wo.Exercises {
				wov.Exercises = append(wov.Exercises, ExerciseView{
					ID:         pe.ID,
					Name:       nameByID[pe.ExerciseID],
					Categories: strings.Join(catsByID[pe.ExerciseID], ", "),
					Sets:       pe.Sets,
					TargetRIR:  pe.TargetRIR,
					Notes:      pe.Notes,
				})
			}
			wv.Workouts = append(wv.Workouts, wov)
		}
		detail.Weeks = append(detail.Weeks, wv)
	}

	if deps.Cache != nil {
		deps.Cache.Put(scope, cacheKey, detail)
	}
	return detail, true
}

// exerciseDisplayData reads the scope's catalog once, so rendering never
// does per-row lookups.
func exerciseDisplayData(ctx context.Context, scope string, store CatalogStoreForDetail) (map[string]string, map[string][]string, error) {
	exercises, err := store.ListExercises(ctx, scope)
	if err != nil {
		return nil, nil, err
	}
	nameByID := make(map[string]string, len(exercises))
	for _, e := range exercises {
		nameByID[e.ID] = e.Name
	}
	catsByID, err := store.CategoriesByExercise(ctx, scope)
	if err != nil {
		return nil, nil, err
	}
	return nameByID, catsByID, nil
}
