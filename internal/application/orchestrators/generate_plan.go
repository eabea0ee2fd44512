package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"architect/internal/domain/catalog"
	"architect/internal/domain/plan"
	"architect/internal/domain/template"
)

// CatalogStoreForGenerate defines the store interface needed by GeneratePlan.
type CatalogStoreForGenerate interface {
	ListExercises(ctx context.Context, scope string) ([]catalog.Exercise, error)
}

// PlanStoreForGenerate defines the store interface needed by GeneratePlan.
type PlanStoreForGenerate interface {
	SaveTree(ctx context.Context, t plan.Tree) error
}

// ViewInvalidator drops cached plan views for a scope after a write.
type ViewInvalidator interface {
	Invalidate(scope string)
}

// GeneratePlanInput carries input for the generator.
type GeneratePlanInput struct {
	Scope    string
	Name     string
	NumWeeks int
	Days     []template.WorkoutTemplate
}

// GeneratePlanDeps holds dependencies for GeneratePlan.
type GeneratePlanDeps struct {
	CatalogStore CatalogStoreForGenerate
	PlanStore    PlanStoreForGenerate
	Views        ViewInvalidator // optional
	ResetEditor  func()          // optional; clears the authoring session on success
	GenerateID   func() string
	Now          func() time.Time
}

var (
	ErrPlanNameEmpty = errors.New("plan name cannot be empty")
	ErrNoDays        = errors.New("plan must contain at least one workout day")
)

// UnresolvedExercisesError reports every named exercise that does not exist
// in the scope's catalog. No rows are written when this is returned.
type UnresolvedExercisesError struct {
	Names []string
}

func (e *UnresolvedExercisesError) Error() string {
	return "unresolved exercise names: " + strings.Join(e.Names, ", ")
}

// ExecuteGeneratePlan validates the authored template and expands it into a
// persisted macrocycle: one minicycle per week, the same day structure
// repeated every week, one planned exercise per named template entry. The
// whole expansion is one all-or-nothing write.
// PRE: Every non-empty exercise name resolves in the scope's catalog
// POST: Either the full tree is persisted and caches are cleared, or nothing
func ExecuteGeneratePlan(ctx context.Context, input GeneratePlanInput, deps GeneratePlanDeps) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", ErrPlanNameEmpty
	}
	if len(input.Days) == 0 {
		return "", ErrNoDays
	}
	if input.NumWeeks < plan.MinWeeks || input.NumWeeks > plan.MaxWeeks {
		return "", fmt.Errorf("number of weeks must be between %d and %d", plan.MinWeeks, plan.MaxWeeks)
	}

	// Resolve every exercise name against one catalog read. Unresolved
	// names are collected, deduplicated and reported together before any
	// row is written.
	exercises, err := deps.CatalogStore.ListExercises(ctx, input.Scope)
	if err != nil {
		return "", err
	}
	idByName := make(map[string]string, len(exercises))
	for _, e := range exercises {
		idByName[e.Name] = e.ID
	}

	var unresolved []string
	seen := make(map[string]bool)
	for _, day := range input.Days {
		for _, ex := range day.Exercises {
			n := catalog.NormalizeName(ex.Name)
			if n == "" {
				continue
			}
			if _, ok := idByName[n]; !ok && !seen[n] {
				seen[n] = true
				unresolved = append(unresolved, n)
			}
		}
	}
	if len(unresolved) > 0 {
		return "", &UnresolvedExercisesError{Names: unresolved}
	}

	tree := expandTree(input, name, idByName, deps)
	if err := tree.Validate(); err != nil {
		return "", err
	}
	if err := deps.PlanStore.SaveTree(ctx, tree); err != nil {
		return "", err
	}

	if deps.Views != nil {
		deps.Views.Invalidate(input.Scope)
	}
	if deps.ResetEditor != nil {
		deps.ResetEditor()
	}

	slog.Info("plan_event", "event", "plan_generated", "scope", input.Scope,
		"macro_id", tree.Macro.ID, "weeks", input.NumWeeks, "days", len(input.Days))
	return tree.Macro.ID, nil
}

// expandTree builds the full hierarchy in parent-before-child order. The
// blueprint is week-invariant: every week repeats the same day structure.
func expandTree(input GeneratePlanInput, name string, idByName map[string]string, deps GeneratePlanDeps) plan.Tree {
	tree := plan.Tree{
		Macro: plan.Macrocycle{
			ID:        deps.GenerateID(),
			Scope:     input.Scope,
			Name:      name,
			CreatedAt: deps.Now(),
		},
	}

	for week := 1; week <= input.NumWeeks; week++ {
		wk := plan.WeekNode{
			Mini: plan.MiniCycle{
				ID:      deps.GenerateID(),
				MacroID: tree.Macro.ID,
				Week:    week,
				Name:    plan.WeekName(week),
			},
		}
		for di, day := range input.Days {
			dayName := strings.TrimSpace(day.Name)
			if dayName == "" {
				dayName = fmt.Sprintf("Day %d", di+1)
			}
			node := plan.WorkoutNode{
				Workout: plan.Workout{
					ID:     deps.GenerateID(),
					MiniID: wk.Mini.ID,
					Seq:    di,
					Name:   dayName,
				},
			}
			seq := 0
			for _, ex := range day.Exercises {
				n := catalog.NormalizeName(ex.Name)
				if n == "" {
					continue
				}
				rir := make([]int, len(ex.RIRs))
				copy(rir, ex.RIRs)
				node.Exercises = append(node.Exercises, plan.PlannedExercise{
					ID:         deps.GenerateID(),
					WorkoutID:  node.Workout.ID,
					Seq:        seq,
					ExerciseID: idByName[n],
					Sets:       ex.Sets,
					TargetRIR:  rir,
					Notes:      ex.Notes,
				})
				seq++
			}
			wk.Workouts = append(wk.Workouts, node)
		}
		tree.Weeks = append(tree.Weeks, wk)
	}
	return tree
}
