package plan

import (
	"context"

	domain "architect/internal/domain/plan"
)

// UpNext identifies the next workout without a completed session log.
type UpNext struct {
	WorkoutID   string
	WorkoutName string
	WeekName    string
	PlanName    string
}

// Store persists the plan hierarchy. SaveTree and Delete are all-or-nothing:
// a failure mid-sequence leaves no partial rows behind.
type Store interface {
	SaveTree(ctx context.Context, t domain.Tree) error
	List(ctx context.Context, scope string) ([]domain.Macrocycle, error)
	GetTree(ctx context.Context, scope, macroID string) (domain.Tree, error)
	Delete(ctx context.Context, scope, macroID string) error
	Count(ctx context.Context, scope string) (int, error)
	FirstUnloggedWorkout(ctx context.Context, scope string) (UpNext, bool, error)
}
