package projections

import (
	"context"
	"log/slog"

	planStore "architect/internal/adapters/storage/plan"
)

// PlanStoreForNext defines the store interface needed by the next-workout view.
type PlanStoreForNext interface {
	FirstUnloggedWorkout(ctx context.Context, scope string) (planStore.UpNext, bool, error)
}

// NextWorkoutDeps holds dependencies for the next-workout view.
type NextWorkoutDeps struct {
	PlanStore PlanStoreForNext
}

// QueryNextWorkout returns the earliest workout without a completed session
// log, in plan/week/day order. Read failures degrade to "nothing up next"
// with a logged warning.
func QueryNextWorkout(ctx context.Context, scope string, deps NextWorkoutDeps) (planStore.UpNext, bool) {
	next, ok, err := deps.PlanStore.FirstUnloggedWorkout(ctx, scope)
	if err != nil {
		slog.Warn("view_event", "event", "next_workout_read_failed", "scope", scope, "error", err)
		return planStore.UpNext{}, false
	}
	return next, ok
}
