package session

import (
	"context"

	domain "architect/internal/domain/session"
)

// Store persists workout logs. SaveLog is all-or-nothing: a failure
// mid-sequence leaves no partial rows behind. Every operation is scoped:
// a workout outside the scope is indistinguishable from a missing one.
type Store interface {
	SaveLog(ctx context.Context, scope string, l domain.WorkoutLog) error
	GetByWorkout(ctx context.Context, scope, workoutID string) (domain.WorkoutLog, error)
	LoggedWorkoutIDs(ctx context.Context, scope string) (map[string]bool, error)
	CountLogs(ctx context.Context, scope string) (int, error)
}
