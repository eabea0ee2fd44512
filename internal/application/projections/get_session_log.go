package projections

import (
	"context"
	"log/slog"

	"architect/internal/apperr"
	"architect/internal/domain/session"
)

// SessionStoreForLogs defines the session reads needed by the log views.
type SessionStoreForLogs interface {
	GetByWorkout(ctx context.Context, scope, workoutID string) (session.WorkoutLog, error)
	LoggedWorkoutIDs(ctx context.Context, scope string) (map[string]bool, error)
}

// SessionLogDeps holds dependencies for the session-log views.
type SessionLogDeps struct {
	SessionStore SessionStoreForLogs
}

// QuerySessionLog returns the completed log for one workout in the scope, if
// any. A workout owned by another scope reads the same as an unlogged one.
// Read failures degrade to "no log" with a logged warning.
func QuerySessionLog(ctx context.Context, scope, workoutID string, deps SessionLogDeps) (session.WorkoutLog, bool) {
	l, err := deps.SessionStore.GetByWorkout(ctx, scope, workoutID)
	if apperr.IsNotFound(err) {
		return session.WorkoutLog{}, false
	}
	if err != nil {
		slog.Warn("view_event", "event", "session_log_read_failed", "scope", scope, "workout_id", workoutID, "error", err)
		return session.WorkoutLog{}, false
	}
	return l, true
}

// QueryLoggedWorkouts returns the ids of every workout in the scope that has
// a completed log, for marking plan views. Read failures degrade to an empty
// set with a logged warning.
func QueryLoggedWorkouts(ctx context.Context, scope string, deps SessionLogDeps) map[string]bool {
	ids, err := deps.SessionStore.LoggedWorkoutIDs(ctx, scope)
	if err != nil {
		slog.Warn("view_event", "event", "logged_workouts_read_failed", "scope", scope, "error", err)
		return map[string]bool{}
	}
	return ids
}
