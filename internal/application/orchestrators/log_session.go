package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"architect/internal/domain/session"
)

// SessionStoreForLog defines the store interface needed by LogSession.
type SessionStoreForLog interface {
	SaveLog(ctx context.Context, scope string, l session.WorkoutLog) error
}

// LogSessionInput carries input for the session logger.
type LogSessionInput struct {
	Scope     string
	WorkoutID string
	Notes     string
	Entries   []session.LoggedExercise
}

// LogSessionDeps holds dependencies for LogSession.
type LogSessionDeps struct {
	SessionStore SessionStoreForLog
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteLogSession records a completed training session against a workout
// in the caller's scope. The store rejects a workout outside the scope as
// not-found and an entry outside the workout as an integrity error; a second
// log for the same workout is rejected by the uniqueness rule.
// PRE: input.Scope is the authenticated account's scope
// POST: The log and all its sets are persisted, or nothing is
func ExecuteLogSession(ctx context.Context, input LogSessionInput, deps LogSessionDeps) (string, error) {
	l := session.WorkoutLog{
		ID:          deps.GenerateID(),
		WorkoutID:   input.WorkoutID,
		CompletedAt: deps.Now(),
		Notes:       input.Notes,
		Entries:     input.Entries,
	}
	if err := l.Validate(); err != nil {
		return "", err
	}

	if err := deps.SessionStore.SaveLog(ctx, input.Scope, l); err != nil {
		return "", err
	}

	slog.Info("session_event", "event", "workout_logged", "scope", input.Scope,
		"workout_id", input.WorkoutID, "log_id", l.ID, "exercises", len(l.Entries))
	return l.ID, nil
}
