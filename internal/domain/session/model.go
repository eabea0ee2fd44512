// Package session records completed training sessions logged against
// persisted workouts. At most one log exists per workout.
package session

import (
	"errors"
	"time"
)

// RPE bounds for a logged set.
const (
	MinRPE = 1
	MaxRPE = 10
)

// Domain errors
var (
	ErrMissingWorkout  = errors.New("log must reference a workout")
	ErrNoEntries       = errors.New("log must contain at least one exercise entry")
	ErrMissingPlanned  = errors.New("entry must reference a planned exercise")
	ErrNoSets          = errors.New("entry must contain at least one set")
	ErrNegativeReps    = errors.New("reps cannot be negative")
	ErrNegativeWeight  = errors.New("weight cannot be negative")
	ErrRPEOutOfRange   = errors.New("RPE must be between 1 and 10")
	ErrMissingCompleted = errors.New("completed time must be set")
)

// LoggedSet is the actual outcome of one set.
type LoggedSet struct {
	Reps   int
	Weight float64
	RPE    int
}

// LoggedExercise holds the actual sets performed for one planned exercise.
type LoggedExercise struct {
	PlannedExerciseID string
	Sets              []LoggedSet
}

// WorkoutLog is one completed session against a workout.
type WorkoutLog struct {
	ID          string
	WorkoutID   string
	CompletedAt time.Time
	Notes       string
	Entries     []LoggedExercise
}

// Validate checks if the WorkoutLog has valid data.
// PRE: WorkoutLog struct is populated
// POST: Returns nil if valid, error otherwise
func (l *WorkoutLog) Validate() error {
	if l.WorkoutID == "" {
		return ErrMissingWorkout
	}
	if l.CompletedAt.IsZero() {
		return ErrMissingCompleted
	}
	if len(l.Entries) == 0 {
		return ErrNoEntries
	}
	for _, e := range l.Entries {
		if e.PlannedExerciseID == "" {
			return ErrMissingPlanned
		}
		if len(e.Sets) == 0 {
			return ErrNoSets
		}
		for _, s := range e.Sets {
			if s.Reps < 0 {
				return ErrNegativeReps
			}
			if s.Weight < 0 {
				return ErrNegativeWeight
			}
			if s.RPE < MinRPE || s.RPE > MaxRPE {
				return ErrRPEOutOfRange
			}
		}
	}
	return nil
}
