// Package plan holds the persisted training hierarchy: a Macrocycle owns
// ordered MiniCycles (weeks), each week owns ordered Workouts, each workout
// owns ordered PlannedExercises. Rows are created atomically by the
// generator and destroyed atomically by cascade delete; there is no partial
// state and no in-place edit of a saved plan.
package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Set count and RIR bounds.
const (
	MinSets = 1
	MaxSets = 20
	MinRIR  = 0
	MaxRIR  = 5
)

// Week count bounds for a macrocycle.
const (
	MinWeeks = 1
	MaxWeeks = 52
)

// Domain errors
var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrEmptyScope        = errors.New("scope cannot be empty")
	ErrInvalidWeek       = errors.New("week number must be between 1 and 52")
	ErrInvalidSets       = errors.New("set count must be between 1 and 20")
	ErrRIRLengthMismatch = errors.New("target RIR list length must equal set count")
	ErrRIROutOfRange     = errors.New("target RIR must be between 0 and 5")
	ErrMissingExercise   = errors.New("planned exercise must reference a library exercise")
	ErrMissingParent     = errors.New("child row does not reference its parent")
)

// Macrocycle is a full named training plan spanning multiple weeks.
type Macrocycle struct {
	ID        string
	Scope     string
	Name      string
	CreatedAt time.Time
}

// MiniCycle is one week within a macrocycle. Ordering is by the stored week
// number, never by name, so "Week 10" sorts after "Week 2".
type MiniCycle struct {
	ID      string
	MacroID string
	Week    int
	Name    string
}

// Workout is one training day within a week. Seq preserves authored order.
type Workout struct {
	ID     string
	MiniID string
	Seq    int
	Name   string
}

// PlannedExercise is one exercise assignment within a workout, with per-set
// RIR targets. TargetRIR always has exactly Sets entries.
type PlannedExercise struct {
	ID         string
	WorkoutID  string
	Seq        int
	ExerciseID string
	Sets       int
	TargetRIR  []int
	Notes      string
}

// WeekName returns the display name for a week number ("Week 3").
func WeekName(week int) string {
	return fmt.Sprintf("Week %d", week)
}

// Validate checks if the Macrocycle has valid data.
// PRE: Macrocycle struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Macrocycle) Validate() error {
	if m.Scope == "" {
		return ErrEmptyScope
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Validate checks if the MiniCycle has valid data.
// PRE: MiniCycle struct is populated
// POST: Returns nil if valid, error otherwise
func (m *MiniCycle) Validate() error {
	if m.MacroID == "" {
		return ErrMissingParent
	}
	if m.Week < MinWeeks || m.Week > MaxWeeks {
		return ErrInvalidWeek
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Validate checks if the Workout has valid data.
// PRE: Workout struct is populated
// POST: Returns nil if valid, error otherwise
func (w *Workout) Validate() error {
	if w.MiniID == "" {
		return ErrMissingParent
	}
	if strings.TrimSpace(w.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Validate checks if the PlannedExercise has valid data.
// PRE: PlannedExercise struct is populated
// POST: Returns nil if valid, error otherwise
func (p *PlannedExercise) Validate() error {
	if p.WorkoutID == "" {
		return ErrMissingParent
	}
	if p.ExerciseID == "" {
		return ErrMissingExercise
	}
	if p.Sets < MinSets || p.Sets > MaxSets {
		return ErrInvalidSets
	}
	if len(p.TargetRIR) != p.Sets {
		return ErrRIRLengthMismatch
	}
	for _, rir := range p.TargetRIR {
		if rir < MinRIR || rir > MaxRIR {
			return ErrRIROutOfRange
		}
	}
	return nil
}

// Tree is a fully expanded macrocycle ready for an all-or-nothing save.
type Tree struct {
	Macro Macrocycle
	Weeks []WeekNode
}

// WeekNode groups a MiniCycle with its workouts.
type WeekNode struct {
	Mini     MiniCycle
	Workouts []WorkoutNode
}

// WorkoutNode groups a Workout with its planned exercises.
type WorkoutNode struct {
	Workout   Workout
	Exercises []PlannedExercise
}

// Validate checks the whole tree: every row valid and every child pointing
// at its actual parent, so inserts in parent-before-child order can never
// break a foreign key.
// PRE: Tree is fully expanded
// POST: Returns nil if the tree is internally consistent
func (t *Tree) Validate() error {
	if err := t.Macro.Validate(); err != nil {
		return err
	}
	for _, wk := range t.Weeks {
		if wk.Mini.MacroID != t.Macro.ID {
			return ErrMissingParent
		}
		if err := wk.Mini.Validate(); err != nil {
			return err
		}
		for _, wo := range wk.Workouts {
			if wo.Workout.MiniID != wk.Mini.ID {
				return ErrMissingParent
			}
			if err := wo.Workout.Validate(); err != nil {
				return err
			}
			for i := range wo.Exercises {
				if wo.Exercises[i].WorkoutID != wo.Workout.ID {
					return ErrMissingParent
				}
				if err := wo.Exercises[i].Validate(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
