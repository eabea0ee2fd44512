// Package template holds the transient plan-editor state: an ordered list of
// workout-day templates, each with an ordered list of exercise templates.
// Nothing here is persisted; the generator expands a validated snapshot of
// this state into the plan hierarchy.
package template

import (
	"errors"
	"fmt"

	"architect/internal/domain/plan"
)

// Defaults for a freshly added exercise template.
const (
	DefaultSets = 3
	DefaultRIR  = 2
)

// SelectPlaceholder is the picker entry meaning "no exercise assigned yet".
// Choosing it clears the template name back to empty.
const SelectPlaceholder = "(Select Exercise)"

// Domain errors
var (
	ErrDayOutOfRange      = errors.New("workout day index out of range")
	ErrExerciseOutOfRange = errors.New("exercise index out of range")
	ErrSetOutOfRange      = errors.New("set index out of range")
)

// ExerciseTemplate is one exercise slot in a day template. RIRs always has
// exactly Sets entries; every mutation below maintains that.
type ExerciseTemplate struct {
	Name  string
	Sets  int
	RIRs  []int
	Notes string
}

// WorkoutTemplate is one training-day blueprint.
type WorkoutTemplate struct {
	Name      string
	Exercises []ExerciseTemplate
}

// NewExerciseTemplate returns the default slot: 3 sets at RIR 2, unassigned.
func NewExerciseTemplate() ExerciseTemplate {
	return ExerciseTemplate{
		Sets: DefaultSets,
		RIRs: []int{DefaultRIR, DefaultRIR, DefaultRIR},
	}
}

// Resize changes the set count, clamped to [1,20], and resizes the RIR list
// immediately: the first `sets` values are kept on decrease, new slots are
// padded with the default RIR on increase.
// PRE: RIRs has len == Sets
// POST: Sets is within [MinSets,MaxSets] and len(RIRs) == Sets
func (e *ExerciseTemplate) Resize(sets int) {
	if sets < plan.MinSets {
		sets = plan.MinSets
	}
	if sets > plan.MaxSets {
		sets = plan.MaxSets
	}
	if sets <= len(e.RIRs) {
		e.RIRs = e.RIRs[:sets]
	} else {
		for len(e.RIRs) < sets {
			e.RIRs = append(e.RIRs, DefaultRIR)
		}
	}
	e.Sets = sets
}

// SetRIR sets one set's target RIR, clamped to [0,5].
// PRE: setIndex addresses an existing set
// POST: RIRs[setIndex] is within [MinRIR,MaxRIR]
func (e *ExerciseTemplate) SetRIR(setIndex, rir int) error {
	if setIndex < 0 || setIndex >= len(e.RIRs) {
		return ErrSetOutOfRange
	}
	if rir < plan.MinRIR {
		rir = plan.MinRIR
	}
	if rir > plan.MaxRIR {
		rir = plan.MaxRIR
	}
	e.RIRs[setIndex] = rir
	return nil
}

// Editor is the per-session template list backing the plan editor.
type Editor struct {
	Days []WorkoutTemplate
}

// AddDay appends a new empty day template named "Day N".
// POST: len(Days) grows by one
func (ed *Editor) AddDay() *WorkoutTemplate {
	ed.Days = append(ed.Days, WorkoutTemplate{Name: fmt.Sprintf("Day %d", len(ed.Days)+1)})
	return &ed.Days[len(ed.Days)-1]
}

// RemoveDay removes the day at the given position, shifting later days down.
// PRE: day addresses an existing template
func (ed *Editor) RemoveDay(day int) error {
	if day < 0 || day >= len(ed.Days) {
		return ErrDayOutOfRange
	}
	ed.Days = append(ed.Days[:day], ed.Days[day+1:]...)
	return nil
}

// RenameDay sets a day's display name.
func (ed *Editor) RenameDay(day int, name string) error {
	if day < 0 || day >= len(ed.Days) {
		return ErrDayOutOfRange
	}
	ed.Days[day].Name = name
	return nil
}

// AddExercise appends a default exercise template to a day.
// PRE: day addresses an existing template
func (ed *Editor) AddExercise(day int) error {
	if day < 0 || day >= len(ed.Days) {
		return ErrDayOutOfRange
	}
	ed.Days[day].Exercises = append(ed.Days[day].Exercises, NewExerciseTemplate())
	return nil
}

// RemoveExercise removes one exercise slot from a day.
func (ed *Editor) RemoveExercise(day, idx int) error {
	ex, err := ed.exercises(day)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(*ex) {
		return ErrExerciseOutOfRange
	}
	*ex = append((*ex)[:idx], (*ex)[idx+1:]...)
	return nil
}

// SetExerciseName assigns a library exercise name to a slot. The select
// placeholder clears the name back to empty ("not yet assigned").
func (ed *Editor) SetExerciseName(day, idx int, name string) error {
	e, err := ed.exercise(day, idx)
	if err != nil {
		return err
	}
	if name == SelectPlaceholder {
		e.Name = ""
		return nil
	}
	e.Name = name
	return nil
}

// SetSetCount resizes a slot's set count (see ExerciseTemplate.Resize).
func (ed *Editor) SetSetCount(day, idx, sets int) error {
	e, err := ed.exercise(day, idx)
	if err != nil {
		return err
	}
	e.Resize(sets)
	return nil
}

// SetRIR edits a single set's target RIR on a slot.
func (ed *Editor) SetRIR(day, idx, setIndex, rir int) error {
	e, err := ed.exercise(day, idx)
	if err != nil {
		return err
	}
	return e.SetRIR(setIndex, rir)
}

// SetNotes edits a slot's free-text notes. No length limit is enforced here.
func (ed *Editor) SetNotes(day, idx int, notes string) error {
	e, err := ed.exercise(day, idx)
	if err != nil {
		return err
	}
	e.Notes = notes
	return nil
}

// Snapshot returns a deep copy of the current day templates, so a generation
// in flight is unaffected by further edits.
func (ed *Editor) Snapshot() []WorkoutTemplate {
	out := make([]WorkoutTemplate, len(ed.Days))
	for i, d := range ed.Days {
		out[i] = WorkoutTemplate{Name: d.Name, Exercises: make([]ExerciseTemplate, len(d.Exercises))}
		for j, e := range d.Exercises {
			c := e
			c.RIRs = append([]int(nil), e.RIRs...)
			out[i].Exercises[j] = c
		}
	}
	return out
}

// Reset clears the editor back to empty, as after a successful generation.
func (ed *Editor) Reset() {
	ed.Days = nil
}

func (ed *Editor) exercises(day int) (*[]ExerciseTemplate, error) {
	if day < 0 || day >= len(ed.Days) {
		return nil, ErrDayOutOfRange
	}
	return &ed.Days[day].Exercises, nil
}

func (ed *Editor) exercise(day, idx int) (*ExerciseTemplate, error) {
	ex, err := ed.exercises(day)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(*ex) {
		return nil, ErrExerciseOutOfRange
	}
	return &(*ex)[idx], nil
}
