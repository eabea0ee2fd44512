package template_test

import (
	"reflect"
	"testing"

	"architect/internal/domain/template"
)

// TestNewExerciseTemplate tests the default slot shape.
func TestNewExerciseTemplate(t *testing.T) {
	e := template.NewExerciseTemplate()
	if e.Sets != 3 {
		t.Errorf("expected 3 sets, got %d", e.Sets)
	}
	if !reflect.DeepEqual(e.RIRs, []int{2, 2, 2}) {
		t.Errorf("expected RIRs [2 2 2], got %v", e.RIRs)
	}
	if e.Name != "" || e.Notes != "" {
		t.Error("expected empty name and notes")
	}
}

// TestExerciseTemplate_Resize tests the truncate/pad rule from the editor.
func TestExerciseTemplate_Resize(t *testing.T) {
	tests := []struct {
		name     string
		start    []int
		sets     int
		wantSets int
		wantRIRs []int
	}{
		{
			name:     "grow 3 to 5 pads with default",
			start:    []int{2, 2, 1},
			sets:     5,
			wantSets: 5,
			wantRIRs: []int{2, 2, 1, 2, 2},
		},
		{
			name:     "shrink 5 to 2 keeps first two",
			start:    []int{0, 1, 2, 3, 4},
			sets:     2,
			wantSets: 2,
			wantRIRs: []int{0, 1},
		},
		{
			name:     "clamp below minimum",
			start:    []int{2, 2, 2},
			sets:     0,
			wantSets: 1,
			wantRIRs: []int{2},
		},
		{
			name:     "clamp above maximum",
			start:    []int{2, 2, 2},
			sets:     25,
			wantSets: 20,
			wantRIRs: []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
		},
		{
			name:     "same size is a no-op",
			start:    []int{1, 0, 3},
			sets:     3,
			wantSets: 3,
			wantRIRs: []int{1, 0, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := template.ExerciseTemplate{Sets: len(tt.start), RIRs: append([]int(nil), tt.start...)}
			e.Resize(tt.sets)
			if e.Sets != tt.wantSets {
				t.Errorf("Sets = %d, want %d", e.Sets, tt.wantSets)
			}
			if !reflect.DeepEqual(e.RIRs, tt.wantRIRs) {
				t.Errorf("RIRs = %v, want %v", e.RIRs, tt.wantRIRs)
			}
		})
	}
}

// TestExerciseTemplate_SetRIR tests clamping and bounds of single-set edits.
func TestExerciseTemplate_SetRIR(t *testing.T) {
	e := template.NewExerciseTemplate()

	if err := e.SetRIR(1, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.RIRs[1] != 4 {
		t.Errorf("expected RIRs[1]=4, got %d", e.RIRs[1])
	}

	// Values clamp to [0,5].
	if err := e.SetRIR(0, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.RIRs[0] != 5 {
		t.Errorf("expected clamp to 5, got %d", e.RIRs[0])
	}
	if err := e.SetRIR(2, -3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.RIRs[2] != 0 {
		t.Errorf("expected clamp to 0, got %d", e.RIRs[2])
	}

	if err := e.SetRIR(3, 2); err != template.ErrSetOutOfRange {
		t.Errorf("expected ErrSetOutOfRange, got %v", err)
	}
}

// TestEditor_Days tests add/remove day behavior and index shifting.
func TestEditor_Days(t *testing.T) {
	var ed template.Editor

	ed.AddDay()
	ed.AddDay()
	ed.AddDay()
	if len(ed.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(ed.Days))
	}
	if ed.Days[0].Name != "Day 1" || ed.Days[2].Name != "Day 3" {
		t.Errorf("unexpected default names: %q, %q", ed.Days[0].Name, ed.Days[2].Name)
	}

	if err := ed.RemoveDay(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ed.Days) != 2 || ed.Days[1].Name != "Day 3" {
		t.Errorf("expected later days to shift down, got %+v", ed.Days)
	}

	if err := ed.RemoveDay(5); err != template.ErrDayOutOfRange {
		t.Errorf("expected ErrDayOutOfRange, got %v", err)
	}
}

// TestEditor_Exercises tests exercise slot operations.
func TestEditor_Exercises(t *testing.T) {
	var ed template.Editor
	ed.AddDay()

	if err := ed.AddExercise(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ed.AddExercise(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ed.SetExerciseName(0, 0, "Deadlift"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.Days[0].Exercises[0].Name != "Deadlift" {
		t.Errorf("expected name set, got %q", ed.Days[0].Exercises[0].Name)
	}

	// The placeholder clears the name back to unassigned.
	if err := ed.SetExerciseName(0, 0, template.SelectPlaceholder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.Days[0].Exercises[0].Name != "" {
		t.Errorf("expected cleared name, got %q", ed.Days[0].Exercises[0].Name)
	}

	if err := ed.SetSetCount(0, 1, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ed.Days[0].Exercises[1]; got.Sets != 5 || len(got.RIRs) != 5 {
		t.Errorf("expected 5 sets with 5 RIRs, got %+v", got)
	}

	if err := ed.SetNotes(0, 1, "pause at the bottom"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.Days[0].Exercises[1].Notes != "pause at the bottom" {
		t.Error("expected notes set")
	}

	if err := ed.RemoveExercise(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ed.Days[0].Exercises) != 1 {
		t.Fatalf("expected 1 exercise left, got %d", len(ed.Days[0].Exercises))
	}

	if err := ed.SetExerciseName(0, 7, "x"); err != template.ErrExerciseOutOfRange {
		t.Errorf("expected ErrExerciseOutOfRange, got %v", err)
	}
	if err := ed.AddExercise(2); err != template.ErrDayOutOfRange {
		t.Errorf("expected ErrDayOutOfRange, got %v", err)
	}
}

// TestEditor_Snapshot tests that snapshots are isolated from later edits.
func TestEditor_Snapshot(t *testing.T) {
	var ed template.Editor
	ed.AddDay()
	_ = ed.AddExercise(0)
	_ = ed.SetExerciseName(0, 0, "Pull Up")

	snap := ed.Snapshot()

	_ = ed.SetRIR(0, 0, 0, 5)
	_ = ed.SetExerciseName(0, 0, "Deadlift")

	if snap[0].Exercises[0].Name != "Pull Up" {
		t.Errorf("snapshot name mutated: %q", snap[0].Exercises[0].Name)
	}
	if snap[0].Exercises[0].RIRs[0] != 2 {
		t.Errorf("snapshot RIR mutated: %d", snap[0].Exercises[0].RIRs[0])
	}
}

// TestEditor_Reset tests the post-generation reset.
func TestEditor_Reset(t *testing.T) {
	var ed template.Editor
	ed.AddDay()
	ed.Reset()
	if len(ed.Days) != 0 {
		t.Errorf("expected empty editor, got %d days", len(ed.Days))
	}
}
