package catalog_test

import (
	"strings"
	"testing"

	"architect/internal/domain/catalog"
)

// TestCategory_Validate tests validation of Category.
func TestCategory_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cat     catalog.Category
		wantErr bool
	}{
		{
			name:    "valid base category",
			cat:     catalog.Category{ID: "1", Scope: catalog.ScopeBase, Name: "Chest"},
			wantErr: false,
		},
		{
			name:    "valid user category",
			cat:     catalog.Category{ID: "2", Scope: "user-001", Name: "Grip"},
			wantErr: false,
		},
		{
			name:    "empty name",
			cat:     catalog.Category{ID: "3", Scope: catalog.ScopeBase, Name: ""},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			cat:     catalog.Category{ID: "4", Scope: catalog.ScopeBase, Name: "   "},
			wantErr: true,
		},
		{
			name:    "empty scope",
			cat:     catalog.Category{ID: "5", Scope: "", Name: "Chest"},
			wantErr: true,
		},
		{
			name:    "name too long",
			cat:     catalog.Category{ID: "6", Scope: catalog.ScopeBase, Name: strings.Repeat("x", 121)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Category.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestExercise_Validate tests validation of Exercise.
func TestExercise_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ex      catalog.Exercise
		wantErr bool
	}{
		{
			name:    "valid exercise",
			ex:      catalog.Exercise{ID: "1", Scope: catalog.ScopeBase, Name: "Deadlift"},
			wantErr: false,
		},
		{
			name:    "valid with notes",
			ex:      catalog.Exercise{ID: "2", Scope: "user-001", Name: "Pull Up", DefaultNotes: "strict form"},
			wantErr: false,
		},
		{
			name:    "empty name",
			ex:      catalog.Exercise{ID: "3", Scope: catalog.ScopeBase, Name: ""},
			wantErr: true,
		},
		{
			name:    "empty scope",
			ex:      catalog.Exercise{ID: "4", Scope: "", Name: "Deadlift"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ex.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Exercise.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestNormalizeName tests natural key normalization.
func TestNormalizeName(t *testing.T) {
	if got := catalog.NormalizeName("  Bench Press (Barbell) "); got != "Bench Press (Barbell)" {
		t.Errorf("NormalizeName() = %q", got)
	}
}
