package catalog

import (
	"errors"
	"strings"
)

// ScopeBase is the scope holding the shared seed library. Per-user scopes
// use the owning account id.
const ScopeBase = "base"

// Max length constants for user-editable fields.
const (
	MaxNameLength = 120
)

// Domain errors
var (
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrNameTooLong = errors.New("name cannot exceed 120 characters")
	ErrEmptyScope  = errors.New("scope cannot be empty")
)

// Category is a body-part or movement tag (e.g. Chest, Compound). Names are
// the natural key, unique within a scope.
type Category struct {
	ID    string
	Scope string
	Name  string
}

// Exercise is a library entry referenced by planned exercises. Names are the
// natural key, unique within a scope; ids are internal and never shared
// between scopes.
type Exercise struct {
	ID           string
	Scope        string
	Name         string
	DefaultNotes string
}

// NamePair is an exercise↔category link expressed by natural keys. The
// synchronizer works on name pairs because ids differ between scopes.
type NamePair struct {
	ExerciseName string
	CategoryName string
}

// NormalizeName trims surrounding whitespace from a natural key.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// Validate checks if the Category has valid data.
// PRE: Category struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Category) Validate() error {
	if c.Scope == "" {
		return ErrEmptyScope
	}
	return validateName(c.Name)
}

// Validate checks if the Exercise has valid data.
// PRE: Exercise struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Exercise) Validate() error {
	if e.Scope == "" {
		return ErrEmptyScope
	}
	return validateName(e.Name)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
