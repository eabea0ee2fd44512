package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"architect/internal/apperr"
)

// mockPlanStoreForDelete implements PlanStoreForDelete.
type mockPlanStoreForDelete struct {
	existing map[string]bool
	err      error
}

func (m *mockPlanStoreForDelete) Delete(_ context.Context, scope, macroID string) error {
	if m.err != nil {
		return m.err
	}
	if !m.existing[macroID] {
		return apperr.Wrap(apperr.KindNotFound, "plan.Delete", fmt.Errorf("macrocycle %s not found", macroID))
	}
	delete(m.existing, macroID)
	return nil
}

// TestExecuteDeletePlan_Valid tests a successful delete and cache clear.
func TestExecuteDeletePlan_Valid(t *testing.T) {
	store := &mockPlanStoreForDelete{existing: map[string]bool{"m1": true}}
	views := &mockViews{}

	err := ExecuteDeletePlan(context.Background(),
		DeletePlanInput{Scope: "user-001", MacroID: "m1"},
		DeletePlanDeps{PlanStore: store, Views: views})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.existing["m1"] {
		t.Error("expected plan removed")
	}
	if len(views.invalidated) != 1 || views.invalidated[0] != "user-001" {
		t.Errorf("invalidated = %v", views.invalidated)
	}
}

// TestExecuteDeletePlan_MissingIsNoOp tests that deleting an absent id is a
// warning-level no-op, not an error.
func TestExecuteDeletePlan_MissingIsNoOp(t *testing.T) {
	store := &mockPlanStoreForDelete{existing: map[string]bool{}}
	views := &mockViews{}

	err := ExecuteDeletePlan(context.Background(),
		DeletePlanInput{Scope: "user-001", MacroID: "ghost"},
		DeletePlanDeps{PlanStore: store, Views: views})
	if err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if len(views.invalidated) != 0 {
		t.Error("expected no cache invalidation for a missing plan")
	}
}

// TestExecuteDeletePlan_StoreFailure tests that other failures propagate.
func TestExecuteDeletePlan_StoreFailure(t *testing.T) {
	store := &mockPlanStoreForDelete{err: errors.New("database is locked")}
	views := &mockViews{}

	err := ExecuteDeletePlan(context.Background(),
		DeletePlanInput{Scope: "user-001", MacroID: "m1"},
		DeletePlanDeps{PlanStore: store, Views: views})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(views.invalidated) != 0 {
		t.Error("expected no cache invalidation on failure")
	}
}
