package orchestrators

import (
	"context"
	"log/slog"

	"architect/internal/apperr"
)

// PlanStoreForDelete defines the store interface needed by DeletePlan.
type PlanStoreForDelete interface {
	Delete(ctx context.Context, scope, macroID string) error
}

// DeletePlanInput carries input for the delete orchestrator.
type DeletePlanInput struct {
	Scope   string
	MacroID string
}

// DeletePlanDeps holds dependencies for DeletePlan.
type DeletePlanDeps struct {
	PlanStore PlanStoreForDelete
	Views     ViewInvalidator // optional
}

// ExecuteDeletePlan removes a macrocycle and everything beneath it. Deleting
// an id that does not exist is a warning, not a failure.
// PRE: MacroID identifies a plan in the scope, or nothing
// POST: No row of the subtree remains; caches for the scope are cleared
func ExecuteDeletePlan(ctx context.Context, input DeletePlanInput, deps DeletePlanDeps) error {
	err := deps.PlanStore.Delete(ctx, input.Scope, input.MacroID)
	if apperr.IsNotFound(err) {
		slog.Warn("plan_event", "event", "delete_missing", "scope", input.Scope, "macro_id", input.MacroID)
		return nil
	}
	if err != nil {
		return err
	}

	if deps.Views != nil {
		deps.Views.Invalidate(input.Scope)
	}
	slog.Info("plan_event", "event", "plan_deleted", "scope", input.Scope, "macro_id", input.MacroID)
	return nil
}
