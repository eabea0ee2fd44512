package projections

import (
	"context"
	"log/slog"
	"time"

	"architect/internal/domain/plan"
)

const planListKey = "plan_list"

// PlanStoreForList defines the store interface needed by the plan list view.
type PlanStoreForList interface {
	List(ctx context.Context, scope string) ([]plan.Macrocycle, error)
}

// PlanSummary is one row of the plan list.
type PlanSummary struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// PlanListDeps holds dependencies for the plan list view.
type PlanListDeps struct {
	PlanStore PlanStoreForList
	Cache     *ViewCache // optional
}

// QueryPlanList returns the scope's plans, oldest first. Read failures
// degrade to an empty list with a logged warning; the read path never
// crashes the caller.
func QueryPlanList(ctx context.Context, scope string, deps PlanListDeps) []PlanSummary {
	if deps.Cache != nil {
		if v, ok := deps.Cache.Get(scope, planListKey); ok {
			return v.([]PlanSummary)
		}
	}

	macros, err := deps.PlanStore.List(ctx, scope)
	if err != nil {
		slog.Warn("view_event", "event", "plan_list_read_failed", "scope", scope, "error", err)
		return nil
	}

	summaries := make([]PlanSummary, 0, len(macros))
	for _, m := range macros {
		summaries = append(summaries, PlanSummary{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt})
	}

	if deps.Cache != nil {
		deps.Cache.Put(scope, planListKey, summaries)
	}
	return summaries
}
