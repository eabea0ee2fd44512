package projections

import (
	"context"
	"log/slog"
)

// PlanStoreForDashboard defines the plan reads needed by the dashboard.
type PlanStoreForDashboard interface {
	Count(ctx context.Context, scope string) (int, error)
}

// CatalogStoreForDashboard defines the catalog reads needed by the dashboard.
type CatalogStoreForDashboard interface {
	CountExercises(ctx context.Context, scope string) (int, error)
	CountCategories(ctx context.Context, scope string) (int, error)
}

// SessionStoreForDashboard defines the session reads needed by the dashboard.
type SessionStoreForDashboard interface {
	CountLogs(ctx context.Context, scope string) (int, error)
}

// DashboardStats summarizes a scope for the landing page.
type DashboardStats struct {
	Plans          int
	Exercises      int
	Categories     int
	SessionsLogged int
}

// DashboardDeps holds dependencies for the dashboard view.
type DashboardDeps struct {
	PlanStore    PlanStoreForDashboard
	CatalogStore CatalogStoreForDashboard
	SessionStore SessionStoreForDashboard
}

// QueryDashboard aggregates the scope's counters. Any failed counter
// degrades to zero with a logged warning; the dashboard always renders.
func QueryDashboard(ctx context.Context, scope string, deps DashboardDeps) DashboardStats {
	var stats DashboardStats
	var err error

	if stats.Plans, err = deps.PlanStore.Count(ctx, scope); err != nil {
		slog.Warn("view_event", "event", "dashboard_read_failed", "scope", scope, "counter", "plans", "error", err)
	}
	if stats.Exercises, err = deps.CatalogStore.CountExercises(ctx, scope); err != nil {
		slog.Warn("view_event", "event", "dashboard_read_failed", "scope", scope, "counter", "exercises", "error", err)
	}
	if stats.Categories, err = deps.CatalogStore.CountCategories(ctx, scope); err != nil {
		slog.Warn("view_event", "event", "dashboard_read_failed", "scope", scope, "counter", "categories", "error", err)
	}
	if stats.SessionsLogged, err = deps.SessionStore.CountLogs(ctx, scope); err != nil {
		slog.Warn("view_event", "event", "dashboard_read_failed", "scope", scope, "counter", "sessions", "error", err)
	}
	return stats
}
