// internal/notification/notifier.go
package notification

import (
	"context"
	"time"

	"flowfit/coach-app/internal/domain"
)

// Notifier pushes plan-related notices toward a client. Dispatch is
// fire-and-forget from the caller's point of view: delivery of the plan
// document is already committed before any of these run, and a failure here
// must never undo it.
type Notifier interface {
	// NotifyNewPlan tells the client their first plan is available.
	NotifyNewPlan(ctx context.Context, tenantID string, client *domain.Client, plan *domain.Plan) error
	// NotifyUpdatedPlan tells the client an existing plan was modified.
	NotifyUpdatedPlan(ctx context.Context, tenantID string, client *domain.Client, plan *domain.Plan) error
	// NotifyExpiring warns the client their plan expires soon.
	NotifyExpiring(ctx context.Context, tenantID string, client *domain.Client, expiry time.Time) error
}
