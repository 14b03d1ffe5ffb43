// internal/notification/asynq.go
package notification

import (
	"context"
	"encoding/json"
	"time"

	"flowfit/coach-app/internal/domain"

	"github.com/hibiken/asynq"
)

// Task type names, consumed by the notification worker that performs the
// actual push/email dispatch.
const (
	TypePlanNew      = "notification:plan:new"
	TypePlanUpdated  = "notification:plan:updated"
	TypePlanExpiring = "notification:plan:expiring"
)

const notificationQueue = "notifications"

// PlanNoticePayload is the body of all plan notification tasks.
type PlanNoticePayload struct {
	TenantID      string     `json:"tenantId"`
	ClientID      string     `json:"clientId"`
	ClientName    string     `json:"clientName"`
	Goal          string     `json:"obiettivo,omitempty"`
	DurationWeeks int        `json:"durataSettimane,omitempty"`
	Expiry        *time.Time `json:"scadenza,omitempty"`
}

// AsynqNotifier queues notification tasks on Redis. The worker draining the
// queue lives outside this service.
type AsynqNotifier struct {
	client *asynq.Client
}

// NewAsynqNotifier wraps an asynq client.
func NewAsynqNotifier(client *asynq.Client) *AsynqNotifier {
	return &AsynqNotifier{client: client}
}

func (n *AsynqNotifier) enqueue(ctx context.Context, taskType string, payload PlanNoticePayload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(taskType, b)
	_, err = n.client.EnqueueContext(ctx, task, asynq.Queue(notificationQueue))
	return err
}

func (n *AsynqNotifier) NotifyNewPlan(ctx context.Context, tenantID string, client *domain.Client, plan *domain.Plan) error {
	return n.enqueue(ctx, TypePlanNew, PlanNoticePayload{
		TenantID:      tenantID,
		ClientID:      client.ID.Hex(),
		ClientName:    client.Name,
		Goal:          plan.Goal,
		DurationWeeks: plan.DurationWeeks,
	})
}

func (n *AsynqNotifier) NotifyUpdatedPlan(ctx context.Context, tenantID string, client *domain.Client, plan *domain.Plan) error {
	return n.enqueue(ctx, TypePlanUpdated, PlanNoticePayload{
		TenantID:      tenantID,
		ClientID:      client.ID.Hex(),
		ClientName:    client.Name,
		Goal:          plan.Goal,
		DurationWeeks: plan.DurationWeeks,
	})
}

func (n *AsynqNotifier) NotifyExpiring(ctx context.Context, tenantID string, client *domain.Client, expiry time.Time) error {
	return n.enqueue(ctx, TypePlanExpiring, PlanNoticePayload{
		TenantID:   tenantID,
		ClientID:   client.ID.Hex(),
		ClientName: client.Name,
		Expiry:     &expiry,
	})
}
