// internal/service/delivery_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowfit/coach-app/internal/domain"
	"flowfit/coach-app/internal/notification"
	"flowfit/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrPlanNotSendable    = errors.New("plan needs a goal and at least one exercise before it can be sent")
	ErrPlanNotFound       = errors.New("no plan exists for this client")
	ErrDeleteNotConfirmed = errors.New("plan deletion must be explicitly confirmed")
)

// DeliveryService persists plans and keeps the client-facing delivery state
// in step: the consegnata flag, the delivery date and the computed expiry.
// Persistence is authoritative; client notification is queued best-effort
// after the write and never rolls it back.
type DeliveryService interface {
	// SaveDraft persists the plan without marking it sent. It still appends
	// one history snapshot and updates the client's delivery block — drafts
	// and sent plans share that path.
	SaveDraft(ctx context.Context, tenantID string, clientID primitive.ObjectID, plan *domain.Plan) (*domain.Plan, error)

	// SendToClient validates, persists with sentAt, snapshots, updates the
	// delivery block and queues a "new plan" or "updated plan" notice.
	// firstDelivery distinguishes the two: true when the client had no plan
	// at the start of the editing session.
	SendToClient(ctx context.Context, tenantID string, clientID primitive.ObjectID, plan *domain.Plan, firstDelivery bool) (*domain.Plan, error)

	// DeletePlan removes the live document and clears the delivery block.
	// History survives. confirmed must be true; the UI asks twice first.
	DeletePlan(ctx context.Context, tenantID string, clientID primitive.ObjectID, confirmed bool) error
}

type deliveryService struct {
	planRepo    repository.PlanRepository
	historyRepo repository.HistoryRepository
	clientRepo  repository.ClientRepository
	notifier    notification.Notifier
	logger      *zap.Logger

	now func() time.Time
}

// NewDeliveryService creates a new instance of deliveryService.
func NewDeliveryService(
	planRepo repository.PlanRepository,
	historyRepo repository.HistoryRepository,
	clientRepo repository.ClientRepository,
	notifier notification.Notifier,
	logger *zap.Logger,
) DeliveryService {
	return &deliveryService{
		planRepo:    planRepo,
		historyRepo: historyRepo,
		clientRepo:  clientRepo,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// persist writes the live plan, appends exactly one snapshot and updates the
// client's delivery block. Shared by draft save and send.
func (s *deliveryService) persist(ctx context.Context, tenantID string, clientID primitive.ObjectID, plan *domain.Plan, now time.Time) error {
	if err := s.planRepo.Set(ctx, tenantID, clientID, plan); err != nil {
		return fmt.Errorf("persist plan: %w", err)
	}

	snap := &domain.Snapshot{Plan: *plan.Clone(), SavedAt: now}
	if _, err := s.historyRepo.Append(ctx, tenantID, clientID, snap); err != nil {
		return fmt.Errorf("append history snapshot: %w", err)
	}

	deliveredAt := now
	status := domain.DeliveryStatus{
		Delivered:   true,
		DeliveredAt: &deliveredAt,
		Expiry:      plan.Expiry(now),
	}
	if err := s.clientRepo.UpdateDeliveryStatus(ctx, tenantID, clientID, status); err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	return nil
}

// SaveDraft persists without touching sentAt.
func (s *deliveryService) SaveDraft(ctx context.Context, tenantID string, clientID primitive.ObjectID, plan *domain.Plan) (*domain.Plan, error) {
	now := s.now().UTC()
	saved := plan.Clone()
	saved.UpdatedAt = now

	if err := s.persist(ctx, tenantID, clientID, saved, now); err != nil {
		return nil, err
	}
	return saved, nil
}

// SendToClient delivers the plan. A plan with no goal or no exercises is
// rejected up front: no store call is made at all in that case.
func (s *deliveryService) SendToClient(ctx context.Context, tenantID string, clientID primitive.ObjectID, plan *domain.Plan, firstDelivery bool) (*domain.Plan, error) {
	if plan.Goal == "" || plan.ExerciseCount() == 0 {
		return nil, ErrPlanNotSendable
	}

	s.warnOnUnbalancedMarkers(clientID, plan)

	now := s.now().UTC()
	sent := plan.Clone()
	sent.UpdatedAt = now
	sent.SentAt = &now

	if err := s.persist(ctx, tenantID, clientID, sent, now); err != nil {
		return nil, err
	}

	// The plan is committed; everything from here on is best-effort.
	client, err := s.clientRepo.GetByID(ctx, tenantID, clientID)
	if err != nil {
		s.logger.Warn("plan sent but client lookup for notification failed",
			zap.String("clientId", clientID.Hex()), zap.Error(err))
		return sent, nil
	}

	if firstDelivery {
		err = s.notifier.NotifyNewPlan(ctx, tenantID, client, sent)
	} else {
		err = s.notifier.NotifyUpdatedPlan(ctx, tenantID, client, sent)
	}
	if err != nil {
		s.logger.Warn("plan notification dispatch failed",
			zap.String("clientId", clientID.Hex()),
			zap.Bool("firstDelivery", firstDelivery),
			zap.Error(err))
	}
	return sent, nil
}

// DeletePlan removes the live document only. Snapshots stay retrievable.
func (s *deliveryService) DeletePlan(ctx context.Context, tenantID string, clientID primitive.ObjectID, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}

	if err := s.planRepo.Delete(ctx, tenantID, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if err := s.clientRepo.ClearDeliveryStatus(ctx, tenantID, clientID); err != nil {
		return fmt.Errorf("clear delivery status: %w", err)
	}
	return nil
}

// warnOnUnbalancedMarkers logs days whose superset/circuit brackets do not
// pair up. Unbalanced plans are still sent; the check is advisory.
func (s *deliveryService) warnOnUnbalancedMarkers(clientID primitive.ObjectID, plan *domain.Plan) {
	for _, day := range domain.Weekdays() {
		if result := domain.CheckBalance(plan.Days[day].Entries); !result.Valid {
			s.logger.Warn("sending plan with unbalanced grouping markers",
				zap.String("clientId", clientID.Hex()),
				zap.String("day", day.Key()),
				zap.Int("entryIndex", result.FirstOffendingIndex))
		}
	}
}
