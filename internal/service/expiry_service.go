// internal/service/expiry_service.go
package service

import (
	"context"
	"time"

	"flowfit/coach-app/internal/notification"
	"flowfit/coach-app/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Plans expiring within this window trigger a reminder.
const expiryWarningDays = 7

// ExpirySweeper queues expiry reminders for clients whose plan runs out
// soon. It runs daily; missing a run just means the reminder goes out the
// next day.
type ExpirySweeper struct {
	clientRepo repository.ClientRepository
	notifier   notification.Notifier
	logger     *zap.Logger
	cron       *cron.Cron
}

// NewExpirySweeper creates a new instance of ExpirySweeper.
func NewExpirySweeper(clientRepo repository.ClientRepository, notifier notification.Notifier, logger *zap.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		clientRepo: clientRepo,
		notifier:   notifier,
		logger:     logger,
		cron:       cron.New(),
	}
}

// Start schedules the daily sweep. Returns an error only on a bad schedule
// expression, which would be a programming mistake.
func (s *ExpirySweeper) Start() error {
	_, err := s.cron.AddFunc("0 8 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *ExpirySweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep finds soon-expiring plans and queues one reminder per client.
func (s *ExpirySweeper) Sweep(ctx context.Context) {
	clients, err := s.clientRepo.ListExpiringWithin(ctx, expiryWarningDays)
	if err != nil {
		s.logger.Error("expiry sweep query failed", zap.Error(err))
		return
	}

	for i := range clients {
		client := &clients[i]
		if client.WorkoutPlan.Expiry == nil {
			continue
		}
		if err := s.notifier.NotifyExpiring(ctx, client.TenantID, client, *client.WorkoutPlan.Expiry); err != nil {
			s.logger.Warn("expiry reminder dispatch failed",
				zap.String("clientId", client.ID.Hex()), zap.Error(err))
		}
	}
	s.logger.Info("expiry sweep completed", zap.Int("clients", len(clients)))
}
