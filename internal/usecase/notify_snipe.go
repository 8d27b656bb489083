package usecase

import (
	"context"
	"fmt"

	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

// NotifySnipeUseCase forwards pool and snipe events to the notification channel
type NotifySnipeUseCase struct {
	notificationRepo domain.NotificationRepository
	logger           logger.Logger
}

// NewNotifySnipeUseCase creates a new instance of NotifySnipeUseCase
func NewNotifySnipeUseCase(notificationRepo domain.NotificationRepository, logger logger.Logger) *NotifySnipeUseCase {
	return &NotifySnipeUseCase{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Subscribe registers the use case for the pool and snipe event types
func (uc *NotifySnipeUseCase) Subscribe(ctx context.Context, publisher domain.EventPublisher) error {
	eventTypes := []string{domain.EventTypePoolDetected, domain.EventTypeSnipeSubmitted, domain.EventTypeSnipeFailed}
	for _, eventType := range eventTypes {
		if err := publisher.Subscribe(ctx, eventType, uc); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
	}
	return nil
}

// Handle implements domain.EventHandler
func (uc *NotifySnipeUseCase) Handle(ctx context.Context, event domain.DomainEvent) error {
	switch e := event.(type) {
	case *domain.PoolDetectedEvent:
		if err := uc.notificationRepo.SendPoolNotification(ctx, e.Pool); err != nil {
			uc.logger.WithError(err).WithField("pool_id", e.AggregateID()).Error("Failed to send pool notification")
			return fmt.Errorf("failed to send pool notification: %w", err)
		}
	case *domain.SnipeSubmittedEvent:
		if err := uc.notificationRepo.SendSnipeNotification(ctx, e.Keys, e.Result); err != nil {
			uc.logger.WithError(err).WithField("pool_id", e.AggregateID()).Error("Failed to send snipe notification")
			return fmt.Errorf("failed to send snipe notification: %w", err)
		}
	case *domain.SnipeFailedEvent:
		if err := uc.notificationRepo.SendFailureNotification(ctx, e.Pool, e.Stage, e.Reason); err != nil {
			uc.logger.WithError(err).WithField("pool_id", e.AggregateID()).Error("Failed to send failure notification")
			return fmt.Errorf("failed to send failure notification: %w", err)
		}
	default:
		uc.logger.WithField("event_type", event.EventType()).Debug("Ignoring event")
	}
	return nil
}
