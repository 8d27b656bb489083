package events

import (
	"context"
	"sync"
	"time"

	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

// MemoryEventPublisher is an in-memory implementation of domain.EventPublisher
type MemoryEventPublisher struct {
	handlers map[string][]domain.EventHandler
	logger   logger.Logger
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMemoryEventPublisher creates a new in-memory event publisher
func NewMemoryEventPublisher(logger logger.Logger) *MemoryEventPublisher {
	return &MemoryEventPublisher{
		handlers: make(map[string][]domain.EventHandler),
		logger:   logger,
		now:      time.Now,
	}
}

// PublishPoolDetected publishes a pool detected event
func (p *MemoryEventPublisher) PublishPoolDetected(ctx context.Context, pool *domain.PoolMetadata) error {
	return p.publish(ctx, &domain.PoolDetectedEvent{
		Pool:       pool,
		DetectedAt: p.now(),
	})
}

// PublishSnipeSubmitted publishes a snipe submitted event
func (p *MemoryEventPublisher) PublishSnipeSubmitted(ctx context.Context, keys *domain.MarketKeys, result *domain.SnipeResult) error {
	return p.publish(ctx, &domain.SnipeSubmittedEvent{
		Keys:   keys,
		Result: result,
	})
}

// PublishSnipeFailed publishes a snipe failed event
func (p *MemoryEventPublisher) PublishSnipeFailed(ctx context.Context, pool *domain.PoolMetadata, stage string, reason string) error {
	return p.publish(ctx, &domain.SnipeFailedEvent{
		Pool:     pool,
		Stage:    stage,
		Reason:   reason,
		FailedAt: p.now(),
	})
}

// Subscribe subscribes to domain events
func (p *MemoryEventPublisher) Subscribe(ctx context.Context, eventType string, handler domain.EventHandler) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.handlers[eventType] = append(p.handlers[eventType], handler)

	p.logger.WithFields(map[string]interface{}{
		"event_type": eventType,
		"handlers":   len(p.handlers[eventType]),
	}).Info("Event handler subscribed")

	return nil
}

// publish delivers an event to all registered handlers and waits for them
func (p *MemoryEventPublisher) publish(ctx context.Context, event domain.DomainEvent) error {
	p.mu.RLock()
	handlers := p.handlers[event.EventType()]
	p.mu.RUnlock()

	if len(handlers) == 0 {
		p.logger.WithField("event_type", event.EventType()).Debug("No handlers registered for event")
		return nil
	}

	p.logger.WithFields(map[string]interface{}{
		"event_type":   event.EventType(),
		"aggregate_id": event.AggregateID(),
		"handlers":     len(handlers),
	}).Debug("Publishing event")

	var wg sync.WaitGroup
	for _, handler := range handlers {
		wg.Add(1)
		go func(h domain.EventHandler) {
			defer wg.Done()
			if err := h.Handle(ctx, event); err != nil {
				p.logger.WithError(err).WithFields(map[string]interface{}{
					"event_type":   event.EventType(),
					"aggregate_id": event.AggregateID(),
				}).Error("Event handler failed")
			}
		}(handler)
	}

	wg.Wait()
	return nil
}
