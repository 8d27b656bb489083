package domain

import (
	"context"
	"time"
)

// Event types published on the event bus
const (
	EventTypePoolDetected   = "pool.detected"
	EventTypeSnipeSubmitted = "snipe.submitted"
	EventTypeSnipeFailed    = "snipe.failed"
)

// EventHandler defines the interface for handling domain events
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
}

// DomainEvent represents a domain event
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
}

// PoolDetectedEvent is published when a pool passes the eligibility decision
type PoolDetectedEvent struct {
	Pool       *PoolMetadata
	DetectedAt time.Time
}

func (e *PoolDetectedEvent) EventType() string {
	return EventTypePoolDetected
}

func (e *PoolDetectedEvent) OccurredAt() time.Time {
	return e.DetectedAt
}

// AggregateID returns the pool address
func (e *PoolDetectedEvent) AggregateID() string {
	return e.Pool.ID.String()
}

// SnipeSubmittedEvent is published once the relay accepted a bundle
type SnipeSubmittedEvent struct {
	Keys   *MarketKeys
	Result *SnipeResult
}

func (e *SnipeSubmittedEvent) EventType() string {
	return EventTypeSnipeSubmitted
}

func (e *SnipeSubmittedEvent) OccurredAt() time.Time {
	return e.Result.SubmittedAt
}

// AggregateID returns the pool address
func (e *SnipeSubmittedEvent) AggregateID() string {
	return e.Result.PoolID.String()
}

// SnipeFailedEvent is published when deriving, building or submitting a bundle fails
type SnipeFailedEvent struct {
	Pool     *PoolMetadata
	Stage    string
	Reason   string
	FailedAt time.Time
}

func (e *SnipeFailedEvent) EventType() string {
	return EventTypeSnipeFailed
}

func (e *SnipeFailedEvent) OccurredAt() time.Time {
	return e.FailedAt
}

// AggregateID returns the pool address
func (e *SnipeFailedEvent) AggregateID() string {
	return e.Pool.ID.String()
}
