package services

import (
	"context"
	"time"

	"storeapi/internal/logging"

	"github.com/google/uuid"
)

// Event routing keys.
const (
	EventCompanyCreated = "company.created"
	EventCompanyUpdated = "company.updated"
	EventCompanyDeleted = "company.deleted"
	EventStoreCreated   = "store.created"
	EventStoreUpdated   = "store.updated"
	EventStoreDeleted   = "store.deleted"
)

// EventPublisher delivers entity lifecycle events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// Event is the payload published after a successful commit.
type Event struct {
	Type       string     `json:"type"`
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	CompanyID  *uuid.UUID `json:"companyId,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// publishEvent never fails the caller: the change is already committed.
func publishEvent(ctx context.Context, publisher EventPublisher, event Event) {
	if publisher == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	if err := publisher.Publish(ctx, event.Type, event); err != nil {
		logging.FromContext(ctx).WithError(err).WithField("event", event.Type).Warn("Failed to publish event")
	}
}
