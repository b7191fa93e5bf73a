package service

import (
	"context"
	"encoding/json"

	"knotpad-be/internal/pkg/logger"
	"knotpad-be/internal/pkg/session"
	"knotpad-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.ChangeEvent) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) Publish(ctx context.Context, event events.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("type", event.Type)

	return p.publisher.Publish(p.topicName, msg)
}

// publishChange reports a committed mutation. The mutation already
// succeeded, so a publish failure is only logged.
func publishChange(ctx context.Context, publisher IPublisherService, log logger.ILogger, event events.ChangeEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("Events", "Failed to publish change event", map[string]interface{}{
			"type":      event.Type,
			"entity_id": event.EntityId,
			"error":     err.Error(),
		})
	}
}

// actingUser is the session user, if any. Note events carry it so the change
// stream can route them.
func actingUser(ctx context.Context) *uuid.UUID {
	id, ok := session.UserID(ctx)
	if !ok {
		return nil
	}
	return &id
}
