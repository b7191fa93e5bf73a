package service

import (
	"context"
	"encoding/json"
	"errors"

	"knotpad-be/internal/pkg/logger"
	"knotpad-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder receives committed change events. *nats.Publisher and
// *websocket.Hub satisfy it.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

// Forwarders delivers to every forwarder, even after one fails.
type Forwarders []EventForwarder

func (f Forwarders) Publish(ctx context.Context, event events.Event) error {
	var errs []error
	for _, fw := range f {
		if err := fw.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarder  EventForwarder
	logger     logger.ILogger
}

// NewConsumerService forwards change events to forwarder. A nil forwarder
// only logs them.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	forwarder EventForwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarder:  forwarder,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.ChangeEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal change event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		// Redelivery cannot fix a malformed payload.
		msg.Ack()
		return
	}

	if cs.forwarder == nil {
		cs.logger.Debug("ConsumerService", "Change event", event.Payload())
		msg.Ack()
		return
	}

	if err := cs.forwarder.Publish(ctx, event); err != nil {
		cs.logger.Error("ConsumerService", "Failed to forward change event", map[string]interface{}{
			"type":      event.Type,
			"entity_id": event.EntityId,
			"error":     err,
		})
	}

	// Nack would make gochannel redeliver immediately; failed forwards are dropped.
	msg.Ack()
}
