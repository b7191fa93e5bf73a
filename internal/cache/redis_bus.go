package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type invalidationMessage struct {
	Origin string   `json:"origin"`
	Tags   []string `json:"tags"`
}

// RedisBus publishes invalidations on a Redis pub/sub channel. Messages sent
// by this instance are ignored on receipt.
type RedisBus struct {
	rdb     *redis.Client
	channel string
	origin  string
}

func NewRedisBus(rdb *redis.Client, channel string) *RedisBus {
	return &RedisBus{
		rdb:     rdb,
		channel: channel,
		origin:  uuid.NewString(),
	}
}

func (b *RedisBus) Publish(ctx context.Context, tags []string) error {
	payload, err := json.Marshal(invalidationMessage{Origin: b.origin, Tags: tags})
	if err != nil {
		return fmt.Errorf("encode invalidation: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish invalidation: %w", err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context, apply func(tags []string)) error {
	pubsub := b.rdb.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	// Wait for the subscription confirmation so startup errors surface here.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var payload invalidationMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				continue
			}
			if payload.Origin == b.origin || len(payload.Tags) == 0 {
				continue
			}
			apply(payload.Tags)
		}
	}
}

func (b *RedisBus) Close() error {
	return b.rdb.Close()
}
