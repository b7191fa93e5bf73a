package cache

import (
	"context"

	"knotpad-be/internal/pkg/logger"
)

// Bus carries invalidated tags between instances sharing one database.
type Bus interface {
	Publish(ctx context.Context, tags []string) error
	// Subscribe blocks until ctx is done, calling apply for every batch of
	// tags published by another instance.
	Subscribe(ctx context.Context, apply func(tags []string)) error
	Close() error
}

// Broadcasting applies invalidations locally and then publishes them on bus.
type Broadcasting struct {
	local  Store
	bus    Bus
	logger logger.ILogger
}

func NewBroadcasting(local Store, bus Bus, log logger.ILogger) *Broadcasting {
	return &Broadcasting{
		local:  local,
		bus:    bus,
		logger: log,
	}
}

func (b *Broadcasting) GetOrCompute(ctx context.Context, key Key, tags []string, load Loader) (any, error) {
	return b.local.GetOrCompute(ctx, key, tags, load)
}

func (b *Broadcasting) Invalidate(ctx context.Context, tags ...string) {
	if len(tags) == 0 {
		return
	}
	b.local.Invalidate(ctx, tags...)
	if err := b.bus.Publish(ctx, tags); err != nil {
		// Other instances keep their copies until the TTL expires.
		b.logger.Warn("Cache", "Failed to publish invalidation", map[string]interface{}{
			"tags":  tags,
			"error": err.Error(),
		})
	}
}

// Listen applies remote invalidations to the local store until ctx is done.
func (b *Broadcasting) Listen(ctx context.Context) {
	b.logger.Info("Cache", "Listening for cluster invalidations", nil)
	err := b.bus.Subscribe(ctx, func(tags []string) {
		b.local.Invalidate(ctx, tags...)
		b.logger.Debug("Cache", "Applied remote invalidation", map[string]interface{}{"tags": tags})
	})
	if err != nil && ctx.Err() == nil {
		b.logger.Error("Cache", "Invalidation subscription stopped", map[string]interface{}{"error": err})
	}
}
