package bootstrap

import (
	"context"
	"time"

	"knotpad-be/internal/cache"
	"knotpad-be/internal/config"
	"knotpad-be/internal/controller"
	"knotpad-be/internal/handler"
	"knotpad-be/internal/pkg/logger"
	"knotpad-be/internal/pkg/session"
	"knotpad-be/internal/repository/unitofwork"
	"knotpad-be/internal/service"
	"knotpad-be/internal/websocket"

	pktNats "knotpad-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NotebookController controller.INotebookController
	NoteController     controller.INoteController

	// Handlers
	ChangeStreamHandler *handler.ChangeStreamHandler

	// Background Services (run by main.go)
	ConsumerService service.IConsumerService
	// CacheListener is nil unless cluster invalidation is enabled and Redis answered.
	CacheListener *cache.Broadcasting
	ChangeStream  *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync() })

	// 2. Cache
	tagCache := cache.NewTagCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	var store cache.Store = tagCache
	if cfg.Cache.Cluster {
		if rdb := connectRedis(cfg.App.RedisURL, sysLogger); rdb != nil {
			bus := cache.NewRedisBus(rdb, cfg.Cache.InvalidationChannel)
			broadcasting := cache.NewBroadcasting(tagCache, bus, sysLogger)
			store = broadcasting
			c.CacheListener = broadcasting
			c.closers = append(c.closers, func() { _ = bus.Close() })
		}
	}

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	c.ChangeStream = websocket.NewHub(sysLogger)
	forwarders := service.Forwarders{c.ChangeStream}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, cfg.Events.StreamName)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher, change events stay local", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			forwarders = append(forwarders, natsPub)
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.Topic, forwarders, sysLogger)

	// 4. Services
	notebookService := service.NewNotebookService(
		uowFactory,
		store,
		session.NewContextResolver(),
		publisherService,
		sysLogger,
	)
	noteService := service.NewNoteService(uowFactory, store, publisherService, sysLogger)

	// 5. Controllers
	c.NotebookController = controller.NewNotebookController(notebookService)
	c.NoteController = controller.NewNoteController(noteService)
	c.ChangeStreamHandler = handler.NewChangeStreamHandler(c.ChangeStream, cfg.Auth.JWTSecret, sysLogger)

	return c
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using it as address", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis, cache invalidation is single-instance", map[string]interface{}{
			"error": err.Error(),
		})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
