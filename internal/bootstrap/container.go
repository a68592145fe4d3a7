package bootstrap

import (
	"context"
	"log"

	"insight-center-be/internal/config"
	"insight-center-be/internal/controller"
	"insight-center-be/internal/handler"
	"insight-center-be/internal/pkg/logger"
	"insight-center-be/internal/repository/contract"
	"insight-center-be/internal/repository/memory"
	"insight-center-be/internal/repository/redisstore"
	"insight-center-be/internal/repository/unitofwork"
	"insight-center-be/internal/service"
	"insight-center-be/internal/websocket"
	"insight-center-be/pkg/navigation"

	pktNats "insight-center-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DashboardController controller.IDashboardController
	HealthController    controller.IHealthController
	LiveHandler         *handler.LiveHandler

	// Background services (started by main.go)
	ConsumerService       service.IConsumerService
	NavigationService     service.INavigationService
	DatasetReloadListener service.IDatasetReloadListener
	WebSocketHub          *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger

	// 2. Event Bus (search audit)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	rdb := newRedisClient(cfg)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var eventSink service.EventSink
	var eventSubscriber service.EventSubscriber
	if cfg.Messaging.NatsEnabled {
		pub, err := pktNats.NewPublisher(cfg.Messaging.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventSink = pub
			c.closers = append(c.closers, pub.Close)
		}

		sub, err := pktNats.NewSubscriber(cfg.Messaging.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			eventSubscriber = sub
			c.closers = append(c.closers, sub.Close)
		}
	}

	// 4. Session Storage
	var sessionRepo contract.SessionRepository
	if cfg.Session.Store == "redis" && rdb != nil {
		sessionRepo = redisstore.NewSessionRepository(rdb, cfg.Session.TTL)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.TTL)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 5. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, uuid.NewString(), wsLogger)

	// 6. Services
	datasetService := service.NewDatasetService(
		uowFactory,
		cfg.Cache.DatasetTTL,
		cfg.Cache.CleanupInterval,
		cfg.Dashboard.PolicyTopN,
		sysLogger,
	)
	c.DatasetReloadListener = service.NewDatasetReloadListener(eventSubscriber, datasetService, sysLogger)
	publisherService := service.NewPublisherService(cfg.Messaging.SearchAuditTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Messaging.SearchAuditTopic,
		uowFactory,
		sysLogger,
	)

	navigationEvents := service.NewNavigationEventPublisher(eventSink, sysLogger)
	c.closers = append(c.closers, navigationEvents.Close)

	c.NavigationService = service.NewNavigationService(
		datasetService,
		sessionRepo,
		publisherService,
		navigationEvents,
		c.WebSocketHub,
		service.NavigationConfig{
			PolicyTopN:       cfg.Dashboard.PolicyTopN,
			TopSearchedLimit: cfg.Dashboard.TopSearchedLimit,
			Options: navigation.Options{
				DeepLinkForcesAnalysis: cfg.Dashboard.DeepLinkForcesAnalysis,
			},
		},
		sysLogger,
	)

	// 7. Controllers
	c.DashboardController = controller.NewDashboardController(c.NavigationService)
	c.HealthController = controller.NewHealthController()
	c.LiveHandler = handler.NewLiveHandler(c.NavigationService, c.WebSocketHub, wsLogger)

	return c
}

// Close releases connections opened by NewContainer, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

// newRedisClient returns nil when redis is unreachable; every redis consumer
// has an in-process fallback.
func newRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Session.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.Session.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.Session.RedisURL}
	}

	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
