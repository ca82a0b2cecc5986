package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"automation-dashboard/internal/config"
	"automation-dashboard/internal/dispatch"
	"automation-dashboard/internal/handler"
	"automation-dashboard/internal/httpserver"
	"automation-dashboard/internal/store"
	"automation-dashboard/pkg/db"
	"automation-dashboard/pkg/logger"
	"automation-dashboard/pkg/mq"
	"automation-dashboard/pkg/redis"
)

func main() {
	cfg := config.Load()

	logger := logger.NewLogger()
	defer logger.Sync()

	// Task store backend
	taskStore := newTaskStore(cfg, logger)

	// Optional event publisher
	var publisher *mq.Publisher
	if cfg.MQ.URL != "" {
		var err error
		publisher, err = mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer publisher.Close()
	}

	// Provider selection happens once at startup: if the compute service is
	// unreachable (or fallback mode is forced), the local provider serves
	// the whole process lifetime.
	remote := dispatch.NewRemoteProvider(
		cfg.Compute.Endpoint,
		time.Duration(cfg.Compute.TimeoutSecs)*time.Second,
		logger,
	)
	local := dispatch.NewLocalProvider(logger)

	var primary dispatch.Provider = remote
	var fallback dispatch.Provider = local
	if cfg.Compute.FallbackMode || !remote.Healthy(context.Background()) {
		logger.Warn("Compute service unavailable at startup, running in fallback mock mode",
			zap.String("endpoint", cfg.Compute.Endpoint),
		)
		primary = local
		fallback = nil
	}

	dispatcher := dispatch.NewDispatcher(primary, fallback, taskStore, eventPublisher(publisher), logger)

	taskHandler := handler.NewTaskHandler(dispatcher, taskStore, logger)

	router := httpserver.NewAPIRouter(taskHandler, taskStore, publisher, cfg.CORS)

	logger.Info("Starting automation dashboard API",
		zap.String("port", cfg.Server.Port),
		zap.String("store_backend", cfg.Store.Backend),
		zap.String("provider", primary.Name()),
	)
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}

func newTaskStore(cfg *config.Config, logger *zap.Logger) store.TaskStore {
	switch cfg.Store.Backend {
	case "redis":
		rdb := redis.NewRedisClient(cfg.Redis)
		return store.NewRedisStore(rdb)
	case "postgres":
		pool, err := db.NewConnection(cfg.DB, logger)
		if err != nil {
			log.Fatalf("DB initialization failed: %v", err)
		}
		return store.NewPostgresStore(pool, logger)
	default:
		return store.NewMemoryStore()
	}
}

// eventPublisher keeps the dispatcher's publisher nil when MQ is disabled;
// a typed nil *mq.Publisher must not masquerade as a non-nil interface.
func eventPublisher(publisher *mq.Publisher) dispatch.EventPublisher {
	if publisher == nil {
		return nil
	}
	return publisher
}
