package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/moderation/internal/domain/shared/events"
	"github.com/orris-inc/moderation/internal/infrastructure/config"
	"github.com/orris-inc/moderation/internal/infrastructure/pubsub"
	"github.com/orris-inc/moderation/internal/interfaces/worker"
	"github.com/orris-inc/moderation/internal/shared/goroutine"
	"github.com/orris-inc/moderation/internal/shared/logger"
)

func main() {
	// Parse environment from command line or env variable
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting moderation event relay", "environment", env)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	dispatcher := events.NewInMemoryEventDispatcher(256,
		events.WithMaxHandlers(8),
		events.WithErrorHandler(func(evt events.DomainEvent, err error) {
			log.Errorw("moderation event handler failed",
				"type", evt.GetEventType(),
				"aggregate_id", evt.GetAggregateID(),
				"error", err,
			)
		}),
	)
	if err := worker.RegisterAuditHandlers(dispatcher, log.Named("audit")); err != nil {
		log.Fatalw("failed to register event handlers", "error", err)
	}

	bus := pubsub.NewRedisModerationEventBus(redisClient, cfg.Moderation.EventsChannel, log.Named("events"))
	relay := worker.NewRelay(bus, dispatcher, log)

	done := goroutine.SafeGo(log, "moderation-event-relay", func() error {
		return relay.Run(ctx)
	})

	select {
	case err := <-done:
		if err != nil {
			log.Errorw("event relay stopped", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Infow("received signal, shutting down")
		select {
		case err := <-done:
			if err != nil {
				log.Errorw("event relay stopped", "error", err)
			}
		case <-time.After(30 * time.Second):
			log.Warnw("event relay did not drain in time")
		}
	}

	log.Infow("moderation event relay stopped")
}
