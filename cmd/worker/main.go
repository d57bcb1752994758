package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/lamnguyen/folio/adapters/event"
	httpAdapter "github.com/lamnguyen/folio/adapters/http"
	"github.com/lamnguyen/folio/adapters/persistence"
	"github.com/lamnguyen/folio/internal/config"
	"github.com/lamnguyen/folio/pkg/logger"
)

// The worker drops the cached public views whenever a portfolio event
// arrives, so every API replica serves fresh data on its next read.
func main() {
	fmt.Println("Starting Folio Cache Worker...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.Redis.Addr == "" {
		appLogger.Fatal("Worker requires Redis", nil)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("Worker requires Kafka brokers", nil)
	}

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPortfolioEvents,
		GroupID:  "folio-cache-invalidator",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicPortfolioEvents))

	ctx := context.Background()
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.PortfolioEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal event, skipping", err, zap.String("key", string(msg.Key)))
			commitMessage(consumer, msg, appLogger)
			continue
		}

		cacheKey := httpAdapter.CacheKeyForEntity(payload.Entity)
		if cacheKey == "" {
			appLogger.Warn("Event for unknown entity, skipping", zap.String("entity", payload.Entity))
			commitMessage(consumer, msg, appLogger)
			continue
		}

		if err := redisClient.Del(ctx, cacheKey).Err(); err != nil {
			appLogger.Error("Failed to invalidate cache", err, zap.String("cache_key", cacheKey))
			continue
		}

		appLogger.Info("Invalidated cached view",
			zap.String("entity", payload.Entity),
			zap.String("op", payload.Op),
			zap.String("cache_key", cacheKey),
		)
		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
