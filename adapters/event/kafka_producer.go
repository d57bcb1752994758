package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/lamnguyen/folio/internal/config"
)

const TopicPortfolioEvents = "portfolio.events"

// PortfolioEventPayload describes one store mutation: which entity changed,
// what happened to it, and the identity key involved.
type PortfolioEventPayload struct {
	Entity     string    `json:"entity"`
	Op         string    `json:"op"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	PortfolioEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPortfolioEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{PortfolioEventsWriter: writer}, nil
}

// Publish sends one change event. Best-effort: callers log failures and move
// on, a lost event never fails the mutation that produced it.
func (c *KafkaProducerClient) Publish(ctx context.Context, payload PortfolioEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal portfolio event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(payload.Entity + "." + payload.Op),
		Value: value,
	}
	if err := c.PortfolioEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write portfolio event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.PortfolioEventsWriter != nil {
		c.PortfolioEventsWriter.Close()
	}
}
