package repository

import (
	"context"
	"fmt"

	"StockPilot/internal/domain/models"
	pkgkafka "StockPilot/pkg/kafka"
)

// KafkaAdvicePublisher streams every computed advice result to a Kafka
// topic, keyed by ticker so one ticker's advice lands in order on one
// partition.
type KafkaAdvicePublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaAdvicePublisher(producer *pkgkafka.Producer, topic string) *KafkaAdvicePublisher {
	return &KafkaAdvicePublisher{producer: producer, topic: topic}
}

func (p *KafkaAdvicePublisher) PublishAdvice(ctx context.Context, advice models.AdviceResult) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(advice.Ticker), advice); err != nil {
		return fmt.Errorf("publish advice %s: %w", advice.Ticker, err)
	}
	return nil
}

func (p *KafkaAdvicePublisher) Close() error {
	return p.producer.Close()
}
