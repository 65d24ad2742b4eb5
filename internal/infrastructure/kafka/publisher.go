package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/segmentio/kafka-go"
)

// EventPublisher is the slice of the publisher the lifecycle services use.
type EventPublisher interface {
	PublishEscrow(event EscrowEvent) error
	PublishDispute(event DisputeEvent) error
}

type KafkaPublisher struct {
	writer       *kafka.Writer
	escrowTopic  string
	disputeTopic string
}

func NewKafkaPublisher(brokers []string, escrowTopic, disputeTopic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		escrowTopic:  escrowTopic,
		disputeTopic: disputeTopic,
	}
}

func (k *KafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	km := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}
	return k.writer.WriteMessages(context.Background(), km...)
}

func (k *KafkaPublisher) PublishEscrow(event EscrowEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.Publish(k.escrowTopic, domain.Message{Key: []byte(event.EscrowID), Value: v})
}

func (k *KafkaPublisher) PublishDispute(event DisputeEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.Publish(k.disputeTopic, domain.Message{Key: []byte(event.EscrowID), Value: v})
}

var _ domain.PublisherPort = (*KafkaPublisher)(nil)
var _ EventPublisher = (*KafkaPublisher)(nil)
