package utils

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ======================
// Kafka (event bus for notifications)
// ======================

const DefaultNotificationTopic = "webibook.notifications"

var kafkaWriter *kafka.Writer

// BusMessage is the envelope published to the notification topic
type BusMessage struct {
	Type       string                 `json:"type"` // REGISTRATION_CREATED, EVENT_LIVE, ...
	EventID    uint                   `json:"event_id"`
	UserID     uint                   `json:"user_id,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// InitializeKafka sets up the shared writer; a missing broker config is
// tolerated so local development works without Kafka
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, event bus disabled")
		return
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = DefaultNotificationTopic
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	log.Printf("✅ Kafka writer initialized (brokers=%s topic=%s)", brokers, topic)
}

// PublishBusMessage writes one message to the notification topic.
// Failures are logged and swallowed so the request path never depends on Kafka.
func PublishBusMessage(ctx context.Context, msg BusMessage) {
	if kafkaWriter == nil {
		return
	}
	if msg.OccurredAt.IsZero() {
		msg.OccurredAt = time.Now()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("⚠️ Kafka marshal failed: %v", err)
		return
	}

	if err := kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Type),
		Value: data,
	}); err != nil {
		log.Printf("⚠️ Kafka publish failed (%s): %v", msg.Type, err)
	}
}

// NewKafkaReader builds a reader for the notification topic consumer group
func NewKafkaReader() *kafka.Reader {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = DefaultNotificationTopic
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		GroupID:  "webibook-notifications",
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
