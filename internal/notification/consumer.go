package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Pavan8023/webibook-backend/utils"
)

// StartKafkaConsumer reads the notification topic and turns bus messages into
// in-app notifications. Runs until ctx is cancelled; if Kafka is not
// configured it simply does not start.
func StartKafkaConsumer(ctx context.Context, svc Service) {
	reader := utils.NewKafkaReader()
	if reader == nil {
		log.Println("ℹ️ Kafka consumer not started (no brokers configured)")
		return
	}

	go func() {
		defer reader.Close()
		log.Println("✅ Kafka notification consumer started")

		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("⚠️ Kafka read failed: %v", err)
				continue
			}

			var msg utils.BusMessage
			if err := json.Unmarshal(m.Value, &msg); err != nil {
				log.Printf("⚠️ Kafka message unmarshal failed: %v", err)
				continue
			}

			switch msg.Type {
			case "REGISTRATION_CREATED":
				title, _ := msg.Payload["title"].(string)
				svc.NotifyHostOfRegistration(ctx, msg.EventID, msg.UserID, title)
			case "EVENT_LIVE":
				// Registrant fan-out happens synchronously in the sweep;
				// here we only ping the host.
				title, _ := msg.Payload["title"].(string)
				svc.NotifyHostEventLive(ctx, msg.EventID, title)
			default:
				log.Printf("ℹ️ Kafka: ignoring message type %q", msg.Type)
			}
		}
	}()
}
