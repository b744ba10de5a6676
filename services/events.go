package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"nutritrack-backend/utils"
)

// publishEvent sends a domain event without blocking the request. A nil
// producer disables events entirely.
func publishEvent(producer utils.KafkaProducer, topic string, event map[string]interface{}) {
	if producer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal %s event: %v", topic, err)
			return
		}
		if err := producer.SendMessage(ctx, topic, nil, data); err != nil {
			log.Printf("Failed to send %s event: %v", topic, err)
		}
	}()
}
