package services

import (
	"context"
	"encoding/json"
	"log"
)

// Event channels consumed by downstream feed builders.
const (
	ChannelUserRegistered = "users.registered"
	ChannelPostCreated    = "posts.created"
)

// EventPublisher sends activity events to a broker. *mq.MQ satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// publishEvent emits an event best-effort. Event delivery never fails the
// request that produced it.
func publishEvent(ctx context.Context, events EventPublisher, channel string, payload any) {
	if events == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("marshal %s event: %v", channel, err)
		return
	}
	if _, err := events.Publish(ctx, channel, data, map[string]string{"event": channel}); err != nil {
		log.Printf("publish %s event: %v", channel, err)
	}
}
