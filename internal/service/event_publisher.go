package service

import (
	"context"
	"encoding/json"
	"fmt"

	"health-booking-api/internal/domain/event"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisEventPublisher emits appointment events onto a Redis stream acting
// as the external event bus. When no bus name is configured, emission is
// skipped with a warning and never fails the request.
type RedisEventPublisher struct {
	client  *redis.Client
	busName string
	log     *logrus.Logger
}

func NewRedisEventPublisher(client *redis.Client, busName string, log *logrus.Logger) *RedisEventPublisher {
	return &RedisEventPublisher{
		client:  client,
		busName: busName,
		log:     log,
	}
}

func (p *RedisEventPublisher) Publish(ctx context.Context, ev event.AppointmentEvent) error {
	if p.busName == "" {
		p.log.Warn("APPOINTMENT_EVENT_BUS_NAME missing; skipping event emit")
		return nil
	}

	detail, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.busName,
		Values: map[string]interface{}{
			"source":     "health.appointments",
			"detailType": string(ev.EventType),
			"detail":     detail,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
