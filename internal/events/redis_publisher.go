package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPublisher mirrors domain events onto a redis pub/sub channel so
// external consumers can follow ticket activity.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisPublisher creates the publisher.
func NewRedisPublisher(client *redis.Client, channel string, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel, logger: logger}
}

// RegisterHandlers subscribes the publisher to every event type.
func (p *RedisPublisher) RegisterHandlers(dispatcher Dispatcher) {
	if dispatcher == nil || p.client == nil {
		return
	}
	for _, eventType := range AllEventTypes {
		dispatcher.Subscribe(eventType, p.publish)
	}
}

func (p *RedisPublisher) publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		// a dropped mirror must not fail the originating request
		p.logger.Warn("redis event publish failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
	return nil
}
