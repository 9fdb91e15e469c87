package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisMirror republishes domain events onto a Redis channel so
// external consumers can tail the stream. Delivery is best effort;
// publish failures are logged and never fail the originating request.
type RedisMirror struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisMirror creates the mirror.
func NewRedisMirror(client *redis.Client, channel string, logger *zap.Logger) *RedisMirror {
	return &RedisMirror{client: client, channel: channel, logger: logger}
}

// Register subscribes the mirror to every event type.
func (m *RedisMirror) Register(dispatcher Dispatcher) {
	if m == nil || m.client == nil || dispatcher == nil {
		return
	}
	for _, eventType := range AllEventTypes() {
		dispatcher.Subscribe(eventType, m.handle)
	}
}

func (m *RedisMirror) handle(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		m.logger.Error("marshal event for mirror", zap.Error(err))
		return err
	}
	if err := m.client.Publish(ctx, m.channel, payload).Err(); err != nil {
		m.logger.Warn("mirror event to redis",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	return nil
}
