package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher delivers serialized envelopes to a channel. The Discord gateway
// subscribes to these channels; delivery beyond the broker is its problem.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisPublisher implements Publisher over Redis Pub/Sub.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}

// RouteChannel maps an envelope to the pub/sub channel the gateway listens on.
func RouteChannel(env Envelope) string {
	switch env.SourceType {
	case "League":
		return "channel:league:" + env.SourceID
	case "Player":
		return "channel:player:" + env.SourceID
	default:
		return "channel:system:outbox"
	}
}

// MarshalEnvelope builds the wire payload for one outbox event.
func MarshalEnvelope(env Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return data, nil
}
