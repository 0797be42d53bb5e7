package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"admitdesk/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const channelPrefix = "realtime:"

// ChannelName is the Redis pub/sub channel carrying events for room.
func ChannelName(room string) string {
	return channelPrefix + room
}

// RedisPublisher fans events out to every instance through Redis pub/sub.
type RedisPublisher struct {
	Client *redis.Client
}

func (p *RedisPublisher) Publish(ctx context.Context, room string, event models.RealtimeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode realtime event: %w", err)
	}
	if err := p.Client.Publish(ctx, ChannelName(room), body).Err(); err != nil {
		return fmt.Errorf("failed to publish realtime event to %s: %w", room, err)
	}
	return nil
}

// wireEvent keeps the payload as raw JSON so it is re-sent byte for byte.
type wireEvent struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// RedisBridge forwards events published on any instance into the local hub.
type RedisBridge struct {
	Client *redis.Client
	Hub    *Hub
	Logger *zap.Logger
}

// Start subscribes and returns once the subscription is confirmed; events
// are forwarded in the background until ctx is cancelled.
func (b *RedisBridge) Start(ctx context.Context) error {
	sub := b.Client.PSubscribe(ctx, channelPrefix+"*")
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("failed to subscribe to realtime channels: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				b.forward(msg)
			}
		}
	}()
	return nil
}

func (b *RedisBridge) forward(msg *redis.Message) {
	room := strings.TrimPrefix(msg.Channel, channelPrefix)

	var ev wireEvent
	if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
		b.logger().Warn("Dropping malformed realtime message",
			zap.String("channel", msg.Channel), zap.Error(err))
		return
	}
	b.Hub.Emit(room, models.RealtimeEvent{Name: ev.Name, Payload: ev.Payload})
}

func (b *RedisBridge) logger() *zap.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return zap.L()
}
