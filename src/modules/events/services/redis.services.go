package events

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"filmoasis/src/logging"
	"filmoasis/src/metrics"
	events "filmoasis/src/modules/events/models"
)

// RedisPublisher sends each event as JSON on a Redis pub/sub channel.
type RedisPublisher struct {
	rdb     redis.UniversalClient
	channel string
}

func NewRedisPublisher(rdb redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, e events.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("event", string(e.Type)).Msg("failed to encode catalog event")
		metrics.EventsDropped.WithLabelValues("redis").Inc()
		return
	}

	// The request may already be finished by the time the event goes out.
	if err := p.rdb.Publish(context.WithoutCancel(ctx), p.channel, payload).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("channel", p.channel).
			Str("event", string(e.Type)).
			Msg("failed to publish catalog event")
		metrics.EventsDropped.WithLabelValues("redis").Inc()
		return
	}
	metrics.EventsPublished.WithLabelValues(string(e.Type), "redis").Inc()
}
