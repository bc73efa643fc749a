package publisher

import (
	"context"

	"github.com/redis/go-redis/v9"

	"comprende-prod/trademe/logger"
	apperrors "comprende-prod/trademe/pkg/errors"
)

// RedisPublisher implements Publisher using a Redis stream
type RedisPublisher struct {
	client          *redis.Client
	stream          string
	streamMaxLength int
	log             *logger.Logger
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(addr string, db int, stream string, streamMaxLength int) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisPublisher{
		client:          client,
		stream:          stream,
		streamMaxLength: streamMaxLength,
		log:             logger.ForPublisher().WithField("stream", stream),
	}
}

// Ping checks the Redis connection
func (p *RedisPublisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return apperrors.NewPublisher("redis", "server unreachable", err)
	}
	return nil
}

// Publish appends each message to the stream as the value of field key,
// inside a single MULTI/EXEC transaction.
// The stream is capped approximately at the configured maximum length.
func (p *RedisPublisher) Publish(ctx context.Context, key string, messages ...[]byte) error {
	if len(messages) == 0 {
		return nil
	}

	_, err := p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, message := range messages {
			args := &redis.XAddArgs{
				Stream: p.stream,
				Values: map[string]interface{}{
					key: message,
				},
			}
			if p.streamMaxLength > 0 {
				args.MaxLen = int64(p.streamMaxLength)
				args.Approx = true
			}
			pipe.XAdd(ctx, args)
		}
		return nil
	})
	if err != nil {
		return apperrors.NewPublisher("redis", "xadd to "+p.stream, err)
	}

	p.log.Debug().Int("count", len(messages)).Msg("Published batch")
	return nil
}

// TrimStreams trims the stream to exactly the configured maximum length
func (p *RedisPublisher) TrimStreams(ctx context.Context) error {
	if p.streamMaxLength <= 0 {
		return nil
	}
	if err := p.client.XTrimMaxLen(ctx, p.stream, int64(p.streamMaxLength)).Err(); err != nil {
		return apperrors.NewPublisher("redis", "trim "+p.stream, err)
	}
	p.log.Debug().Int("max_length", p.streamMaxLength).Msg("Trimmed stream")
	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
