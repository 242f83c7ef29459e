package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/civic-service/internal/config"
)

const (
	redisDataPrefix    = "civic:data:"
	redisChannelPrefix = "civic:changes:"
)

// Redis implements both Store and Notifier on a single go-redis client:
// documents live under civic:data:<key>, change events go over pub/sub
// channels named civic:changes:<key>.
type Redis struct {
	Client *redis.Client
	logger *zap.Logger
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, logger: logger}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// Load fetches the document stored under key.
func (r *Redis) Load(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.Client.Get(ctx, redisDataPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Save writes the document under key.
func (r *Redis) Save(ctx context.Context, key string, value []byte) error {
	return r.Client.Set(ctx, redisDataPrefix+key, value, 0).Err()
}

// Publish broadcasts a payload-less change event for key.
func (r *Redis) Publish(ctx context.Context, key string) error {
	return r.Client.Publish(ctx, redisChannelPrefix+key, "").Err()
}

// Subscribe delivers changed key names until ctx is cancelled.
func (r *Redis) Subscribe(ctx context.Context, keys ...string) (<-chan string, error) {
	channels := make([]string, 0, len(keys))
	for _, key := range keys {
		channels = append(channels, redisChannelPrefix+key)
	}
	sub := r.Client.Subscribe(ctx, channels...)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				select {
				case out <- msg.Channel[len(redisChannelPrefix):]:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
