package store

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tilery/tilery/pkg/errors"
)

// keyPrefix namespaces board keys inside a shared Redis instance.
const keyPrefix = "tilery:board:"

// RedisConfig holds connection settings for the Redis store.
type RedisConfig struct {
	Addr     string        // host:port (e.g. "localhost:6379")
	Password string        // optional
	DB       int           // database number
	TTL      time.Duration // expiry per board; 0 means boards never expire
}

// Redis is a Redis-backed store for multi-instance share servers.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to redis at %s", cfg.Addr)
	}
	return &Redis{client: client, ttl: cfg.TTL}, nil
}

// Load retrieves a payload by code. A missing key is a miss, not an error.
func (s *Redis) Load(ctx context.Context, code string) ([]byte, bool, error) {
	if err := errors.ValidateBoardCode(code); err != nil {
		return nil, false, err
	}

	data, err := s.client.Get(ctx, keyPrefix+code).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStore, err, "loading board %s", code)
	}
	return data, true, nil
}

// Save stores a payload under code with the configured TTL.
func (s *Redis) Save(ctx context.Context, code string, data []byte) error {
	if err := errors.ValidateBoardCode(code); err != nil {
		return err
	}

	if err := s.client.Set(ctx, keyPrefix+code, data, s.ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "saving board %s", code)
	}
	return nil
}

// Delete removes a board. Deleting a missing board is not an error.
func (s *Redis) Delete(ctx context.Context, code string) error {
	if err := errors.ValidateBoardCode(code); err != nil {
		return err
	}

	if err := s.client.Del(ctx, keyPrefix+code).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "deleting board %s", code)
	}
	return nil
}

// List returns all stored board codes. It scans rather than using KEYS so a
// large store doesn't block the server.
func (s *Redis) List(ctx context.Context) ([]string, error) {
	var codes []string
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		codes = append(codes, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "listing boards")
	}
	return codes, nil
}

// Close closes the underlying Redis client.
func (s *Redis) Close() error {
	return s.client.Close()
}

// Ensure Redis implements Store.
var _ Store = (*Redis)(nil)
