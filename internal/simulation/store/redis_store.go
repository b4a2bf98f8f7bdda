package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/c14220110/poliklinik-analytics/internal/simulation/models"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore keeps the slot as a JSON value under a single key.
type RedisStore struct {
	Client *redis.Client
	Key    string
	Logger *zap.Logger
}

func NewRedisStore(client *redis.Client, key string, logger *zap.Logger) *RedisStore {
	return &RedisStore{Client: client, Key: key, Logger: logger}
}

func (s *RedisStore) Save(ctx context.Context, record *models.SimulationRecord) error {
	data, err := encode(record)
	if err != nil {
		return err
	}
	if err := s.Client.Set(ctx, s.Key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key, err)
	}
	s.Logger.Debug("simulation saved", zap.String("key", s.Key), zap.Int("bytes", len(data)))
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*models.SimulationRecord, error) {
	data, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.Key, err)
	}
	record, err := decode(data)
	if err != nil {
		s.Logger.Warn("unreadable simulation payload", zap.String("key", s.Key), zap.Error(err))
		return nil, err
	}
	return record, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.Client.Del(ctx, s.Key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.Key, err)
	}
	return nil
}
