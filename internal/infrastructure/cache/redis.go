package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/drewshoe/top40-api/internal/application/dto"
)

// Redis cache compartida entre réplicas. Los DTOs se serializan como JSON;
// un valor que no decodifica se trata como miss (la corrida se recalcula).
type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{client: client}
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}

func (c *Redis) Get(ctx context.Context, key string) (*dto.ReportTableDTO, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var table dto.ReportTableDTO
	if err := json.Unmarshal([]byte(val), &table); err != nil {
		return nil, false, nil
	}
	return &table, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, value *dto.ReportTableDTO, ttl time.Duration) error {
	if value == nil || ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
