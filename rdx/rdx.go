package rdx

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

// SetJSON marshals v and stores it under key with the given TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Conn.Set(ctx, key, data, ttl).Err()
}

// GetJSON loads key into v. Returns redis.Nil when the key does not exist.
func GetJSON(ctx context.Context, key string, v any) error {
	data, err := Conn.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func Del(ctx context.Context, key string) error {
	return Conn.Del(ctx, key).Err()
}
