package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/journezy/tripplanner/internal/models"
)

// Key identifies one conventional flight search. Preferences are not part
// of the key: filtering happens after the provider call, so the same raw
// candidate set serves every preference combination.
type Key struct {
	Origin        string
	Destination   string
	DepartureDate string
	Currency      string
}

type Cache interface {
	Get(ctx context.Context, key Key) ([]models.FlightOption, bool)
	Set(ctx context.Context, key Key, options []models.FlightOption) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, key Key) ([]models.FlightOption, bool) {
	data, err := c.client.Get(ctx, generateKey(key)).Bytes()
	if err != nil {
		return nil, false
	}

	var options []models.FlightOption
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, false
	}

	return options, true
}

func (c *RedisCache) Set(ctx context.Context, key Key, options []models.FlightOption) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, generateKey(key), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, key Key) ([]models.FlightOption, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, key Key, options []models.FlightOption) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(key Key) string {
	data, _ := json.Marshal(key)
	hash := sha256.Sum256(data)
	return "flights:" + hex.EncodeToString(hash[:])
}
