package services

import (
	"context"
	"time"
)

// Cache is the slice of the Redis cache the services use. Satisfied by
// *cache.RedisCache; tests swap in an in-memory fake.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
}

// EventProducer publishes domain events. Satisfied by
// *messaging.KafkaProducer.
type EventProducer interface {
	SendMessage(topic string, brokers []string, key string, value interface{}) error
}
