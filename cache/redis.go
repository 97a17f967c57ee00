package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	otpTTL         = 5 * time.Minute
	listTTL        = 5 * time.Minute
	idempotencyTTL = 24 * time.Hour
)

var ErrNoOTP = errors.New("otp expired or not issued")

type Cache struct {
	RDB *redis.Client
}

func Connect(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Println("Redis connected")
	return &Cache{RDB: rdb}
}

// SetOTP stores a reset code for an email address. Codes expire after
// five minutes and are single use (see ConsumeOTP).
func (c *Cache) SetOTP(ctx context.Context, email, code string) error {
	return c.RDB.Set(ctx, "otp:"+email, code, otpTTL).Err()
}

// ConsumeOTP fetches and deletes the code in one round trip, so a code
// can never be replayed.
func (c *Cache) ConsumeOTP(ctx context.Context, email string) (string, error) {
	code, err := c.RDB.GetDel(ctx, "otp:"+email).Result()
	if err == redis.Nil {
		return "", ErrNoOTP
	}
	return code, err
}

// AcquireIdempotency returns false when the key has already been used.
func (c *Cache) AcquireIdempotency(ctx context.Context, key string) (bool, error) {
	return c.RDB.SetNX(ctx, "idem:"+key, 1, idempotencyTTL).Result()
}

func (c *Cache) GetJSON(ctx context.Context, key string, out interface{}) bool {
	cached, err := c.RDB.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), out) == nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	js, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.RDB.Set(ctx, key, js, listTTL)
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	c.RDB.Del(ctx, keys...)
}
