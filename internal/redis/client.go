package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type Client struct {
	rdb *redis.Client
}

// Session is the per-token auth state resolved by the middleware. The token
// itself is opaque; everything the request needs lives here or in the DB.
type Session struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// CreateSession stores the session under a fresh opaque token and returns it.
func (c *Client) CreateSession(session *Session, ttl time.Duration) (string, error) {
	ctx := context.Background()
	token := uuid.NewString()

	jsonData, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session data: %w", err)
	}
	if err := c.rdb.Set(ctx, "session:"+token, jsonData, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (c *Client) GetSession(token string) (*Session, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "session:"+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	return &session, nil
}

func (c *Client) DeleteSession(token string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "session:"+token).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
