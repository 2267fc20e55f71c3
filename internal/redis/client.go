package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ankirsydii/Orderly/internal/cart"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// SessionData is the logged-in identity kept per bearer token.
type SessionData struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
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

// Session management
func (c *Client) SetSession(token string, data *SessionData, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, "session:"+token, jsonData, ttl).Err()
}

func (c *Client) GetSession(token string) (*SessionData, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "session:"+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(token string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "session:"+token).Err()
}

// Cart storage. Each checkout session owns exactly one cart; the TTL keeps
// abandoned carts from accumulating.
func (c *Client) SetCart(token string, crt *cart.Cart, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(crt)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	return c.rdb.Set(ctx, "cart:"+token, jsonData, ttl).Err()
}

func (c *Client) GetCart(token string) (*cart.Cart, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "cart:"+token).Result()
	if err != nil {
		if err == redis.Nil {
			// No stored cart means an empty one, not an error.
			return cart.New(), nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var crt cart.Cart
	if err := json.Unmarshal([]byte(val), &crt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return &crt, nil
}

func (c *Client) DeleteCart(token string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "cart:"+token).Err()
}

// Password reset tokens
func (c *Client) SetResetToken(token, credentialID string, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, "reset:"+token, credentialID, ttl).Err()
}

func (c *Client) GetResetToken(token string) (string, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "reset:"+token).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("reset token not found or expired")
		}
		return "", fmt.Errorf("failed to get reset token: %w", err)
	}
	return val, nil
}

func (c *Client) DeleteResetToken(token string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "reset:"+token).Err()
}

// Change notifications. Writers publish after every successful catalog or
// order write; the realtime feeds re-read the collection on each signal.
func (c *Client) PublishChange(ctx context.Context, collection string) error {
	return c.rdb.Publish(ctx, changeChannel(collection), "changed").Err()
}

// SubscribeChanges returns a signal channel and a cancel func. The cancel
// func must be called on teardown or the subscription leaks. Signals
// coalesce: a slow consumer sees at most one pending notification.
func (c *Client) SubscribeChanges(ctx context.Context, collection string) (<-chan struct{}, func()) {
	sub := c.rdb.Subscribe(ctx, changeChannel(collection))
	signals := make(chan struct{}, 1)

	go func() {
		defer close(signals)
		for range sub.Channel() {
			select {
			case signals <- struct{}{}:
			default:
			}
		}
	}()

	return signals, func() { _ = sub.Close() }
}

func changeChannel(collection string) string {
	return "orderly:changed:" + collection
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
