package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/krishma/storefront/internal/domain"
)

// RedisStore implements Store on Redis for multi-instance deployments. Keys
// carry a session TTL with jitter so a fleet's carts don't expire in lockstep.
type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:  client,
		baseTTL: cartTTL,
	}
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &cart, nil
}

func (r *RedisStore) Put(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(120)) * time.Second
	if err := r.client.Set(ctx, cartKey(cart.SessionID), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// updateRetries bounds optimistic-lock retries when concurrent writers race
// on the same session key.
const updateRetries = 5

// Update serializes the read-modify-write with WATCH/MULTI: if another
// writer touches the key between the read and the commit the transaction
// fails and is retried, so concurrent mutations never lose each other.
func (r *RedisStore) Update(ctx context.Context, sessionID string, fn func(cart *domain.Cart) error) (*domain.Cart, error) {
	key := cartKey(sessionID)
	var result *domain.Cart

	txn := func(tx *redis.Tx) error {
		now := time.Now()
		cart := &domain.Cart{SessionID: sessionID, CreatedAt: now, UpdatedAt: now}

		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("redis get failed: %w", err)
		default:
			if err := json.Unmarshal(data, cart); err != nil {
				return fmt.Errorf("unmarshal cart failed: %w", err)
			}
		}

		if err := fn(cart); err != nil {
			return err
		}
		cart.UpdatedAt = now

		payload, err := json.Marshal(cart)
		if err != nil {
			return fmt.Errorf("marshal cart failed: %w", err)
		}

		jitter := time.Duration(rand.Intn(120)) * time.Second
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.baseTTL+jitter)
			return nil
		})
		if err != nil {
			return fmt.Errorf("redis set failed: %w", err)
		}
		result = cart
		return nil
	}

	for i := 0; i < updateRetries; i++ {
		err := r.client.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("redis update failed: %w", redis.TxFailedErr)
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
