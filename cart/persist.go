package cart

import (
	"context"
	"errors"
	"time"

	"tienda/models"
	"tienda/rdx"

	"github.com/redis/go-redis/v9"
)

// storageKeyPrefix matches the storage slot name the storefront has always
// used for carts.
const storageKeyPrefix = "shopifree-cart:"

// abandoned carts are kept for 30 days
const cartTTL = 30 * 24 * time.Hour

// RedisPersister stores the serialized item list in Redis, keyed by session.
type RedisPersister struct{}

func NewRedisPersister() *RedisPersister {
	return &RedisPersister{}
}

func (RedisPersister) Save(ctx context.Context, sessionID string, items []models.CartItem) error {
	return rdx.SetJSON(ctx, storageKeyPrefix+sessionID, items, cartTTL)
}

func (RedisPersister) Load(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := rdx.GetJSON(ctx, storageKeyPrefix+sessionID, &items)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (RedisPersister) Delete(ctx context.Context, sessionID string) error {
	return rdx.Del(ctx, storageKeyPrefix+sessionID)
}
