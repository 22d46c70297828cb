package cache

import (
	"context"
	"time"
)

const (
	CategoryListKey = "categories:all"
)

const (
	CategoryListTTL = 10 * time.Minute
)

// Invalidate deletes key; it is a no-op without Redis.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoryListKey)
}
