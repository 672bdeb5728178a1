// Package cache stores short-lived JSON values: password-reset tokens and
// the admin dashboard snapshot.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	// TakeJSON reads and deletes key in one step, for single-use values.
	TakeJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	Del(ctx context.Context, keys ...string) error
}

const (
	AdminStatsKey = "admin:stats"
	resetPrefix   = "auth:reset:"
)

func ResetTokenKey(token string) string { return resetPrefix + token }
