package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_TTLAndTake(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.SetJSON(ctx, ResetTokenKey("abc"), "user-1", time.Minute))

	var got string
	hit, err := c.GetJSON(ctx, ResetTokenKey("abc"), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "user-1", got)

	hit, _ = c.TakeJSON(ctx, ResetTokenKey("abc"), &got)
	assert.True(t, hit)
	hit, _ = c.TakeJSON(ctx, ResetTokenKey("abc"), &got)
	assert.False(t, hit, "take is single use")

	require.NoError(t, c.SetJSON(ctx, "k", 1, time.Minute))
	now = now.Add(2 * time.Minute)
	var n int
	hit, _ = c.GetJSON(ctx, "k", &n)
	assert.False(t, hit, "expired")
}

func TestMemoryCache_Del(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.SetJSON(ctx, AdminStatsKey, map[string]int{"users": 1}, 0))
	require.NoError(t, c.Del(ctx, AdminStatsKey))

	var m map[string]int
	hit, err := c.GetJSON(ctx, AdminStatsKey, &m)
	require.NoError(t, err)
	assert.False(t, hit)
}
