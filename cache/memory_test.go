package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryJSON(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var got []string
	ok, err := m.GetJSON(ctx, SlotsKey("d1", "2026-01-05", 0), &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.SetJSON(ctx, SlotsKey("d1", "2026-01-05", 0), []string{"09:00", "09:30"}, time.Minute))
	ok, err = m.GetJSON(ctx, SlotsKey("d1", "2026-01-05", 0), &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"09:00", "09:30"}, got)

	require.NoError(t, m.Delete(ctx, SlotsKey("d1", "2026-01-05", 0)))
	ok, _ = m.GetJSON(ctx, SlotsKey("d1", "2026-01-05", 0), &got)
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	n, _ := m.Incr(ctx, LoginFailKey("a@b.c"), time.Minute)
	assert.Equal(t, int64(1), n)
	n, _ = m.Incr(ctx, LoginFailKey("a@b.c"), time.Minute)
	assert.Equal(t, int64(2), n)

	now = now.Add(2 * time.Minute)
	n, _ = m.Incr(ctx, LoginFailKey("a@b.c"), time.Minute)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCount(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	key := SlotsGenKey("d1", "2026-01-05")

	n, err := m.Count(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, _ = m.Incr(ctx, key, time.Hour)
	_, _ = m.Incr(ctx, key, time.Hour)
	n, err = m.Count(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NotEqual(t, SlotsKey("d1", "2026-01-05", 1), SlotsKey("d1", "2026-01-05", 2))
}
