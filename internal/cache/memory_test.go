package cache

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemory(t *testing.T, maxEntries int) *Memory {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m, err := NewMemory(maxEntries, 0, logger)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryRoundTrip(t *testing.T) {
	m := newTestMemory(t, 16)
	ctx := context.Background()

	m.Set(ctx, "key", payload{Name: "knee replacement", Count: 3}, time.Minute)

	var got payload
	require.True(t, m.Get(ctx, "key", &got))
	assert.Equal(t, payload{Name: "knee replacement", Count: 3}, got)
}

func TestMemoryMiss(t *testing.T) {
	m := newTestMemory(t, 16)

	var got payload
	assert.False(t, m.Get(context.Background(), "absent", &got))
}

func TestMemoryExpiry(t *testing.T) {
	m := newTestMemory(t, 16)
	ctx := context.Background()

	m.Set(ctx, "key", payload{Name: "short-lived"}, 20*time.Millisecond)

	var got payload
	require.True(t, m.Get(ctx, "key", &got))

	time.Sleep(40 * time.Millisecond)

	assert.False(t, m.Get(ctx, "key", &got), "entry should be expired")
	assert.Equal(t, 0, m.Len(), "expired entry should be evicted on read")
}

func TestMemoryDeleteAndClear(t *testing.T) {
	m := newTestMemory(t, 16)
	ctx := context.Background()

	m.Set(ctx, "a", payload{Name: "a"}, time.Minute)
	m.Set(ctx, "b", payload{Name: "b"}, time.Minute)
	require.Equal(t, 2, m.Len())

	m.Delete(ctx, "a")
	var got payload
	assert.False(t, m.Get(ctx, "a", &got))
	assert.True(t, m.Get(ctx, "b", &got))

	m.Clear(ctx)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryBoundedByLRU(t *testing.T) {
	m := newTestMemory(t, 2)
	ctx := context.Background()

	m.Set(ctx, "a", payload{Name: "a"}, time.Minute)
	m.Set(ctx, "b", payload{Name: "b"}, time.Minute)
	m.Set(ctx, "c", payload{Name: "c"}, time.Minute)

	assert.Equal(t, 2, m.Len())

	var got payload
	assert.False(t, m.Get(ctx, "a", &got), "oldest entry should have been evicted")
	assert.True(t, m.Get(ctx, "c", &got))
}

func TestMemorySweepRemovesExpired(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m, err := NewMemory(16, 10*time.Millisecond, logger)
	require.NoError(t, err)
	defer m.Close()

	ctx := context.Background()
	m.Set(ctx, "short", payload{}, 5*time.Millisecond)
	m.Set(ctx, "long", payload{}, time.Minute)

	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, m.Len(), "janitor should have swept the expired entry")
}
