package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// entry is a stored value with its expiry deadline. Values are kept as JSON
// so the memory and Redis backends behave identically.
type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process cache bounded by an LRU. Expiry has a single
// source of truth: the deadline recorded at write time. A reader that finds
// an expired entry evicts it; a background sweep removes expired entries
// nobody reads.
type Memory struct {
	entries  *lru.Cache[string, entry]
	logger   *logrus.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemory creates a memory cache holding at most maxEntries values. When
// sweepInterval is positive a janitor goroutine removes expired entries on
// that cadence; call Close to stop it.
func NewMemory(maxEntries int, sweepInterval time.Duration, logger *logrus.Logger) (*Memory, error) {
	entries, err := lru.New[string, entry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU store: %w", err)
	}

	m := &Memory{
		entries: entries,
		logger:  logger,
		stop:    make(chan struct{}),
	}

	if sweepInterval > 0 {
		go m.sweepRoutine(sweepInterval)
	}

	return m, nil
}

// Get decodes the entry for key into dest, evicting it if expired.
func (m *Memory) Get(ctx context.Context, key string, dest any) bool {
	e, ok := m.entries.Get(key)
	if !ok {
		return false
	}

	if !time.Now().Before(e.expiresAt) {
		m.entries.Remove(key)
		m.logger.WithField("key", key).Debug("Cache entry expired")
		return false
	}

	if err := json.Unmarshal(e.data, dest); err != nil {
		// Stored shape no longer matches the caller's type; drop it.
		m.entries.Remove(key)
		m.logger.WithError(err).WithField("key", key).Warn("Failed to decode cache entry")
		return false
	}

	return true
}

// Set stores value under key with the given TTL. Encoding failures are
// logged and swallowed; the cache is best-effort.
func (m *Memory) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		m.logger.WithError(err).WithField("key", key).Warn("Failed to encode cache value")
		return
	}

	m.entries.Add(key, entry{data: data, expiresAt: time.Now().Add(ttl)})

	m.logger.WithFields(logrus.Fields{
		"key":        key,
		"ttl":        ttl.String(),
		"cache_size": m.entries.Len(),
	}).Debug("Cached value")
}

// Delete removes an entry.
func (m *Memory) Delete(ctx context.Context, key string) {
	m.entries.Remove(key)
}

// Clear removes all entries.
func (m *Memory) Clear(ctx context.Context) {
	oldSize := m.entries.Len()
	m.entries.Purge()
	m.logger.WithField("cleared_entries", oldSize).Info("Cleared cache")
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	return m.entries.Len()
}

// Close stops the janitor goroutine.
func (m *Memory) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// sweepRoutine runs periodically to remove expired entries
func (m *Memory) sweepRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

// sweep removes every expired entry
func (m *Memory) sweep() {
	now := time.Now()
	removed := 0

	for _, key := range m.entries.Keys() {
		if e, ok := m.entries.Peek(key); ok && !now.Before(e.expiresAt) {
			m.entries.Remove(key)
			removed++
		}
	}

	if removed > 0 {
		m.logger.WithFields(logrus.Fields{
			"removed_entries":   removed,
			"remaining_entries": m.entries.Len(),
		}).Debug("Cache sweep completed")
	}
}
