// Package cache provides a time-bounded memoization cache.
//
// Each key holds one value and the time until which it is fresh. A read of
// a fresh key returns immediately. A read of an empty or stale key runs
// the caller's loader, with concurrent readers of the same key sharing a
// single loader call.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"presence-analyzer/domain/core"
	"presence-analyzer/ports"
)

// State is the lifecycle state of one cache key.
type State string

const (
	StateEmpty State = "empty"
	StateFresh State = "fresh"
	StateStale State = "stale"
)

// Loader produces a new value for a key.
type Loader[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	value      V
	validUntil time.Time
	loadedAt   time.Time
}

// Cache is safe for concurrent use. The zero value is not usable; call New.
type Cache[K comparable, V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[K]*entry[V]
	group   singleflight.Group
	now     func() time.Time
	metrics *Metrics
	logger  ports.Logger
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now     func() time.Time
	metrics *Metrics
	logger  ports.Logger
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithMetrics records hits, misses and loads.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger reports stale serves and load failures.
func WithLogger(l ports.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates an empty cache. name labels log lines and metrics.
func New[K comparable, V any](name string, opts ...Option) *Cache[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[K, V]{
		name:    name,
		entries: make(map[K]*entry[V]),
		now:     o.now,
		metrics: o.metrics,
		logger:  o.logger,
	}
}

// GetOrLoad returns the cached value for key while it is fresh. Otherwise it
// calls load once, stores the result for ttl and returns it. If load fails
// and an older value exists, the older value is returned and the next read
// tries again; without an older value the error is returned. A load, once
// started, runs to completion even if ctx is cancelled.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, ttl time.Duration, load Loader[V]) (V, error) {
	if v, ok := c.fresh(key); ok {
		c.metrics.hit(c.name)
		return v, nil
	}
	c.metrics.miss(c.name)

	res, err, _ := c.group.Do(fmt.Sprint(key), func() (interface{}, error) {
		// another caller may have refreshed while we waited
		if v, ok := c.fresh(key); ok {
			return v, nil
		}

		// shared by every waiter; one caller's cancellation must not abort it
		start := c.now()
		v, err := load(context.WithoutCancel(ctx))
		c.metrics.observeLoad(c.name, c.now().Sub(start), err)
		if err != nil {
			return nil, err
		}

		now := c.now()
		c.mu.Lock()
		c.entries[key] = &entry[V]{value: v, validUntil: now.Add(ttl), loadedAt: now}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		if v, ok := c.peek(key); ok {
			c.metrics.staleServe(c.name)
			c.logf("[Cache] %s: refresh of %v failed, serving stale value: %v", c.name, key, err)
			return v, nil
		}
		c.logf("[Cache] %s: load of %v failed: %v", c.name, key, err)
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Expire marks key stale without dropping its value.
func (c *Cache[K, V]) Expire(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.validUntil = time.Time{}
	}
}

// Reset drops key so the next read behaves as if nothing was ever loaded.
func (c *Cache[K, V]) Reset(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// State reports whether key is empty, fresh or stale.
func (c *Cache[K, V]) State(key K) State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	switch {
	case !ok:
		return StateEmpty
	case c.now().Before(e.validUntil):
		return StateFresh
	default:
		return StateStale
	}
}

// KeyStatus describes one key for the admin endpoint.
type KeyStatus struct {
	Key        string         `json:"key"`
	State      State          `json:"state"`
	LoadedAt   core.Timestamp `json:"loaded_at"`
	ValidUntil core.Timestamp `json:"valid_until"`
}

// Status lists every key currently held.
func (c *Cache[K, V]) Status() []KeyStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.now()
	out := make([]KeyStatus, 0, len(c.entries))
	for k, e := range c.entries {
		state := StateStale
		if now.Before(e.validUntil) {
			state = StateFresh
		}
		out = append(out, KeyStatus{
			Key:        fmt.Sprint(k),
			State:      state,
			LoadedAt:   core.NewTimestamp(e.loadedAt),
			ValidUntil: core.NewTimestamp(e.validUntil),
		})
	}
	return out
}

// Name returns the label given to New.
func (c *Cache[K, V]) Name() string {
	return c.name
}

func (c *Cache[K, V]) fresh(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.validUntil) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[K, V]) peek(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[K, V]) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(format, args...)
	}
}
