package engine

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CooldownStore tracks when a (rule, truck) pair last emitted. The state is
// session-scoped: it must survive engine restarts within a session but is not
// part of the durable entity storage.
type CooldownStore interface {
	// InCooldown reports whether the pair is still inside its window.
	InCooldown(rule RuleKind, truckID string) (bool, error)
	// MarkEmitted opens a cooldown window for the pair.
	MarkEmitted(rule RuleKind, truckID string, window time.Duration) error
}

// MemoryCooldownStore keeps cooldown expiries in process memory. It backs the
// engine when Redis is unavailable and is the test double.
type MemoryCooldownStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryCooldownStore() *MemoryCooldownStore {
	return &MemoryCooldownStore{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryCooldownStore) InCooldown(rule RuleKind, truckID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := cooldownKey(rule, truckID)
	expiry, ok := m.expires[key]
	if !ok {
		return false, nil
	}
	if !m.now().Before(expiry) {
		delete(m.expires, key)
		return false, nil
	}
	return true, nil
}

func (m *MemoryCooldownStore) MarkEmitted(rule RuleKind, truckID string, window time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[cooldownKey(rule, truckID)] = m.now().Add(window)
	return nil
}

// RedisCooldownStore keeps cooldown state in Redis so it survives process
// restarts within a session. Each emission SETs the pair's key with a TTL
// equal to the window; key existence means the pair is cooling down.
type RedisCooldownStore struct {
	client *redis.Client
}

func NewRedisCooldownStore(client *redis.Client) *RedisCooldownStore {
	return &RedisCooldownStore{client: client}
}

func (r *RedisCooldownStore) InCooldown(rule RuleKind, truckID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	count, err := r.client.Exists(ctx, cooldownKey(rule, truckID)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RedisCooldownStore) MarkEmitted(rule RuleKind, truckID string, window time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return r.client.Set(ctx, cooldownKey(rule, truckID), time.Now().UTC().Format(time.RFC3339), window).Err()
}
