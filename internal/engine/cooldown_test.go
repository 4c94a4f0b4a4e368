package engine

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisClient "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCooldownStore(t *testing.T) {
	store := NewMemoryCooldownStore()
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	t.Run("NotCoolingInitially", func(t *testing.T) {
		cooling, err := store.InCooldown(RuleLowFuel, "t1")
		require.NoError(t, err)
		assert.False(t, cooling)
	})

	t.Run("CoolingAfterMark", func(t *testing.T) {
		require.NoError(t, store.MarkEmitted(RuleLowFuel, "t1", time.Hour))
		cooling, err := store.InCooldown(RuleLowFuel, "t1")
		require.NoError(t, err)
		assert.True(t, cooling)
	})

	t.Run("RulesCoolIndependently", func(t *testing.T) {
		cooling, err := store.InCooldown(RuleMaintenanceOverdue, "t1")
		require.NoError(t, err)
		assert.False(t, cooling)
	})

	t.Run("TrucksCoolIndependently", func(t *testing.T) {
		cooling, err := store.InCooldown(RuleLowFuel, "t2")
		require.NoError(t, err)
		assert.False(t, cooling)
	})

	t.Run("ExpiresAfterWindow", func(t *testing.T) {
		current = current.Add(time.Hour)
		cooling, err := store.InCooldown(RuleLowFuel, "t1")
		require.NoError(t, err)
		assert.False(t, cooling)
	})
}

func TestRedisCooldownStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redisClient.NewClient(&redisClient.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisCooldownStore(client)

	t.Run("MarkSetsKeyedTTL", func(t *testing.T) {
		require.NoError(t, store.MarkEmitted(RuleLowFuel, "t1", time.Hour))

		assert.True(t, mr.Exists("fuel-alert-t1"))
		assert.Equal(t, time.Hour, mr.TTL("fuel-alert-t1"))

		cooling, err := store.InCooldown(RuleLowFuel, "t1")
		require.NoError(t, err)
		assert.True(t, cooling)
	})

	t.Run("IndependentKeysPerRule", func(t *testing.T) {
		cooling, err := store.InCooldown(RuleMaintenanceOverdue, "t1")
		require.NoError(t, err)
		assert.False(t, cooling)

		require.NoError(t, store.MarkEmitted(RuleMaintenanceOverdue, "t1", 24*time.Hour))
		assert.True(t, mr.Exists("maint-alert-t1"))
	})

	t.Run("ExpiryEndsCooldown", func(t *testing.T) {
		mr.FastForward(time.Hour)

		cooling, err := store.InCooldown(RuleLowFuel, "t1")
		require.NoError(t, err)
		assert.False(t, cooling)

		// the longer maintenance window is still open
		cooling, err = store.InCooldown(RuleMaintenanceOverdue, "t1")
		require.NoError(t, err)
		assert.True(t, cooling)
	})

	t.Run("ErrorWhenRedisDown", func(t *testing.T) {
		dead := redisClient.NewClient(&redisClient.Options{Addr: "127.0.0.1:1"})
		defer dead.Close()

		down := NewRedisCooldownStore(dead)
		_, err := down.InCooldown(RuleLowFuel, "t9")
		assert.Error(t, err)
	})
}
