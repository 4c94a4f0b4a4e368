package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"fleet-admin/internal/config"
	"fleet-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// captureSink records delivered notifications and can be told to fail.
type captureSink struct {
	mu       sync.Mutex
	sent     []models.Notification
	failNext bool
}

func (c *captureSink) Notify(n models.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failNext {
		c.failNext = false
		return errors.New("sink unavailable")
	}
	c.sent = append(c.sent, n)
	return nil
}

func (c *captureSink) notifications() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Notification, len(c.sent))
	copy(out, c.sent)
	return out
}

func testEngine(fleet *fakeFleet, sink Sink, at time.Time) (*Engine, *MemoryCooldownStore, func(time.Duration)) {
	cooldowns := NewMemoryCooldownStore()
	eng := New(fleet, cooldowns, sink, config.DefaultEngineConfig())

	current := at
	eng.now = func() time.Time { return current }
	cooldowns.now = func() time.Time { return current }

	advance := func(d time.Duration) { current = current.Add(d) }
	return eng, cooldowns, advance
}

func breachedTruck(now time.Time) models.Truck {
	return models.Truck{
		ID:              primitive.NewObjectID(),
		Name:            "TR-1",
		PlateNumber:     "KAA 001A",
		FuelLevel:       15,
		Status:          models.TruckStatusAvailable,
		LastMaintenance: now.AddDate(0, 0, -200).Format("2006-01-02"),
	}
}

func TestSweepEmitsBothAlertsOnce(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	truck := breachedTruck(now)
	fleet := &fakeFleet{trucks: []models.Truck{truck}}
	sink := &captureSink{}
	eng, _, _ := testEngine(fleet, sink, now)

	eng.Sweep()

	sent := sink.notifications()
	require.Len(t, sent, 2)

	titles := []string{sent[0].Title, sent[1].Title}
	assert.Contains(t, titles, "Low Fuel Warning")
	assert.Contains(t, titles, "Maintenance Overdue")
	for _, n := range sent {
		assert.Equal(t, models.NotificationTypeWarning, n.Type)
		assert.Equal(t, "/trucks/"+truck.ID.Hex(), n.URL)
		assert.Contains(t, n.Message, "TR-1: ")
	}

	// a second sweep inside both windows is silent
	eng.Sweep()
	assert.Len(t, sink.notifications(), 2)
}

func TestCooldownWindowsAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	fleet := &fakeFleet{trucks: []models.Truck{breachedTruck(now)}}
	sink := &captureSink{}
	eng, _, advance := testEngine(fleet, sink, now)

	eng.Sweep()
	require.Len(t, sink.notifications(), 2)

	// one hour on: the fuel window has closed, maintenance has 23h to go
	advance(time.Hour + time.Minute)
	eng.Sweep()

	sent := sink.notifications()
	require.Len(t, sent, 3)
	assert.Equal(t, "Low Fuel Warning", sent[2].Title)

	advance(24 * time.Hour)
	eng.Sweep()
	sent = sink.notifications()
	require.Len(t, sent, 5)
}

func TestSinkFailureRetriesNextSweep(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	truck := breachedTruck(now)
	truck.LastMaintenance = "" // isolate the fuel rule
	fleet := &fakeFleet{trucks: []models.Truck{truck}}
	sink := &captureSink{failNext: true}
	eng, _, _ := testEngine(fleet, sink, now)

	eng.Sweep()
	assert.Empty(t, sink.notifications())

	// delivery failed, so no cooldown was recorded and the next pass retries
	eng.Sweep()
	require.Len(t, sink.notifications(), 1)
	assert.Equal(t, "Low Fuel Warning", sink.notifications()[0].Title)
}

func TestTruckUpdatedRunsFuelRuleOnly(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	truck := breachedTruck(now)
	fleet := &fakeFleet{trucks: []models.Truck{truck}}
	sink := &captureSink{}
	eng, _, _ := testEngine(fleet, sink, now)

	eng.evaluateTruck(truck, func(r Rule) bool { return r.Kind == RuleLowFuel })

	sent := sink.notifications()
	require.Len(t, sent, 1)
	assert.Equal(t, "Low Fuel Warning", sent[0].Title)
}

func TestPerTruckFailureIsolation(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	bad := models.Truck{
		ID:              primitive.NewObjectID(),
		Name:            "TR-bad",
		FuelLevel:       80,
		Status:          models.TruckStatusAvailable,
		LastMaintenance: "garbage",
	}
	good := breachedTruck(now)
	fleet := &fakeFleet{trucks: []models.Truck{bad, good}}
	sink := &captureSink{}
	eng, _, _ := testEngine(fleet, sink, now)

	eng.Sweep()

	// the malformed date on TR-bad never blocks TR-1's alerts
	assert.Len(t, sink.notifications(), 2)
}

func TestEngineLifecycle(t *testing.T) {
	now := time.Now()
	fleet := &fakeFleet{trucks: []models.Truck{breachedTruck(now)}}
	sink := &captureSink{}

	cfg := config.DefaultEngineConfig()
	cfg.InitialDelay = 10 * time.Millisecond
	cfg.SweepInterval = time.Hour

	eng := New(fleet, NewMemoryCooldownStore(), sink, cfg)
	eng.Start()
	eng.Start() // second Start is a no-op

	require.Eventually(t, func() bool {
		return len(sink.notifications()) == 2
	}, time.Second, 5*time.Millisecond, "initial deferred pass did not run")

	// a mutation reaches the running loop
	fresh := breachedTruck(now)
	eng.TruckUpdated(fresh)
	require.Eventually(t, func() bool {
		return len(sink.notifications()) == 3
	}, time.Second, 5*time.Millisecond, "mutation evaluation did not run")

	eng.Stop()
	eng.Stop() // second Stop is a no-op
}
