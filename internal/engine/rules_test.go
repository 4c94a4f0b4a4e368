package engine

import (
	"testing"
	"time"

	"fleet-admin/internal/config"
	"fleet-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ruleByKind(t *testing.T, kind RuleKind) Rule {
	t.Helper()
	for _, r := range Rules(config.DefaultEngineConfig()) {
		if r.Kind == kind {
			return r
		}
	}
	t.Fatalf("no rule with kind %s", kind)
	return Rule{}
}

func TestLowFuelRule(t *testing.T) {
	rule := ruleByKind(t, RuleLowFuel)
	now := time.Now()

	t.Run("FiresAtThreshold", func(t *testing.T) {
		msg, fired := rule.Evaluate(models.Truck{FuelLevel: 20, Status: models.TruckStatusAvailable}, now)
		assert.True(t, fired)
		assert.Contains(t, msg, "20%")
	})

	t.Run("FiresBelowThreshold", func(t *testing.T) {
		_, fired := rule.Evaluate(models.Truck{FuelLevel: 3, Status: models.TruckStatusInTransit}, now)
		assert.True(t, fired)
	})

	t.Run("QuietAboveThreshold", func(t *testing.T) {
		_, fired := rule.Evaluate(models.Truck{FuelLevel: 21, Status: models.TruckStatusAvailable}, now)
		assert.False(t, fired)
	})

	t.Run("SuppressedInMaintenance", func(t *testing.T) {
		_, fired := rule.Evaluate(models.Truck{FuelLevel: 5, Status: models.TruckStatusMaintenance}, now)
		assert.False(t, fired)
	})
}

func TestMaintenanceOverdueRule(t *testing.T) {
	rule := ruleByKind(t, RuleMaintenanceOverdue)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	daysAgo := func(n int) string {
		return now.AddDate(0, 0, -n).Format("2006-01-02")
	}

	t.Run("FiresWhenOverdue", func(t *testing.T) {
		msg, fired := rule.Evaluate(models.Truck{
			Status:          models.TruckStatusAvailable,
			LastMaintenance: daysAgo(91),
		}, now)
		assert.True(t, fired)
		assert.Contains(t, msg, "91 days")
	})

	t.Run("FiresAtExactThreshold", func(t *testing.T) {
		_, fired := rule.Evaluate(models.Truck{
			Status:          models.TruckStatusAvailable,
			LastMaintenance: daysAgo(90),
		}, now)
		assert.True(t, fired)
	})

	t.Run("QuietBelowThreshold", func(t *testing.T) {
		_, fired := rule.Evaluate(models.Truck{
			Status:          models.TruckStatusAvailable,
			LastMaintenance: daysAgo(89),
		}, now)
		assert.False(t, fired)
	})

	t.Run("QuietWithoutDate", func(t *testing.T) {
		_, fired := rule.Evaluate(models.Truck{Status: models.TruckStatusAvailable}, now)
		assert.False(t, fired)
	})

	t.Run("QuietOnMalformedDate", func(t *testing.T) {
		_, fired := rule.Evaluate(models.Truck{
			Status:          models.TruckStatusAvailable,
			LastMaintenance: "not-a-date",
		}, now)
		assert.False(t, fired)
	})

	t.Run("SuppressedInMaintenance", func(t *testing.T) {
		_, fired := rule.Evaluate(models.Truck{
			Status:          models.TruckStatusMaintenance,
			LastMaintenance: daysAgo(200),
		}, now)
		assert.False(t, fired)
	})
}

func TestParseMaintenanceDate(t *testing.T) {
	t.Run("PlainDate", func(t *testing.T) {
		d, ok := ParseMaintenanceDate("2025-03-01")
		require.True(t, ok)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, time.March, d.Month())
	})

	t.Run("RFC3339", func(t *testing.T) {
		_, ok := ParseMaintenanceDate("2025-03-01T08:30:00Z")
		assert.True(t, ok)
	})

	t.Run("EmptyAndGarbage", func(t *testing.T) {
		_, ok := ParseMaintenanceDate("")
		assert.False(t, ok)
		_, ok = ParseMaintenanceDate("  ")
		assert.False(t, ok)
		_, ok = ParseMaintenanceDate("03/01/2025")
		assert.False(t, ok)
	})
}

func TestCooldownKeys(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	fuelEvent := AlertEvent{Rule: RuleLowFuel, TruckID: id}
	assert.Equal(t, "fuel-alert-"+id, fuelEvent.CooldownKey())

	maintEvent := AlertEvent{Rule: RuleMaintenanceOverdue, TruckID: id}
	assert.Equal(t, "maint-alert-"+id, maintEvent.CooldownKey())
}
