package engine

import (
	"fmt"
	"strings"
	"time"

	"fleet-admin/internal/config"
	"fleet-admin/internal/models"
)

// RuleKind names an alert rule. The kind is part of the cooldown key, so the
// low-fuel and maintenance rules cool down independently for the same truck.
type RuleKind string

const (
	RuleLowFuel            RuleKind = "fuel"
	RuleMaintenanceOverdue RuleKind = "maintenance"
)

// AlertEvent is the value produced when a rule fires for a truck. At most one
// event per (rule, truck) pair is emitted within the rule's cooldown window.
type AlertEvent struct {
	Rule        RuleKind  `json:"rule"`
	TruckID     string    `json:"truckId"`
	TruckName   string    `json:"truckName"`
	Message     string    `json:"message"`
	Severity    string    `json:"severity"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// CooldownKey returns the session-storage key for this event's (rule, truck)
// pair: "fuel-alert-<id>" or "maint-alert-<id>".
func (e AlertEvent) CooldownKey() string {
	return cooldownKey(e.Rule, e.TruckID)
}

func cooldownKey(rule RuleKind, truckID string) string {
	if rule == RuleLowFuel {
		return "fuel-alert-" + truckID
	}
	return "maint-alert-" + truckID
}

// Rule evaluates one threshold condition for one truck. Evaluate returns the
// alert message and whether the rule fired; it must not panic on malformed
// truck data.
type Rule struct {
	Kind     RuleKind
	Severity string
	Cooldown time.Duration
	Evaluate func(t models.Truck, now time.Time) (string, bool)
}

// Rules builds the rule set from engine configuration.
func Rules(cfg config.EngineConfig) []Rule {
	return []Rule{
		{
			Kind:     RuleLowFuel,
			Severity: models.NotificationTypeWarning,
			Cooldown: cfg.FuelCooldown,
			Evaluate: func(t models.Truck, now time.Time) (string, bool) {
				if t.Status == models.TruckStatusMaintenance {
					return "", false
				}
				if t.FuelLevel > cfg.FuelThreshold {
					return "", false
				}
				return fmt.Sprintf("Fuel level at %d%% - refueling needed", t.FuelLevel), true
			},
		},
		{
			Kind:     RuleMaintenanceOverdue,
			Severity: models.NotificationTypeWarning,
			Cooldown: cfg.MaintenanceCooldown,
			Evaluate: func(t models.Truck, now time.Time) (string, bool) {
				if t.Status == models.TruckStatusMaintenance {
					return "", false
				}
				last, ok := ParseMaintenanceDate(t.LastMaintenance)
				if !ok {
					// absent or unparsable date: the rule fails closed
					return "", false
				}
				days := int(now.Sub(last).Hours() / 24)
				if days < cfg.MaintenanceOverdueDays {
					return "", false
				}
				return fmt.Sprintf("Last maintenance %d days ago - service overdue", days), true
			},
		},
	}
}

// ParseMaintenanceDate parses a stored maintenance date. Dates arrive either
// as plain "2006-01-02" strings or as RFC 3339 timestamps; anything else
// reports false.
func ParseMaintenanceDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, true
	}
	return time.Time{}, false
}
