package engine

import "fleet-admin/internal/models"

// Role identifies which side of a trip an entity sits on.
type Role string

const (
	RoleTruck  Role = "truck"
	RoleDriver Role = "driver"
)

// FleetReader is the read surface the evaluator and the alert engine need
// from the entity store.
type FleetReader interface {
	Truck(id string) (models.Truck, bool)
	Trucks() []models.Truck
	Drivers() []models.Driver
	Trips() []models.Trip
}

// Evaluator answers cross-entity consistency questions against the shared
// entity store. All derivations are read-only; nothing here writes back.
type Evaluator struct {
	store FleetReader
}

func NewEvaluator(store FleetReader) *Evaluator {
	return &Evaluator{store: store}
}

// IsEntityActiveInTrips reports whether any non-terminal trip references the
// entity in the given role. Deletion of trucks and drivers is gated on this.
func (ev *Evaluator) IsEntityActiveInTrips(entityID string, role Role) bool {
	if entityID == "" {
		return false
	}
	for _, trip := range ev.store.Trips() {
		if models.TripStatusTerminal(trip.Status) {
			continue
		}
		switch role {
		case RoleTruck:
			if trip.TruckID == entityID {
				return true
			}
		case RoleDriver:
			if trip.DriverID == entityID {
				return true
			}
		}
	}
	return false
}

// NormalizeTruckStatus derives the display status for a truck using the
// current driver collection.
func (ev *Evaluator) NormalizeTruckStatus(t models.Truck) string {
	return NormalizeDisplayStatus(t, ev.store.Drivers())
}

// ResolveDriver resolves the driver attached to a truck, or nil.
func (ev *Evaluator) ResolveDriver(t models.Truck) *models.Driver {
	return ResolveDriverForTruck(t, ev.store.Drivers())
}

// NormalizeDisplayStatus returns "available" for a truck stored as "assigned"
// when no driver resolves to it; every other status passes through unchanged.
// Pure derivation, never written back to the store.
func NormalizeDisplayStatus(t models.Truck, drivers []models.Driver) string {
	if t.Status != models.TruckStatusAssigned {
		return t.Status
	}
	if ResolveDriverForTruck(t, drivers) == nil {
		return models.TruckStatusAvailable
	}
	return t.Status
}

// ResolveDriverForTruck finds the driver attached to a truck: first a driver
// whose AssignedVehicle is the truck id, then one whose name or id matches
// the truck's driver field. The first match in collection order wins; nil
// when nothing matches or the truck carries the Unassigned sentinel.
func ResolveDriverForTruck(t models.Truck, drivers []models.Driver) *models.Driver {
	truckID := t.ID.Hex()
	for i := range drivers {
		if drivers[i].AssignedVehicle != "" && drivers[i].AssignedVehicle == truckID {
			return &drivers[i]
		}
	}
	if t.Driver == "" || t.Driver == models.DriverUnassigned {
		return nil
	}
	for i := range drivers {
		if drivers[i].Name == t.Driver || drivers[i].ID.Hex() == t.Driver {
			return &drivers[i]
		}
	}
	return nil
}
