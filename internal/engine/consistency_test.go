package engine

import (
	"testing"
	"time"

	"fleet-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeFleet is an in-memory FleetReader for evaluator and engine tests.
type fakeFleet struct {
	trucks  []models.Truck
	drivers []models.Driver
	trips   []models.Trip
}

func (f *fakeFleet) Truck(id string) (models.Truck, bool) {
	for _, t := range f.trucks {
		if t.ID.Hex() == id {
			return t, true
		}
	}
	return models.Truck{}, false
}

func (f *fakeFleet) Trucks() []models.Truck   { return f.trucks }
func (f *fakeFleet) Drivers() []models.Driver { return f.drivers }
func (f *fakeFleet) Trips() []models.Trip     { return f.trips }

func TestIsEntityActiveInTrips(t *testing.T) {
	truckID := primitive.NewObjectID().Hex()
	driverID := primitive.NewObjectID().Hex()

	fleet := &fakeFleet{
		trips: []models.Trip{
			{ID: primitive.NewObjectID(), TruckID: truckID, DriverID: driverID, Status: models.TripStatusCompleted},
		},
	}
	ev := NewEvaluator(fleet)

	t.Run("TerminalTripsDoNotBlock", func(t *testing.T) {
		assert.False(t, ev.IsEntityActiveInTrips(truckID, RoleTruck))
		assert.False(t, ev.IsEntityActiveInTrips(driverID, RoleDriver))
	})

	t.Run("CancelledTripDoesNotBlock", func(t *testing.T) {
		fleet.trips[0].Status = models.TripStatusCancelled
		assert.False(t, ev.IsEntityActiveInTrips(truckID, RoleTruck))
	})

	t.Run("ActiveTripBlocksBothRoles", func(t *testing.T) {
		fleet.trips[0].Status = models.TripStatusInTransit
		assert.True(t, ev.IsEntityActiveInTrips(truckID, RoleTruck))
		assert.True(t, ev.IsEntityActiveInTrips(driverID, RoleDriver))
	})

	t.Run("PendingTripBlocks", func(t *testing.T) {
		fleet.trips[0].Status = models.TripStatusPending
		assert.True(t, ev.IsEntityActiveInTrips(truckID, RoleTruck))
	})

	t.Run("RoleIsRespected", func(t *testing.T) {
		fleet.trips[0].Status = models.TripStatusScheduled
		assert.False(t, ev.IsEntityActiveInTrips(truckID, RoleDriver))
		assert.False(t, ev.IsEntityActiveInTrips(driverID, RoleTruck))
	})

	t.Run("EmptyIDNeverActive", func(t *testing.T) {
		assert.False(t, ev.IsEntityActiveInTrips("", RoleTruck))
	})
}

func TestNormalizeDisplayStatus(t *testing.T) {
	truck := models.Truck{
		ID:     primitive.NewObjectID(),
		Name:   "TR-1",
		Driver: models.DriverUnassigned,
		Status: models.TruckStatusAssigned,
	}

	t.Run("AssignedWithoutDriverShowsAvailable", func(t *testing.T) {
		got := NormalizeDisplayStatus(truck, nil)
		assert.Equal(t, models.TruckStatusAvailable, got)
	})

	t.Run("AssignedWithDriverKept", func(t *testing.T) {
		drivers := []models.Driver{
			{ID: primitive.NewObjectID(), Name: "Alice", AssignedVehicle: truck.ID.Hex()},
		}
		got := NormalizeDisplayStatus(truck, drivers)
		assert.Equal(t, models.TruckStatusAssigned, got)
	})

	t.Run("OtherStatusesPassThrough", func(t *testing.T) {
		for _, status := range []string{
			models.TruckStatusAvailable,
			models.TruckStatusInTransit,
			models.TruckStatusPending,
			models.TruckStatusMaintenance,
		} {
			truck.Status = status
			assert.Equal(t, status, NormalizeDisplayStatus(truck, nil))
		}
	})
}

func TestResolveDriverForTruck(t *testing.T) {
	truckID := primitive.NewObjectID()
	now := time.Now()

	alice := models.Driver{ID: primitive.NewObjectID(), Name: "Alice", CreatedAt: now}
	bob := models.Driver{ID: primitive.NewObjectID(), Name: "Bob", CreatedAt: now.Add(time.Second)}

	t.Run("AssignedVehicleWinsOverNameMatch", func(t *testing.T) {
		bobAssigned := bob
		bobAssigned.AssignedVehicle = truckID.Hex()
		truck := models.Truck{ID: truckID, Driver: "Alice"}

		got := ResolveDriverForTruck(truck, []models.Driver{alice, bobAssigned})
		assert.NotNil(t, got)
		assert.Equal(t, "Bob", got.Name)
	})

	t.Run("FallsBackToNameMatch", func(t *testing.T) {
		truck := models.Truck{ID: truckID, Driver: "Alice"}
		got := ResolveDriverForTruck(truck, []models.Driver{alice, bob})
		assert.NotNil(t, got)
		assert.Equal(t, "Alice", got.Name)
	})

	t.Run("MatchesByDriverID", func(t *testing.T) {
		truck := models.Truck{ID: truckID, Driver: bob.ID.Hex()}
		got := ResolveDriverForTruck(truck, []models.Driver{alice, bob})
		assert.NotNil(t, got)
		assert.Equal(t, "Bob", got.Name)
	})

	t.Run("UnassignedSentinelResolvesNil", func(t *testing.T) {
		truck := models.Truck{ID: truckID, Driver: models.DriverUnassigned}
		assert.Nil(t, ResolveDriverForTruck(truck, []models.Driver{alice, bob}))
	})

	t.Run("DanglingReferenceResolvesNil", func(t *testing.T) {
		truck := models.Truck{ID: truckID, Driver: "Nobody"}
		assert.Nil(t, ResolveDriverForTruck(truck, []models.Driver{alice, bob}))
	})

	t.Run("FirstMatchInCollectionOrderWins", func(t *testing.T) {
		aliceToo := models.Driver{ID: primitive.NewObjectID(), Name: "Alice"}
		truck := models.Truck{ID: truckID, Driver: "Alice"}
		got := ResolveDriverForTruck(truck, []models.Driver{alice, aliceToo})
		assert.NotNil(t, got)
		assert.Equal(t, alice.ID, got.ID)
	})
}
