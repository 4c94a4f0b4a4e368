package services

import (
	"testing"

	"fleet-admin/internal/engine"
	"fleet-admin/internal/models"
	"fleet-admin/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFleetServices(t *testing.T) (*store.Store, *TruckService, *DriverService, *TripService) {
	t.Helper()
	st := store.New()
	ev := engine.NewEvaluator(st)
	return st, NewTruckService(st, ev), NewDriverService(st, ev), NewTripService(st)
}

func TestCreateTruckDefaults(t *testing.T) {
	_, trucks, _, _ := newFleetServices(t)

	truck, err := trucks.CreateTruck(&CreateTruckRequest{Name: "TR-1", PlateNumber: "KAA 001A"})
	require.NoError(t, err)

	assert.Equal(t, 100, truck.FuelLevel)
	assert.Equal(t, models.DriverUnassigned, truck.Driver)
	assert.Equal(t, models.TruckStatusAvailable, truck.Status)
	assert.False(t, truck.ID.IsZero())
}

func TestCreateTruckRejectsDuplicatePlate(t *testing.T) {
	_, trucks, _, _ := newFleetServices(t)

	_, err := trucks.CreateTruck(&CreateTruckRequest{Name: "TR-1", PlateNumber: "KAA 001A"})
	require.NoError(t, err)

	_, err = trucks.CreateTruck(&CreateTruckRequest{Name: "TR-2", PlateNumber: "KAA 001A"})
	assert.EqualError(t, err, "plate number already exists")
}

func TestUpdateTruckPartialFields(t *testing.T) {
	_, trucks, _, _ := newFleetServices(t)

	created, err := trucks.CreateTruck(&CreateTruckRequest{Name: "TR-1", PlateNumber: "KAA 001A", Model: "Actros"})
	require.NoError(t, err)

	fuel := 15
	updated, err := trucks.UpdateTruck(created.ID.Hex(), &UpdateTruckRequest{FuelLevel: &fuel})
	require.NoError(t, err)

	assert.Equal(t, 15, updated.FuelLevel)
	assert.Equal(t, "TR-1", updated.Name)
	assert.Equal(t, "Actros", updated.Model)
}

func TestTruckViewDerivations(t *testing.T) {
	_, trucks, drivers, _ := newFleetServices(t)

	truck, err := trucks.CreateTruck(&CreateTruckRequest{
		Name:        "TR-1",
		PlateNumber: "KAA 001A",
		Status:      models.TruckStatusAssigned,
	})
	require.NoError(t, err)

	t.Run("AssignedWithoutDriverDisplaysAvailable", func(t *testing.T) {
		view, err := trucks.GetTruckByID(truck.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, models.TruckStatusAvailable, view.DisplayStatus)
		assert.Equal(t, models.DriverUnassigned, view.DriverDisplay)
		// the stored status is untouched
		assert.Equal(t, models.TruckStatusAssigned, view.Status)
	})

	t.Run("ResolvedDriverNameIsDisplayed", func(t *testing.T) {
		_, err := drivers.CreateDriver(&CreateDriverRequest{
			Name:            "Alice",
			AssignedVehicle: truck.ID.Hex(),
		})
		require.NoError(t, err)

		view, err := trucks.GetTruckByID(truck.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, models.TruckStatusAssigned, view.DisplayStatus)
		assert.Equal(t, "Alice", view.DriverDisplay)
	})
}

func TestDeleteTruckGatedByActiveTrip(t *testing.T) {
	_, trucks, drivers, trips := newFleetServices(t)

	truck, err := trucks.CreateTruck(&CreateTruckRequest{Name: "TR-1", PlateNumber: "KAA 001A"})
	require.NoError(t, err)
	driver, err := drivers.CreateDriver(&CreateDriverRequest{Name: "Alice"})
	require.NoError(t, err)

	trip, err := trips.CreateTrip(&CreateTripRequest{
		TruckID:  truck.ID.Hex(),
		DriverID: driver.ID.Hex(),
	})
	require.NoError(t, err)

	t.Run("BlockedWhileTripActive", func(t *testing.T) {
		err := trucks.DeleteTruck(truck.ID.Hex())
		assert.EqualError(t, err, "truck is referenced by an active trip")

		err = drivers.DeleteDriver(driver.ID.Hex())
		assert.EqualError(t, err, "driver is referenced by an active trip")
	})

	t.Run("AllowedOnceTripCompletes", func(t *testing.T) {
		_, err := trips.UpdateTrip(trip.ID.Hex(), &UpdateTripRequest{Status: models.TripStatusCompleted})
		require.NoError(t, err)

		assert.NoError(t, trucks.DeleteTruck(truck.ID.Hex()))
		assert.NoError(t, drivers.DeleteDriver(driver.ID.Hex()))
	})

	t.Run("DeletingMissingTruckFails", func(t *testing.T) {
		err := trucks.DeleteTruck(truck.ID.Hex())
		assert.EqualError(t, err, "truck not found")
	})
}
