package repository

import (
	"fmt"

	"fleet-admin/internal/models"
	"fleet-admin/internal/store"
)

// StorePersister adapts the Mongo repositories to the entity store's
// Persister interface: one Load at hydration time, write-through on every
// mutation afterwards.
type StorePersister struct {
	trucks  *TruckRepository
	drivers *DriverRepository
	trips   *TripRepository
}

func NewStorePersister(trucks *TruckRepository, drivers *DriverRepository, trips *TripRepository) *StorePersister {
	return &StorePersister{
		trucks:  trucks,
		drivers: drivers,
		trips:   trips,
	}
}

func (p *StorePersister) Load() (store.Snapshot, error) {
	trucks, err := p.trucks.FindAll()
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("load trucks: %w", err)
	}
	drivers, err := p.drivers.FindAll()
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("load drivers: %w", err)
	}
	trips, err := p.trips.FindAll()
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("load trips: %w", err)
	}

	return store.Snapshot{Trucks: trucks, Drivers: drivers, Trips: trips}, nil
}

func (p *StorePersister) SaveTruck(t models.Truck) error   { return p.trucks.Upsert(t) }
func (p *StorePersister) DeleteTruck(id string) error      { return p.trucks.Delete(id) }
func (p *StorePersister) SaveDriver(d models.Driver) error { return p.drivers.Upsert(d) }
func (p *StorePersister) DeleteDriver(id string) error     { return p.drivers.Delete(id) }
func (p *StorePersister) SaveTrip(t models.Trip) error     { return p.trips.Upsert(t) }
func (p *StorePersister) DeleteTrip(id string) error       { return p.trips.Delete(id) }
