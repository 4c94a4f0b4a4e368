// Package store holds the in-memory mirror of trucks, drivers and trips that
// the consistency evaluator and alert engine read from. Mutations are
// synchronous and immediately visible; persistence to MongoDB is a best-effort
// side effect that never blocks or fails a mutation.
package store

import (
	"log"
	"sort"
	"sync"

	"fleet-admin/internal/models"
)

// Snapshot is the full persisted state of the fleet collections.
type Snapshot struct {
	Trucks  []models.Truck
	Drivers []models.Driver
	Trips   []models.Trip
}

// Persister is the durable-storage collaborator. Load returns an explicit
// error so the caller decides the fallback; writes are fire-and-forget from
// the store's point of view.
type Persister interface {
	Load() (Snapshot, error)
	SaveTruck(t models.Truck) error
	DeleteTruck(id string) error
	SaveDriver(d models.Driver) error
	DeleteDriver(id string) error
	SaveTrip(t models.Trip) error
	DeleteTrip(id string) error
}

type Store struct {
	mu      sync.RWMutex
	trucks  map[string]models.Truck
	drivers map[string]models.Driver
	trips   map[string]models.Trip

	persister     Persister
	onTruckChange func(models.Truck)
}

func New() *Store {
	return &Store{
		trucks:  make(map[string]models.Truck),
		drivers: make(map[string]models.Driver),
		trips:   make(map[string]models.Trip),
	}
}

// SetPersister attaches the durable-storage collaborator.
func (s *Store) SetPersister(p Persister) {
	s.persister = p
}

// SetTruckChangeHook registers the callback invoked after a truck mutation
// that created the truck or changed its fuel level or status. The alert
// engine hangs off this hook.
func (s *Store) SetTruckChangeHook(fn func(models.Truck)) {
	s.onTruckChange = fn
}

// Hydrate loads the persisted collections into the mirror. A load failure is
// not an error to the caller: the mirror deliberately falls back to empty
// collections and the return value reports which path was taken.
func (s *Store) Hydrate() bool {
	if s.persister == nil {
		return false
	}

	snap, err := s.persister.Load()
	if err != nil {
		log.Printf("Store hydration failed, starting with empty collections: %v", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.trucks = make(map[string]models.Truck, len(snap.Trucks))
	for _, t := range snap.Trucks {
		s.trucks[t.ID.Hex()] = t
	}
	s.drivers = make(map[string]models.Driver, len(snap.Drivers))
	for _, d := range snap.Drivers {
		s.drivers[d.ID.Hex()] = d
	}
	s.trips = make(map[string]models.Trip, len(snap.Trips))
	for _, t := range snap.Trips {
		s.trips[t.ID.Hex()] = t
	}
	return true
}

func (s *Store) Truck(id string) (models.Truck, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trucks[id]
	return t, ok
}

// Trucks returns all trucks in stable creation order.
func (s *Store) Trucks() []models.Truck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Truck, 0, len(s.trucks))
	for _, t := range s.trucks {
		out = append(out, t)
	}
	sortByCreation(out, func(t models.Truck) (int64, string) { return t.CreatedAt.UnixNano(), t.ID.Hex() })
	return out
}

func (s *Store) Driver(id string) (models.Driver, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	return d, ok
}

// Drivers returns all drivers in stable creation order. Resolution ties in
// the consistency evaluator depend on this order being deterministic.
func (s *Store) Drivers() []models.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		out = append(out, d)
	}
	sortByCreation(out, func(d models.Driver) (int64, string) { return d.CreatedAt.UnixNano(), d.ID.Hex() })
	return out
}

func (s *Store) Trip(id string) (models.Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trips[id]
	return t, ok
}

func (s *Store) Trips() []models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		out = append(out, t)
	}
	sortByCreation(out, func(t models.Trip) (int64, string) { return t.CreatedAt.UnixNano(), t.ID.Hex() })
	return out
}

// PutTruck inserts or replaces a truck, persists it best-effort and fires the
// truck-change hook when the truck is new or its fuel level or status changed.
func (s *Store) PutTruck(t models.Truck) {
	id := t.ID.Hex()

	s.mu.Lock()
	prev, existed := s.trucks[id]
	s.trucks[id] = t
	s.mu.Unlock()

	s.persist(func(p Persister) error { return p.SaveTruck(t) }, "truck", id)

	if s.onTruckChange != nil {
		if !existed || prev.FuelLevel != t.FuelLevel || prev.Status != t.Status {
			s.onTruckChange(t)
		}
	}
}

func (s *Store) RemoveTruck(id string) bool {
	s.mu.Lock()
	_, ok := s.trucks[id]
	delete(s.trucks, id)
	s.mu.Unlock()

	if ok {
		s.persist(func(p Persister) error { return p.DeleteTruck(id) }, "truck", id)
	}
	return ok
}

func (s *Store) PutDriver(d models.Driver) {
	id := d.ID.Hex()
	s.mu.Lock()
	s.drivers[id] = d
	s.mu.Unlock()

	s.persist(func(p Persister) error { return p.SaveDriver(d) }, "driver", id)
}

func (s *Store) RemoveDriver(id string) bool {
	s.mu.Lock()
	_, ok := s.drivers[id]
	delete(s.drivers, id)
	s.mu.Unlock()

	if ok {
		s.persist(func(p Persister) error { return p.DeleteDriver(id) }, "driver", id)
	}
	return ok
}

func (s *Store) PutTrip(t models.Trip) {
	id := t.ID.Hex()
	s.mu.Lock()
	s.trips[id] = t
	s.mu.Unlock()

	s.persist(func(p Persister) error { return p.SaveTrip(t) }, "trip", id)
}

func (s *Store) RemoveTrip(id string) bool {
	s.mu.Lock()
	_, ok := s.trips[id]
	delete(s.trips, id)
	s.mu.Unlock()

	if ok {
		s.persist(func(p Persister) error { return p.DeleteTrip(id) }, "trip", id)
	}
	return ok
}

// persist runs a write against the persister in the background. Failures are
// logged and otherwise ignored: the mirror stays authoritative for reads.
func (s *Store) persist(write func(Persister) error, kind, id string) {
	if s.persister == nil {
		return
	}
	p := s.persister
	go func() {
		if err := write(p); err != nil {
			log.Printf("Failed to persist %s %s: %v", kind, id, err)
		}
	}()
}

func sortByCreation[T any](items []T, key func(T) (int64, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti != tj {
			return ti < tj
		}
		return idi < idj
	})
}
