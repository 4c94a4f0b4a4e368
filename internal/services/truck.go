package services

import (
	"errors"
	"time"

	"fleet-admin/internal/engine"
	"fleet-admin/internal/models"
	"fleet-admin/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TruckService struct {
	store     *store.Store
	evaluator *engine.Evaluator
}

func NewTruckService(st *store.Store, evaluator *engine.Evaluator) *TruckService {
	return &TruckService{
		store:     st,
		evaluator: evaluator,
	}
}

type CreateTruckRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	PlateNumber     string `json:"plateNumber" validate:"required,min=1,max=20"`
	Model           string `json:"model,omitempty"`
	Driver          string `json:"driver,omitempty"`
	FuelLevel       *int   `json:"fuelLevel,omitempty" validate:"omitempty,gte=0,lte=100"`
	LoadCapacity    string `json:"loadCapacity,omitempty"`
	FuelType        string `json:"fuelType,omitempty"`
	Status          string `json:"status,omitempty" validate:"omitempty,oneof=available assigned intransit pending maintenance"`
	LastMaintenance string `json:"lastMaintenance,omitempty"`
}

type UpdateTruckRequest struct {
	Name            string `json:"name,omitempty"`
	PlateNumber     string `json:"plateNumber,omitempty"`
	Model           string `json:"model,omitempty"`
	Driver          string `json:"driver,omitempty"`
	FuelLevel       *int   `json:"fuelLevel,omitempty" validate:"omitempty,gte=0,lte=100"`
	LoadCapacity    string `json:"loadCapacity,omitempty"`
	FuelType        string `json:"fuelType,omitempty"`
	Status          string `json:"status,omitempty" validate:"omitempty,oneof=available assigned intransit pending maintenance"`
	LastMaintenance string `json:"lastMaintenance,omitempty"`
}

// TruckView is a truck as rendered to clients: the stored document plus the
// derived display status and driver display name. The derivations are never
// written back.
type TruckView struct {
	models.Truck
	DisplayStatus string `json:"displayStatus"`
	DriverDisplay string `json:"driverDisplay"`
}

func (s *TruckService) view(t models.Truck) TruckView {
	v := TruckView{
		Truck:         t,
		DisplayStatus: s.evaluator.NormalizeTruckStatus(t),
		DriverDisplay: t.Driver,
	}
	if d := s.evaluator.ResolveDriver(t); d != nil {
		v.DriverDisplay = d.Name
	}
	// a dangling reference keeps the raw stored value as the display fallback
	if v.DriverDisplay == "" {
		v.DriverDisplay = models.DriverUnassigned
	}
	return v
}

func (s *TruckService) GetAllTrucks() []TruckView {
	trucks := s.store.Trucks()
	views := make([]TruckView, 0, len(trucks))
	for _, t := range trucks {
		views = append(views, s.view(t))
	}
	return views
}

func (s *TruckService) GetTruckByID(id string) (*TruckView, error) {
	t, ok := s.store.Truck(id)
	if !ok {
		return nil, errors.New("truck not found")
	}
	v := s.view(t)
	return &v, nil
}

func (s *TruckService) CreateTruck(req *CreateTruckRequest) (*models.Truck, error) {
	for _, existing := range s.store.Trucks() {
		if existing.PlateNumber == req.PlateNumber {
			return nil, errors.New("plate number already exists")
		}
	}

	truck := models.Truck{
		ID:              primitive.NewObjectID(),
		Name:            req.Name,
		PlateNumber:     req.PlateNumber,
		Model:           req.Model,
		Driver:          req.Driver,
		FuelLevel:       100,
		LoadCapacity:    req.LoadCapacity,
		FuelType:        req.FuelType,
		Status:          req.Status,
		LastMaintenance: req.LastMaintenance,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if req.FuelLevel != nil {
		truck.FuelLevel = *req.FuelLevel
	}
	if truck.Driver == "" {
		truck.Driver = models.DriverUnassigned
	}
	if truck.Status == "" {
		truck.Status = models.TruckStatusAvailable
	}

	s.store.PutTruck(truck)
	return &truck, nil
}

func (s *TruckService) UpdateTruck(id string, req *UpdateTruckRequest) (*models.Truck, error) {
	truck, ok := s.store.Truck(id)
	if !ok {
		return nil, errors.New("truck not found")
	}

	if req.Name != "" {
		truck.Name = req.Name
	}
	if req.PlateNumber != "" {
		for _, existing := range s.store.Trucks() {
			if existing.PlateNumber == req.PlateNumber && existing.ID.Hex() != id {
				return nil, errors.New("plate number already exists")
			}
		}
		truck.PlateNumber = req.PlateNumber
	}
	if req.Model != "" {
		truck.Model = req.Model
	}
	if req.Driver != "" {
		truck.Driver = req.Driver
	}
	if req.FuelLevel != nil {
		truck.FuelLevel = *req.FuelLevel
	}
	if req.LoadCapacity != "" {
		truck.LoadCapacity = req.LoadCapacity
	}
	if req.FuelType != "" {
		truck.FuelType = req.FuelType
	}
	if req.Status != "" {
		truck.Status = req.Status
	}
	if req.LastMaintenance != "" {
		truck.LastMaintenance = req.LastMaintenance
	}
	truck.UpdatedAt = time.Now()

	s.store.PutTruck(truck)
	return &truck, nil
}

// DeleteTruck removes a truck unless a non-terminal trip still references it.
func (s *TruckService) DeleteTruck(id string) error {
	if _, ok := s.store.Truck(id); !ok {
		return errors.New("truck not found")
	}
	if s.evaluator.IsEntityActiveInTrips(id, engine.RoleTruck) {
		return errors.New("truck is referenced by an active trip")
	}

	s.store.RemoveTruck(id)
	return nil
}
