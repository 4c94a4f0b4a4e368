package services

import (
	"errors"
	"time"

	"fleet-admin/internal/engine"
	"fleet-admin/internal/models"
	"fleet-admin/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverService struct {
	store     *store.Store
	evaluator *engine.Evaluator
}

func NewDriverService(st *store.Store, evaluator *engine.Evaluator) *DriverService {
	return &DriverService{
		store:     st,
		evaluator: evaluator,
	}
}

type CreateDriverRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Phone           string `json:"phone,omitempty"`
	LicenseNumber   string `json:"licenseNumber,omitempty"`
	AssignedVehicle string `json:"assignedVehicle,omitempty"`
	Status          string `json:"status,omitempty" validate:"omitempty,oneof=available driving assigned off-duty inactive"`
}

type UpdateDriverRequest struct {
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Phone           string `json:"phone,omitempty"`
	LicenseNumber   string `json:"licenseNumber,omitempty"`
	AssignedVehicle *string `json:"assignedVehicle,omitempty"`
	Status          string `json:"status,omitempty" validate:"omitempty,oneof=available driving assigned off-duty inactive"`
}

func (s *DriverService) GetAllDrivers() []models.Driver {
	return s.store.Drivers()
}

func (s *DriverService) GetDriverByID(id string) (*models.Driver, error) {
	d, ok := s.store.Driver(id)
	if !ok {
		return nil, errors.New("driver not found")
	}
	return &d, nil
}

func (s *DriverService) CreateDriver(req *CreateDriverRequest) (*models.Driver, error) {
	driver := models.Driver{
		ID:              primitive.NewObjectID(),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		LicenseNumber:   req.LicenseNumber,
		AssignedVehicle: req.AssignedVehicle,
		Status:          req.Status,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if driver.Status == "" {
		driver.Status = models.DriverStatusAvailable
	}

	s.store.PutDriver(driver)
	return &driver, nil
}

func (s *DriverService) UpdateDriver(id string, req *UpdateDriverRequest) (*models.Driver, error) {
	driver, ok := s.store.Driver(id)
	if !ok {
		return nil, errors.New("driver not found")
	}

	if req.Name != "" {
		driver.Name = req.Name
	}
	if req.Email != "" {
		driver.Email = req.Email
	}
	if req.Phone != "" {
		driver.Phone = req.Phone
	}
	if req.LicenseNumber != "" {
		driver.LicenseNumber = req.LicenseNumber
	}
	if req.AssignedVehicle != nil {
		// empty string clears the assignment; dangling ids are tolerated
		driver.AssignedVehicle = *req.AssignedVehicle
	}
	if req.Status != "" {
		driver.Status = req.Status
	}
	driver.UpdatedAt = time.Now()

	s.store.PutDriver(driver)
	return &driver, nil
}

// DeleteDriver removes a driver unless a non-terminal trip still references
// the driver.
func (s *DriverService) DeleteDriver(id string) error {
	if _, ok := s.store.Driver(id); !ok {
		return errors.New("driver not found")
	}
	if s.evaluator.IsEntityActiveInTrips(id, engine.RoleDriver) {
		return errors.New("driver is referenced by an active trip")
	}

	s.store.RemoveDriver(id)
	return nil
}
