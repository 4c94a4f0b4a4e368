package handlers

import (
	"net/http"

	"fleet-admin/internal/services"
	"fleet-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TripHandler struct {
	tripService *services.TripService
	validator   *validator.Validate
}

func NewTripHandler(tripService *services.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		validator:   validator.New(),
	}
}

// GetTrips retrieves all trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	trips := h.tripService.GetAllTrips()
	utils.SuccessResponse(c, http.StatusOK, "Trips retrieved successfully", trips)
}

// GetTrip retrieves a specific trip by ID
func (h *TripHandler) GetTrip(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Trip ID is required", nil)
		return
	}

	trip, err := h.tripService.GetTripByID(tripID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Trip not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip retrieved successfully", trip)
}

// CreateTrip creates a new trip
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req services.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	trip, err := h.tripService.CreateTrip(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to create trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Trip created successfully", trip)
}

// UpdateTrip updates an existing trip
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Trip ID is required", nil)
		return
	}

	var req services.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	trip, err := h.tripService.UpdateTrip(tripID, &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to update trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip updated successfully", trip)
}

// DeleteTrip deletes a trip
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Trip ID is required", nil)
		return
	}

	if err := h.tripService.DeleteTrip(tripID); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to delete trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip deleted successfully", nil)
}
