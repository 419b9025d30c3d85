package api

import (
	"errors"
	"slices"

	"github.com/rah-0/launchpad/internal/models"
)

// CreateLaunchRequest is the body of POST /launches
type CreateLaunchRequest struct {
	MissionID int                          `json:"missionId"`
	VehicleID int                          `json:"launchVehicleId"`
	Payload   PayloadRequest               `json:"payload"`
	Params    models.CalculationParameters `json:"launchCalculationParameters"`
}

// PayloadRequest describes the cargo of a new launch
type PayloadRequest struct {
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

// StatusRequest is the body of PUT /launches/{id}/status
type StatusRequest struct {
	Action models.Action `json:"action"`
}

// AllocateRequest is the body of POST /launches/{id}/astronauts/{astronautId}
type AllocateRequest struct {
	MissionID int `json:"missionId"`
}

// CreateLaunchResponse carries the ID of a created launch
type CreateLaunchResponse struct {
	LaunchID int `json:"launchId"`
}

// ErrorResponse is the body of every failed request; Kind is set for launch control errors
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

var knownActions = []models.Action{
	models.ActionLiftoff,
	models.ActionCorrection,
	models.ActionFireThrusters,
	models.ActionDeployPayload,
	models.ActionGoHome,
	models.ActionReturn,
	models.ActionFault,
	models.ActionSkipWaiting,
}

// validateCreateLaunch checks the shape of a creation request; business rules are
// left to launch control
func validateCreateLaunch(req CreateLaunchRequest) error {
	if req.MissionID <= 0 {
		return errors.New("missing or invalid missionId")
	}
	if req.VehicleID <= 0 {
		return errors.New("missing or invalid launchVehicleId")
	}
	return nil
}

// validateStatus ensures the action is one launch control understands
func validateStatus(req StatusRequest) error {
	if req.Action == "" {
		return errors.New("missing action")
	}
	if !slices.Contains(knownActions, req.Action) {
		return errors.New("unknown action " + string(req.Action))
	}
	return nil
}

func validateAllocate(req AllocateRequest) error {
	if req.MissionID <= 0 {
		return errors.New("missing or invalid missionId")
	}
	return nil
}
