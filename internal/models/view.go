package models

import "time"

// LaunchView is the read-only projection returned by launch details
type LaunchView struct {
	ID         int                   `json:"launchId"`
	Mission    MissionSummary        `json:"missionCopy"`
	CreatedAt  time.Time             `json:"timeCreated"`
	State      State                 `json:"state"`
	Vehicle    VehicleSummary        `json:"launchVehicle"`
	Payload    PayloadSummary        `json:"payload"`
	Astronauts []AstronautSummary    `json:"allocatedAstronauts"`
	Params     CalculationParameters `json:"launchCalculationParameters"`
}

// VehicleSummary describes the vehicle assigned to a launch
type VehicleSummary struct {
	ID            int     `json:"launchVehicleId"`
	Name          string  `json:"name"`
	RemainingFuel float64 `json:"maneuveringFuelRemaining"`
}

// PayloadSummary describes the payload; DeviationAngle is computed at query time
type PayloadSummary struct {
	Description     string     `json:"description"`
	Weight          float64    `json:"weight"`
	Deployed        bool       `json:"deployed"`
	DeployedAt      *time.Time `json:"deployedAt,omitempty"`
	OrbitalDistance *float64   `json:"orbitalDistance,omitempty"`
	OrbitalVelocity *float64   `json:"orbitalVelocity,omitempty"`
	DeviationAngle  *float64   `json:"deviationAngle,omitempty"`
}

// AstronautSummary identifies an allocated astronaut
type AstronautSummary struct {
	ID          int    `json:"astronautId"`
	Designation string `json:"designation"`
}

// LaunchList splits launch IDs by whether the launch is still active
type LaunchList struct {
	Active    []int `json:"activeLaunches"`
	Completed []int `json:"completedLaunches"`
}
