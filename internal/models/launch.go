package models

import "time"

// State is the lifecycle position of a launch
type State string

// Launch states
const (
	StateReadyToLaunch   State = "READY_TO_LAUNCH"
	StateLaunching       State = "LAUNCHING"
	StateManeuvering     State = "MANEUVERING"
	StateCoasting        State = "COASTING"
	StateMissionComplete State = "MISSION_COMPLETE"
	StateReentry         State = "REENTRY"
	StateOnEarth         State = "ON_EARTH"
)

// States lists every launch state in lifecycle order
var States = []State{
	StateReadyToLaunch,
	StateLaunching,
	StateManeuvering,
	StateCoasting,
	StateMissionComplete,
	StateReentry,
	StateOnEarth,
}

// Active reports whether a launch in this state still holds its vehicle and crew
func (s State) Active() bool {
	return s != StateOnEarth
}

// Action is a caller-issued command against a launch
type Action string

// Launch actions
const (
	ActionLiftoff       Action = "LIFTOFF"
	ActionCorrection    Action = "CORRECTION"
	ActionFireThrusters Action = "FIRE_THRUSTERS"
	ActionDeployPayload Action = "DEPLOY_PAYLOAD"
	ActionGoHome        Action = "GO_HOME"
	ActionReturn        Action = "RETURN"
	ActionFault         Action = "FAULT"
	ActionSkipWaiting   Action = "SKIP_WAITING"
)

// CalculationParameters are the inputs of the feasibility model
type CalculationParameters struct {
	TargetDistance     float64 `json:"targetDistance"`     // m
	ThrustFuel         float64 `json:"thrustFuel"`         // fuel units available for the burn
	FuelBurnRate       float64 `json:"fuelBurnRate"`       // fuel units per second
	ActiveGravityForce float64 `json:"activeGravityForce"` // m/s^2
	ManeuveringDelay   float64 `json:"maneuveringDelay"`   // seconds spent in MANEUVERING
}

// Payload is the cargo carried by a launch
type Payload struct {
	Description     string     `json:"description"`
	Weight          float64    `json:"weight"`
	DeployedAt      *time.Time `json:"deployedAt,omitempty"`
	OrbitalDistance *float64   `json:"orbitalDistance,omitempty"`
	OrbitalVelocity *float64   `json:"orbitalVelocity,omitempty"`
}

// Launch is one execution attempt of a mission with a specific vehicle
type Launch struct {
	ID            int                   `json:"launchId"`
	Mission       Mission               `json:"missionCopy"` // Snapshot taken at creation
	CreatedAt     time.Time             `json:"timeCreated"`
	State         State                 `json:"state"`
	VehicleID     int                   `json:"assignedLaunchVehicleId"`
	RemainingFuel float64               `json:"remainingLaunchVehicleManeuveringFuel"`
	Payload       Payload               `json:"payload"`
	Astronauts    []int                 `json:"allocatedAstronauts"`
	Params        CalculationParameters `json:"launchCalculationParameters"`
}

// Clone returns a copy of the launch that can be mutated without touching the original
func (l *Launch) Clone() *Launch {
	c := *l
	c.Mission = l.Mission.Clone()
	c.Astronauts = append([]int(nil), l.Astronauts...)
	if l.Payload.DeployedAt != nil {
		t := *l.Payload.DeployedAt
		c.Payload.DeployedAt = &t
	}
	if l.Payload.OrbitalDistance != nil {
		d := *l.Payload.OrbitalDistance
		c.Payload.OrbitalDistance = &d
	}
	if l.Payload.OrbitalVelocity != nil {
		v := *l.Payload.OrbitalVelocity
		c.Payload.OrbitalVelocity = &v
	}
	return &c
}

// HasAstronaut reports whether the astronaut is allocated to the launch
func (l *Launch) HasAstronaut(astronautID int) bool {
	for _, id := range l.Astronauts {
		if id == astronautID {
			return true
		}
	}
	return false
}

// RemoveAstronaut drops the astronaut from the allocation list, keeping order
func (l *Launch) RemoveAstronaut(astronautID int) {
	kept := l.Astronauts[:0]
	for _, id := range l.Astronauts {
		if id != astronautID {
			kept = append(kept, id)
		}
	}
	l.Astronauts = kept
}
