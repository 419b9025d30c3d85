package launch

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rah-0/launchpad/internal/apperr"
	"github.com/rah-0/launchpad/internal/models"
	"github.com/rah-0/launchpad/internal/physics"
	"github.com/rah-0/launchpad/internal/storage"
)

// MaxPayloadDescription is the longest payload description accepted, in characters.
const MaxPayloadDescription = 400

// Factory validates creation requests and builds new launches.
type Factory struct {
	launches storage.LaunchRepository
	dir      storage.Directory
	now      func() time.Time
}

// Create runs every creation check in order and returns the new launch with a
// reserved ID. The launch is not stored.
func (f *Factory) Create(ctx context.Context, userID, missionID, vehicleID int, payload models.Payload, params models.CalculationParameters) (*models.Launch, error) {
	mission, err := f.dir.ResolveMission(ctx, missionID, userID)
	if err != nil {
		return nil, err
	}

	vehicle, err := f.dir.ResolveVehicle(ctx, vehicleID, true)
	if err != nil {
		return nil, err
	}

	busy, err := vehicleInActiveLaunch(ctx, f.launches, vehicleID)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, apperr.BadInput("launch vehicle %d is already assigned to an active launch", vehicleID)
	}

	if err := validatePayload(payload, vehicle); err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	// Crew is allocated after creation, so this check only sees vehicle and payload
	res := physics.Feasibility(params, *vehicle, nil, payload.Weight)
	if !res.CanReachTarget {
		return nil, apperr.BadInput("launch vehicle %d cannot reach %.0f m (max %.2f m)",
			vehicleID, params.TargetDistance, res.MaxReachableDistance)
	}

	id, err := f.launches.NextLaunchID(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Launch{
		ID:            id,
		Mission:       mission.Clone(),
		CreatedAt:     f.now(),
		State:         models.StateReadyToLaunch,
		VehicleID:     vehicle.ID,
		RemainingFuel: vehicle.StartingFuel,
		Payload: models.Payload{
			Description: payload.Description,
			Weight:      payload.Weight,
		},
		Astronauts: []int{},
		Params:     params,
	}, nil
}

func validatePayload(payload models.Payload, vehicle *models.LaunchVehicle) error {
	n := utf8.RuneCountInString(payload.Description)
	if n == 0 {
		return apperr.BadInput("payload description is empty")
	}
	if n > MaxPayloadDescription {
		return apperr.BadInput("payload description is %d characters, limit is %d", n, MaxPayloadDescription)
	}
	if payload.Weight < 0 {
		return apperr.BadInput("payload weight %.2f is negative", payload.Weight)
	}
	if payload.Weight > vehicle.MaxPayloadWeight {
		return apperr.BadInput("payload weight %.2f exceeds vehicle limit %.2f", payload.Weight, vehicle.MaxPayloadWeight)
	}
	return nil
}

func validateParams(p models.CalculationParameters) error {
	switch {
	case p.TargetDistance < 0:
		return apperr.BadInput("targetDistance must not be negative")
	case p.ThrustFuel < 0:
		return apperr.BadInput("thrustFuel must not be negative")
	case p.FuelBurnRate < 0:
		return apperr.BadInput("fuelBurnRate must not be negative")
	case p.ActiveGravityForce < 0:
		return apperr.BadInput("activeGravityForce must not be negative")
	case p.ManeuveringDelay < 1:
		return apperr.BadInput("maneuveringDelay must be at least 1 second")
	case p.FuelBurnRate > p.ThrustFuel:
		return apperr.BadInput("fuelBurnRate %.2f exceeds thrustFuel %.2f", p.FuelBurnRate, p.ThrustFuel)
	}
	return nil
}

// vehicleInActiveLaunch reports whether any launch not yet ON_EARTH holds the vehicle.
func vehicleInActiveLaunch(ctx context.Context, launches storage.LaunchRepository, vehicleID int) (bool, error) {
	all, err := launches.ListLaunches(ctx, storage.NewSortOptions())
	if err != nil {
		return false, err
	}
	for _, l := range all {
		if l.VehicleID == vehicleID && l.State.Active() {
			return true, nil
		}
	}
	return false, nil
}
