package launch

import (
	"context"

	"github.com/rah-0/launchpad/internal/apperr"
	"github.com/rah-0/launchpad/internal/models"
	"github.com/rah-0/launchpad/internal/storage"
)

// Crew allocates astronauts to launches.
type Crew struct {
	launches storage.LaunchRepository
	dir      storage.Directory
}

// Allocate validates and applies an allocation, returning the updated launch unsaved.
func (c *Crew) Allocate(ctx context.Context, userID, astronautID, missionID, launchID int) (*models.Launch, error) {
	if _, err := c.dir.ResolveMission(ctx, missionID, userID); err != nil {
		return nil, err
	}
	launch, err := c.launches.GetLaunch(ctx, launchID)
	if err != nil {
		return nil, err
	}
	astronaut, err := c.dir.ResolveAstronaut(ctx, astronautID)
	if err != nil {
		return nil, err
	}
	if launch.Mission.ID != missionID {
		return nil, apperr.BadInput("launch %d does not belong to mission %d", launchID, missionID)
	}
	if !astronaut.AssignedTo(missionID) {
		return nil, apperr.BadInput("astronaut %d is not assigned to mission %d", astronautID, missionID)
	}
	if launch.HasAstronaut(astronautID) {
		return nil, apperr.BadInput("astronaut %d is already allocated to launch %d", astronautID, launchID)
	}

	all, err := c.launches.ListLaunches(ctx, storage.NewSortOptions())
	if err != nil {
		return nil, err
	}
	for _, other := range all {
		if other.ID != launchID && other.State.Active() && other.HasAstronaut(astronautID) {
			return nil, apperr.BadInput("astronaut %d is already allocated to active launch %d", astronautID, other.ID)
		}
	}

	vehicle, err := c.dir.ResolveVehicle(ctx, launch.VehicleID, false)
	if err != nil {
		return nil, err
	}
	crew, err := resolveCrew(ctx, c.dir, launch.Astronauts)
	if err != nil {
		return nil, err
	}
	weight := astronaut.Weight
	for _, a := range crew {
		weight += a.Weight
	}
	if weight > vehicle.MaxCrewWeight {
		return nil, apperr.BadInput("crew weight %.2f would exceed vehicle limit %.2f", weight, vehicle.MaxCrewWeight)
	}

	launch.Astronauts = append(launch.Astronauts, astronautID)
	return launch, nil
}

// Deallocate validates and applies a deallocation, returning the updated launch unsaved.
// Crew can only change while the launch is on the pad or back on Earth.
func (c *Crew) Deallocate(ctx context.Context, sessionID string, astronautID, missionID, launchID int) (*models.Launch, error) {
	userID, err := c.dir.ResolveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := c.dir.ResolveMission(ctx, missionID, userID); err != nil {
		return nil, err
	}
	if _, err := c.dir.ResolveAstronaut(ctx, astronautID); err != nil {
		return nil, err
	}
	launch, err := c.launches.GetLaunch(ctx, launchID)
	if err != nil {
		return nil, err
	}
	if launch.Mission.ID != missionID {
		return nil, apperr.BadInput("launch %d does not belong to mission %d", launchID, missionID)
	}
	if launch.State != models.StateReadyToLaunch && launch.State != models.StateOnEarth {
		return nil, apperr.BadInput("cannot deallocate crew while launch %d is %s", launchID, launch.State)
	}
	if !launch.HasAstronaut(astronautID) {
		return nil, apperr.BadInput("astronaut %d is not allocated to launch %d", astronautID, launchID)
	}

	launch.RemoveAstronaut(astronautID)
	return launch, nil
}
