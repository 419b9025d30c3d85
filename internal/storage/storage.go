package storage

import (
	"context"

	"github.com/rah-0/launchpad/internal/models"
)

// LaunchRepository stores launch records. Implementations hand out copies so callers
// can mutate what they read without affecting stored state until SaveLaunch.
type LaunchRepository interface {
	// NextLaunchID reserves a new, never reused launch ID
	NextLaunchID(ctx context.Context) (int, error)

	// SaveLaunch inserts or replaces a launch record
	SaveLaunch(ctx context.Context, launch *models.Launch) error

	// GetLaunch retrieves a launch by ID; missing launches are a BAD_INPUT error
	GetLaunch(ctx context.Context, id int) (*models.Launch, error)

	// ListLaunches returns every launch ordered by the sort options
	ListLaunches(ctx context.Context, opts SortOptions) ([]*models.Launch, error)

	// Clear removes every launch record
	Clear(ctx context.Context) error
}

// Directory resolves the records launch control consumes but does not own.
type Directory interface {
	// ResolveMission fails INACCESSIBLE_VALUE if the mission is missing, archived or
	// not owned by userID
	ResolveMission(ctx context.Context, missionID, userID int) (*models.Mission, error)

	// ResolveAstronaut fails BAD_INPUT if the astronaut is missing
	ResolveAstronaut(ctx context.Context, astronautID int) (*models.Astronaut, error)

	// ResolveVehicle fails BAD_INPUT if the vehicle is missing, or retired when checkRetired is set
	ResolveVehicle(ctx context.Context, vehicleID int, checkRetired bool) (*models.LaunchVehicle, error)

	// ResolveSession fails INVALID_CREDENTIALS if the session is unknown
	ResolveSession(ctx context.Context, sessionID string) (int, error)
}

// Backend is a complete store: launches, the directory, and seeding.
type Backend interface {
	LaunchRepository
	Directory
	Seed(ctx context.Context, doc *Document) error
	Close() error
}
