package storage

import (
	"context"

	"github.com/rah-0/launchpad/internal/apperr"
	"github.com/rah-0/launchpad/internal/models"
)

// InMemoryRepository is an in-memory implementation of Backend
type InMemoryRepository struct {
	mu         *ContextMutex // Protects every map and the ID counter
	launches   map[int]*models.Launch
	lastID     int
	users      map[int]models.User
	sessions   map[string]int
	missions   map[int]models.Mission
	astronauts map[int]models.Astronaut
	vehicles   map[int]models.LaunchVehicle
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		mu:         NewContextMutex(),
		launches:   make(map[int]*models.Launch),
		users:      make(map[int]models.User),
		sessions:   make(map[string]int),
		missions:   make(map[int]models.Mission),
		astronauts: make(map[int]models.Astronaut),
		vehicles:   make(map[int]models.LaunchVehicle),
	}
}

func (r *InMemoryRepository) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.mu.Lock(ctx)
}

func (r *InMemoryRepository) NextLaunchID(ctx context.Context) (int, error) {
	if err := r.lock(ctx); err != nil {
		return 0, err
	}
	defer r.mu.Unlock()

	r.lastID++
	return r.lastID, nil
}

func (r *InMemoryRepository) SaveLaunch(ctx context.Context, launch *models.Launch) error {
	if err := r.lock(ctx); err != nil {
		return err
	}
	defer r.mu.Unlock()

	// Store a copy so the caller keeps no alias into repository state
	r.launches[launch.ID] = launch.Clone()
	return nil
}

func (r *InMemoryRepository) GetLaunch(ctx context.Context, id int) (*models.Launch, error) {
	if err := r.lock(ctx); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()

	launch, exists := r.launches[id]
	if !exists {
		return nil, apperr.BadInput("launch %d not found", id)
	}
	return launch.Clone(), nil
}

func (r *InMemoryRepository) ListLaunches(ctx context.Context, opts SortOptions) ([]*models.Launch, error) {
	if err := r.lock(ctx); err != nil {
		return nil, err
	}

	// Pre-allocate slice with exact capacity needed
	launches := make([]*models.Launch, 0, len(r.launches))
	for _, launch := range r.launches {
		launches = append(launches, launch.Clone())
	}
	r.mu.Unlock()

	SortLaunches(launches, opts)
	return launches, nil
}

func (r *InMemoryRepository) Clear(ctx context.Context) error {
	if err := r.lock(ctx); err != nil {
		return err
	}
	defer r.mu.Unlock()

	r.launches = make(map[int]*models.Launch)
	return nil
}

func (r *InMemoryRepository) ResolveMission(ctx context.Context, missionID, userID int) (*models.Mission, error) {
	if err := r.lock(ctx); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()

	mission, exists := r.missions[missionID]
	if !exists || mission.Archived || mission.OwnerID != userID {
		return nil, apperr.InaccessibleValue("mission %d is not accessible to user %d", missionID, userID)
	}
	c := mission.Clone()
	return &c, nil
}

func (r *InMemoryRepository) ResolveAstronaut(ctx context.Context, astronautID int) (*models.Astronaut, error) {
	if err := r.lock(ctx); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()

	astronaut, exists := r.astronauts[astronautID]
	if !exists {
		return nil, apperr.BadInput("astronaut %d not found", astronautID)
	}
	if astronaut.MissionID != nil {
		id := *astronaut.MissionID
		astronaut.MissionID = &id
	}
	return &astronaut, nil
}

func (r *InMemoryRepository) ResolveVehicle(ctx context.Context, vehicleID int, checkRetired bool) (*models.LaunchVehicle, error) {
	if err := r.lock(ctx); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()

	vehicle, exists := r.vehicles[vehicleID]
	if !exists {
		return nil, apperr.BadInput("launch vehicle %d not found", vehicleID)
	}
	if checkRetired && vehicle.Retired {
		return nil, apperr.BadInput("launch vehicle %d is retired", vehicleID)
	}
	return &vehicle, nil
}

func (r *InMemoryRepository) ResolveSession(ctx context.Context, sessionID string) (int, error) {
	if err := r.lock(ctx); err != nil {
		return 0, err
	}
	defer r.mu.Unlock()

	userID, exists := r.sessions[sessionID]
	if !exists || sessionID == "" {
		return 0, apperr.InvalidCredentials("session is not valid")
	}
	return userID, nil
}

// Seed loads the directory records of doc, replacing records with the same ID
func (r *InMemoryRepository) Seed(ctx context.Context, doc *Document) error {
	if err := r.lock(ctx); err != nil {
		return err
	}
	defer r.mu.Unlock()

	for _, u := range doc.Users {
		r.users[u.ID] = u
	}
	for _, s := range doc.Sessions {
		r.sessions[s.ID] = s.UserID
	}
	for _, m := range doc.Missions {
		r.missions[m.ID] = m.Clone()
	}
	for _, a := range doc.Astronauts {
		if a.MissionID != nil {
			id := *a.MissionID
			a.MissionID = &id
		}
		r.astronauts[a.ID] = a
	}
	for _, v := range doc.Vehicles {
		r.vehicles[v.ID] = v
	}
	return nil
}

// UpdateMission replaces a live mission record; launch snapshots are unaffected
func (r *InMemoryRepository) UpdateMission(ctx context.Context, mission models.Mission) error {
	if err := r.lock(ctx); err != nil {
		return err
	}
	defer r.mu.Unlock()

	r.missions[mission.ID] = mission.Clone()
	return nil
}

func (r *InMemoryRepository) Close() error {
	return nil
}
