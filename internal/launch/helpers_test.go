package launch

import (
	"context"
	"testing"
	"time"

	"github.com/rah-0/launchpad/internal/models"
	"github.com/rah-0/launchpad/internal/scheduler"
	"github.com/rah-0/launchpad/internal/storage"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 4, 12, 6, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func fixtureDocument() *storage.Document {
	return &storage.Document{
		Users:    []models.User{{ID: 1, Email: "ada@example.com"}, {ID: 2, Email: "bob@example.com"}},
		Sessions: []models.Session{{ID: "sess-1", UserID: 1}, {ID: "sess-2", UserID: 2}},
		Missions: []models.Mission{
			{ID: 10, OwnerID: 1, Name: "Artemis", Description: "Lunar survey", Target: "Moon", Astronauts: []int{100, 101, 102}},
			{ID: 20, OwnerID: 1, Name: "Ares", Target: "Mars", Astronauts: []int{103}},
			{ID: 30, OwnerID: 2, Name: "Bob's", Target: "Venus"},
		},
		Astronauts: []models.Astronaut{
			{ID: 100, NameFirst: "Sally", NameLast: "Ride", Rank: "Commander", Weight: 80, MissionID: intPtr(10)},
			{ID: 101, NameFirst: "Yuri", NameLast: "Gagarin", Rank: "Pilot", Weight: 80, MissionID: intPtr(10)},
			{ID: 102, NameFirst: "Mae", NameLast: "Jemison", Rank: "Specialist", Weight: 60, MissionID: intPtr(10)},
			{ID: 103, NameFirst: "Neil", NameLast: "Armstrong", Rank: "Commander", Weight: 70, MissionID: intPtr(20)},
			{ID: 104, NameFirst: "Free", NameLast: "Agent", Rank: "Cadet", Weight: 50},
		},
		Vehicles: []models.LaunchVehicle{
			{ID: 5, Name: "Saturn V", MaxCrewWeight: 150, MaxPayloadWeight: 1000, DryWeight: 54905, ThrustCapacity: 7607000, StartingFuel: 10},
			{ID: 6, Name: "Saturn VI", MaxCrewWeight: 150, MaxPayloadWeight: 1000, DryWeight: 54905, ThrustCapacity: 7607000, StartingFuel: 10},
			{ID: 7, Name: "Retired", MaxCrewWeight: 150, MaxPayloadWeight: 1000, DryWeight: 54905, ThrustCapacity: 7607000, Retired: true},
			{ID: 8, Name: "Dry Tank", MaxCrewWeight: 150, MaxPayloadWeight: 1000, DryWeight: 54905, ThrustCapacity: 7607000, StartingFuel: 3},
		},
	}
}

func relayPayload() models.Payload {
	return models.Payload{Description: "Relay satellite", Weight: 400}
}

func lunarParams() models.CalculationParameters {
	return models.CalculationParameters{
		TargetDistance:     10000,
		ThrustFuel:         1000,
		FuelBurnRate:       20,
		ActiveGravityForce: 9.8,
		ManeuveringDelay:   2,
	}
}

type harness struct {
	svc   *Service
	repo  *storage.InMemoryRepository
	clock *scheduler.Manual
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	repo := storage.NewInMemoryRepository()
	require.NoError(t, repo.Seed(context.Background(), fixtureDocument()))

	clock := scheduler.NewManual(epoch)
	svc, err := NewService(repo, repo, Options{Scheduler: clock})
	require.NoError(t, err)

	return &harness{svc: svc, repo: repo, clock: clock}
}

// create makes a relay launch for mission 10 on the given vehicle.
func (h *harness) create(t *testing.T, vehicleID int) int {
	t.Helper()
	id, err := h.svc.CreateLaunch(context.Background(), 1, 10, vehicleID, relayPayload(), lunarParams())
	require.NoError(t, err)
	return id
}

func (h *harness) launch(t *testing.T, id int) *models.Launch {
	t.Helper()
	l, err := h.repo.GetLaunch(context.Background(), id)
	require.NoError(t, err)
	return l
}

func (h *harness) act(t *testing.T, id int, actions ...models.Action) {
	t.Helper()
	for _, a := range actions {
		require.NoError(t, h.svc.UpdateStatus(context.Background(), a, id), string(a))
	}
}

// requireSingleTimers checks that every timer the registry replaced was also stopped.
func (h *harness) requireSingleTimers(t *testing.T) {
	t.Helper()
	require.Equal(t, h.svc.Timers().Len(), h.clock.Pending())
}
