package launch

import (
	"context"
	"testing"
	"time"

	"github.com/rah-0/launchpad/internal/models"
	"github.com/rah-0/launchpad/internal/physics"
	"github.com/rah-0/launchpad/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetails_ReadyLaunch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t, 5)
	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 100, 10, id))
	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 102, 10, id))

	view, err := h.svc.Details(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, view.ID)
	assert.Equal(t, models.StateReadyToLaunch, view.State)
	assert.Equal(t, models.MissionSummary{
		ID:          10,
		Name:        "Artemis",
		Description: "Lunar survey",
		Target:      "Moon",
		Astronauts:  []int{100, 101, 102},
	}, view.Mission)
	assert.Equal(t, models.VehicleSummary{ID: 5, Name: "Saturn V", RemainingFuel: 10}, view.Vehicle)
	assert.Equal(t, []models.AstronautSummary{
		{ID: 100, Designation: "Commander Sally Ride"},
		{ID: 102, Designation: "Specialist Mae Jemison"},
	}, view.Astronauts)
	assert.False(t, view.Payload.Deployed)
	assert.Nil(t, view.Payload.OrbitalDistance)
	assert.Nil(t, view.Payload.DeviationAngle)
	assert.Equal(t, epoch, view.CreatedAt)
}

func TestDetails_DeviationAngleGrowsWithTime(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t, 5)

	h.act(t, id, models.ActionLiftoff, models.ActionSkipWaiting, models.ActionFireThrusters, models.ActionDeployPayload)
	deployed := h.clock.Now()

	view, err := h.svc.Details(ctx, id)
	require.NoError(t, err)
	require.True(t, view.Payload.Deployed)
	require.NotNil(t, view.Payload.DeviationAngle)
	assert.Zero(t, *view.Payload.DeviationAngle)
	assert.Equal(t, deployed, *view.Payload.DeployedAt)

	h.clock.Advance(10 * time.Second)

	view, err = h.svc.Details(ctx, id)
	require.NoError(t, err)
	velocity, distance := *view.Payload.OrbitalVelocity, *view.Payload.OrbitalDistance
	assert.Equal(t, physics.OrbitalDistance(10000), distance)
	assert.InDelta(t, velocity*10/distance, *view.Payload.DeviationAngle, 1e-12)
	assert.Greater(t, *view.Payload.DeviationAngle, 0.0)
}

func TestDetails_UnknownLaunch(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.Details(context.Background(), 404)
	assert.Error(t, err)
}

func TestList_SplitsActiveAndCompleted(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	list, err := h.svc.List(ctx, 1, storage.NewSortOptions())
	require.NoError(t, err)
	assert.NotNil(t, list.Active)
	assert.NotNil(t, list.Completed)
	assert.Empty(t, list.Active)
	assert.Empty(t, list.Completed)

	first := h.create(t, 5)
	second := h.create(t, 6)
	third := h.create(t, 8)
	h.act(t, second, models.ActionFault)

	list, err = h.svc.List(ctx, 1, storage.NewSortOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{first, third}, list.Active)
	assert.Equal(t, []int{second}, list.Completed)

	// Another user sees the same launches
	list, err = h.svc.List(ctx, 2, storage.ParseSortOptions("id", "desc"))
	require.NoError(t, err)
	assert.Equal(t, []int{third, first}, list.Active)
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	first := h.create(t, 5)
	h.act(t, first, models.ActionLiftoff)
	require.Equal(t, 1, h.clock.Pending())

	require.NoError(t, h.svc.Reset(ctx))

	assert.Equal(t, 0, h.svc.Timers().Len())
	assert.Equal(t, 0, h.clock.Pending())
	list, err := h.svc.List(ctx, 1, storage.NewSortOptions())
	require.NoError(t, err)
	assert.Empty(t, list.Active)

	// IDs keep counting and the vehicle is free again
	next := h.create(t, 5)
	assert.Greater(t, next, first)

	h.clock.Advance(time.Minute)
	assert.Equal(t, models.StateReadyToLaunch, h.launch(t, next).State)
}
