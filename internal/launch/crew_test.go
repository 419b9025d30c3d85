package launch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rah-0/launchpad/internal/apperr"
	"github.com/rah-0/launchpad/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two 80kg astronauts do not fit a 150kg crew limit.
func TestAllocate_CrewWeightLimit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t, 5)

	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 100, 10, id))
	err := h.svc.AllocateAstronaut(ctx, 1, 101, 10, id)
	assert.ErrorIs(t, err, apperr.ErrBadInput)
	assert.Equal(t, []int{100}, h.launch(t, id).Astronauts)

	// 80 + 60 = 140 fits
	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 102, 10, id))
	assert.Equal(t, []int{100, 102}, h.launch(t, id).Astronauts)
}

func TestAllocate_Checks(t *testing.T) {
	tests := []struct {
		name        string
		userID      int
		astronautID int
		missionID   int
		launchID    int
		kind        apperr.Kind
	}{
		{"launch missing", 1, 100, 10, 99, apperr.KindBadInput},
		{"astronaut missing", 1, 999, 10, 1, apperr.KindBadInput},
		{"astronaut on another mission", 1, 103, 10, 1, apperr.KindBadInput},
		{"astronaut unassigned", 1, 104, 10, 1, apperr.KindBadInput},
		{"launch of another mission", 1, 103, 20, 1, apperr.KindBadInput},
		{"mission not owned", 2, 100, 10, 1, apperr.KindInaccessibleValue},
		{"mission missing", 1, 100, 77, 1, apperr.KindInaccessibleValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.create(t, 5)

			err := h.svc.AllocateAstronaut(context.Background(), tt.userID, tt.astronautID, tt.missionID, tt.launchID)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
			assert.Empty(t, h.launch(t, 1).Astronauts)
		})
	}
}

func TestAllocate_Twice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t, 5)

	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 102, 10, id))
	err := h.svc.AllocateAstronaut(ctx, 1, 102, 10, id)
	assert.ErrorIs(t, err, apperr.ErrBadInput)
	assert.Equal(t, []int{102}, h.launch(t, id).Astronauts)
}

func TestAllocate_ExclusiveAcrossLaunches(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	first := h.create(t, 5)
	second := h.create(t, 6)

	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 100, 10, first))
	err := h.svc.AllocateAstronaut(ctx, 1, 100, 10, second)
	assert.ErrorIs(t, err, apperr.ErrBadInput)

	// Landing the first launch releases its crew
	h.act(t, first, models.ActionFault)
	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 100, 10, second))
	assert.Equal(t, []int{100}, h.launch(t, second).Astronauts)
}

func TestAllocate_ConcurrentRequestsKeepExclusivity(t *testing.T) {
	h := newHarness(t)
	launches := []int{h.create(t, 5), h.create(t, 6)}

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(launchID int) {
			defer wg.Done()
			if err := h.svc.AllocateAstronaut(context.Background(), 1, 100, 10, launchID); err == nil {
				succeeded.Add(1)
			}
		}(launches[i%2])
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	total := len(h.launch(t, launches[0]).Astronauts) + len(h.launch(t, launches[1]).Astronauts)
	assert.Equal(t, 1, total)
}

func TestDeallocate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t, 5)
	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 100, 10, id))
	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 102, 10, id))

	require.NoError(t, h.svc.DeallocateAstronaut(ctx, "sess-1", 100, 10, id))
	assert.Equal(t, []int{102}, h.launch(t, id).Astronauts)

	err := h.svc.DeallocateAstronaut(ctx, "sess-1", 100, 10, id)
	assert.ErrorIs(t, err, apperr.ErrBadInput, "no longer allocated")
}

func TestDeallocate_ErrorLadder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t, 5)
	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 100, 10, id))

	err := h.svc.DeallocateAstronaut(ctx, "bogus", 100, 10, id)
	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(err))

	err = h.svc.DeallocateAstronaut(ctx, "sess-2", 100, 10, id)
	assert.Equal(t, apperr.KindInaccessibleValue, apperr.KindOf(err))

	err = h.svc.DeallocateAstronaut(ctx, "sess-1", 999, 10, id)
	assert.Equal(t, apperr.KindBadInput, apperr.KindOf(err))

	err = h.svc.DeallocateAstronaut(ctx, "sess-1", 100, 10, 42)
	assert.Equal(t, apperr.KindBadInput, apperr.KindOf(err))

	assert.Equal(t, []int{100}, h.launch(t, id).Astronauts)
}

func TestDeallocate_NotMidFlight(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t, 5)
	require.NoError(t, h.svc.AllocateAstronaut(ctx, 1, 100, 10, id))

	h.act(t, id, models.ActionLiftoff)
	err := h.svc.DeallocateAstronaut(ctx, "sess-1", 100, 10, id)
	assert.ErrorIs(t, err, apperr.ErrBadInput)

	h.act(t, id, models.ActionSkipWaiting)
	err = h.svc.DeallocateAstronaut(ctx, "sess-1", 100, 10, id)
	assert.ErrorIs(t, err, apperr.ErrBadInput)
	assert.Equal(t, []int{100}, h.launch(t, id).Astronauts)

	// Back on Earth the crew list is already empty
	h.act(t, id, models.ActionFault, models.ActionReturn)
	err = h.svc.DeallocateAstronaut(ctx, "sess-1", 100, 10, id)
	assert.ErrorIs(t, err, apperr.ErrBadInput)
	assert.Empty(t, h.launch(t, id).Astronauts)
}
