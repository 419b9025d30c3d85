package launch

import (
	"testing"
	"time"

	"github.com/rah-0/launchpad/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerRegistry_ReplaceCancelsPrevious(t *testing.T) {
	clock := scheduler.NewManual(epoch)
	r := NewTimerRegistry(clock)
	var fired []uint64

	first := r.Schedule(1, time.Second, func(token uint64) { fired = append(fired, token) })
	second := r.Schedule(1, 2*time.Second, func(token uint64) { fired = append(fired, token) })

	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, clock.Pending())

	due, ok := r.Due(1)
	require.True(t, ok)
	assert.Equal(t, epoch.Add(2*time.Second), due)

	clock.Advance(5 * time.Second)
	assert.Equal(t, []uint64{second}, fired)
}

func TestTimerRegistry_Claim(t *testing.T) {
	clock := scheduler.NewManual(epoch)
	r := NewTimerRegistry(clock)

	token := r.Schedule(7, time.Second, func(uint64) {})

	assert.False(t, r.Claim(7, token+1), "wrong token")
	assert.False(t, r.Claim(8, token), "wrong launch")
	assert.True(t, r.Claim(7, token))
	assert.False(t, r.Claim(7, token), "already claimed")
	assert.False(t, r.Pending(7))
}

func TestTimerRegistry_Cancel(t *testing.T) {
	clock := scheduler.NewManual(epoch)
	r := NewTimerRegistry(clock)
	called := false

	r.Schedule(3, time.Second, func(uint64) { called = true })
	assert.True(t, r.Cancel(3))
	assert.False(t, r.Cancel(3))

	clock.Advance(time.Minute)
	assert.False(t, called)
}

func TestTimerRegistry_Reset(t *testing.T) {
	clock := scheduler.NewManual(epoch)
	r := NewTimerRegistry(clock)
	calls := 0

	for id := 1; id <= 5; id++ {
		r.Schedule(id, time.Duration(id)*time.Second, func(uint64) { calls++ })
	}
	require.Equal(t, 5, r.Len())

	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(time.Minute)
	assert.Equal(t, 0, calls)
}
