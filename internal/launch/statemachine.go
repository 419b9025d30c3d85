package launch

import (
	"context"
	"log/slog"
	"time"

	"github.com/rah-0/launchpad/internal/apperr"
	"github.com/rah-0/launchpad/internal/models"
	"github.com/rah-0/launchpad/internal/physics"
	"github.com/rah-0/launchpad/internal/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// LiftoffDelay is how long a launch stays LAUNCHING before it starts maneuvering.
	LiftoffDelay = 3 * time.Second

	// ManeuverFuelCost is the fuel spent by one CORRECTION or FIRE_THRUSTERS.
	ManeuverFuelCost = 3.0
)

// legalActions lists the actions accepted in each state.
var legalActions = map[models.State][]models.Action{
	models.StateReadyToLaunch:   {models.ActionLiftoff, models.ActionFault},
	models.StateLaunching:       {models.ActionFault, models.ActionSkipWaiting},
	models.StateManeuvering:     {models.ActionFireThrusters, models.ActionFault, models.ActionCorrection},
	models.StateCoasting:        {models.ActionDeployPayload, models.ActionFault},
	models.StateMissionComplete: {models.ActionGoHome},
	models.StateReentry:         {models.ActionReturn},
	models.StateOnEarth:         {},
}

// Legal reports whether action may be issued to a launch in state.
func Legal(state models.State, action models.Action) bool {
	for _, a := range legalActions[state] {
		if a == action {
			return true
		}
	}
	return false
}

// faultState is where FAULT sends a launch: still on the pad means straight back to
// Earth, anything else has to re-enter first.
func faultState(from models.State) models.State {
	if from == models.StateReadyToLaunch {
		return models.StateOnEarth
	}
	return models.StateReentry
}

// StateMachine applies actions to launches and drives their autonomous transitions.
// It shares the service lock so timer callbacks and requests never interleave.
type StateMachine struct {
	mu       *storage.ContextMutex
	launches storage.LaunchRepository
	dir      storage.Directory
	timers   *TimerRegistry
	now      func() time.Time
	log      *slog.Logger
	metrics  *metrics
}

// Update applies action to the launch as one atomic step.
func (m *StateMachine) Update(ctx context.Context, launchID int, action models.Action) error {
	if err := m.mu.Lock(ctx); err != nil {
		return err
	}
	defer m.mu.Unlock()

	launch, err := m.launches.GetLaunch(ctx, launchID)
	if err != nil {
		return err
	}
	return m.apply(ctx, launch, action)
}

func (m *StateMachine) apply(ctx context.Context, launch *models.Launch, action models.Action) error {
	if !Legal(launch.State, action) {
		return apperr.BadInput("action %q is not allowed while launch %d is %s", action, launch.ID, launch.State)
	}

	switch action {
	case models.ActionLiftoff:
		return m.liftoff(ctx, launch)

	case models.ActionCorrection, models.ActionFireThrusters:
		// Exactly ManeuverFuelCost units left is not enough: the tank never runs dry
		if launch.RemainingFuel-ManeuverFuelCost <= 0 {
			return m.fault(ctx, launch, apperr.BadInput("launch %d has %.2f maneuvering fuel, need more than %.0f",
				launch.ID, launch.RemainingFuel, ManeuverFuelCost))
		}
		launch.RemainingFuel -= ManeuverFuelCost
		if action == models.ActionCorrection {
			return m.enter(ctx, launch, models.StateLaunching, string(action))
		}
		return m.enter(ctx, launch, models.StateCoasting, string(action))

	case models.ActionDeployPayload:
		deployedAt := m.now()
		launch.Payload.DeployedAt = &deployedAt
		return m.enter(ctx, launch, models.StateMissionComplete, string(action))

	case models.ActionGoHome:
		return m.enter(ctx, launch, models.StateReentry, string(action))

	case models.ActionReturn:
		return m.enter(ctx, launch, models.StateOnEarth, string(action))

	case models.ActionFault:
		m.metrics.faults.Add(ctx, 1)
		return m.enter(ctx, launch, faultState(launch.State), string(action))

	case models.ActionSkipWaiting:
		return m.enter(ctx, launch, models.StateManeuvering, string(action))
	}

	return apperr.BadInput("unrecognised action %q", action)
}

func (m *StateMachine) liftoff(ctx context.Context, launch *models.Launch) error {
	vehicle, err := m.dir.ResolveVehicle(ctx, launch.VehicleID, false)
	if err != nil {
		return err
	}
	crew, err := resolveCrew(ctx, m.dir, launch.Astronauts)
	if err != nil {
		return err
	}

	res := physics.Feasibility(launch.Params, *vehicle, crew, launch.Payload.Weight)
	if !res.CanReachTarget {
		return m.fault(ctx, launch, apperr.BadInput("launch %d cannot reach %.0f m with its crew (max %.2f m)",
			launch.ID, launch.Params.TargetDistance, res.MaxReachableDistance))
	}

	distance := physics.OrbitalDistance(launch.Params.TargetDistance)
	velocity := physics.OrbitalVelocity(res.Acceleration, launch.Params.TargetDistance)
	launch.Payload.OrbitalDistance = &distance
	launch.Payload.OrbitalVelocity = &velocity

	return m.enter(ctx, launch, models.StateLaunching, string(models.ActionLiftoff))
}

// fault degrades the launch through FAULT and still reports cause to the caller.
func (m *StateMachine) fault(ctx context.Context, launch *models.Launch, cause *apperr.Error) error {
	m.metrics.faults.Add(ctx, 1)
	if err := m.enter(ctx, launch, faultState(launch.State), string(models.ActionFault)); err != nil {
		return err
	}
	return cause
}

// enter moves the launch into state, persists it and rearms its timer.
func (m *StateMachine) enter(ctx context.Context, launch *models.Launch, state models.State, cause string) error {
	from := launch.State
	launch.State = state
	if state == models.StateOnEarth {
		launch.Astronauts = []int{}
	}

	if err := m.launches.SaveLaunch(ctx, launch); err != nil {
		return err
	}

	m.timers.Cancel(launch.ID)
	switch state {
	case models.StateLaunching:
		m.schedule(launch.ID, LiftoffDelay, models.StateManeuvering)
	case models.StateManeuvering:
		delay := time.Duration(launch.Params.ManeuveringDelay * float64(time.Second))
		m.schedule(launch.ID, delay, models.StateCoasting)
	}

	m.metrics.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", string(from)),
		attribute.String("to", string(state)),
		attribute.String("cause", cause),
	))
	m.log.Info("Launch state changed",
		"launch", launch.ID,
		"from", from,
		"to", state,
		"cause", cause,
		"fuel", launch.RemainingFuel,
	)
	return nil
}

func (m *StateMachine) schedule(launchID int, d time.Duration, to models.State) {
	m.timers.Schedule(launchID, d, func(token uint64) {
		m.advance(launchID, token, to)
	})
}

// advance is the timer callback for autonomous transitions.
func (m *StateMachine) advance(launchID int, token uint64, to models.State) {
	ctx := context.Background()
	if err := m.mu.Lock(ctx); err != nil {
		return
	}
	defer m.mu.Unlock()

	if !m.timers.Claim(launchID, token) {
		m.log.Debug("Ignoring superseded launch timer", "launch", launchID, "to", to)
		return
	}

	launch, err := m.launches.GetLaunch(ctx, launchID)
	if err != nil {
		m.log.Error("Autonomous transition failed to load launch", "launch", launchID, "error", err)
		return
	}
	if err := m.enter(ctx, launch, to, "autonomous"); err != nil {
		m.log.Error("Autonomous transition failed", "launch", launchID, "to", to, "error", err)
	}
}

// resolveCrew loads the astronauts allocated to a launch.
func resolveCrew(ctx context.Context, dir storage.Directory, ids []int) ([]models.Astronaut, error) {
	crew := make([]models.Astronaut, 0, len(ids))
	for _, id := range ids {
		a, err := dir.ResolveAstronaut(ctx, id)
		if err != nil {
			return nil, err
		}
		crew = append(crew, *a)
	}
	return crew, nil
}
