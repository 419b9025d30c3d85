// Package launch implements launch control: creation with a feasibility check, crew
// allocation, and the timed state machine that carries a launch from the pad back to
// Earth.
//
// All mutations, including timer callbacks, run under one service-wide lock, so a
// launch is never observed half-updated and at most one timer is pending per launch.
package launch

import (
	"context"
	"log/slog"

	"github.com/rah-0/launchpad/internal/models"
	"github.com/rah-0/launchpad/internal/physics"
	"github.com/rah-0/launchpad/internal/scheduler"
	"github.com/rah-0/launchpad/internal/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Options configures a Service. Zero values fall back to the wall clock and a
// discarding logger.
type Options struct {
	Scheduler scheduler.Scheduler
	Logger    *slog.Logger
}

// Service exposes the launch operations.
type Service struct {
	mu       *storage.ContextMutex
	launches storage.LaunchRepository
	dir      storage.Directory
	sched    scheduler.Scheduler
	timers   *TimerRegistry
	machine  *StateMachine
	factory  *Factory
	crew     *Crew
	log      *slog.Logger
	metrics  *metrics
}

// NewService wires the launch components over a repository and a directory.
func NewService(launches storage.LaunchRepository, dir storage.Directory, opts Options) (*Service, error) {
	sched := opts.Scheduler
	if sched == nil {
		sched = scheduler.NewReal()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m, err := newMetrics()
	if err != nil {
		return nil, err
	}

	s := &Service{
		mu:       storage.NewContextMutex(),
		launches: launches,
		dir:      dir,
		sched:    sched,
		timers:   NewTimerRegistry(sched),
		log:      log,
		metrics:  m,
	}
	s.machine = &StateMachine{
		mu:       s.mu,
		launches: launches,
		dir:      dir,
		timers:   s.timers,
		now:      sched.Now,
		log:      log,
		metrics:  m,
	}
	s.factory = &Factory{launches: launches, dir: dir, now: sched.Now}
	s.crew = &Crew{launches: launches, dir: dir}
	return s, nil
}

// Timers exposes the registry of pending autonomous transitions.
func (s *Service) Timers() *TimerRegistry {
	return s.timers
}

// ResolveSession maps a session ID to its user.
func (s *Service) ResolveSession(ctx context.Context, sessionID string) (int, error) {
	return s.dir.ResolveSession(ctx, sessionID)
}

// CreateLaunch validates and stores a new launch, returning its ID.
func (s *Service) CreateLaunch(ctx context.Context, userID, missionID, vehicleID int, payload models.Payload, params models.CalculationParameters) (int, error) {
	if err := s.mu.Lock(ctx); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	launch, err := s.factory.Create(ctx, userID, missionID, vehicleID, payload, params)
	if err != nil {
		return 0, err
	}
	if err := s.launches.SaveLaunch(ctx, launch); err != nil {
		return 0, err
	}

	s.metrics.created.Add(ctx, 1, metric.WithAttributes(attribute.Int("vehicle", vehicleID)))
	s.log.Info("Launch created", "launch", launch.ID, "mission", missionID, "vehicle", vehicleID, "user", userID)
	return launch.ID, nil
}

// UpdateStatus applies a caller action to a launch.
func (s *Service) UpdateStatus(ctx context.Context, action models.Action, launchID int) error {
	return s.machine.Update(ctx, launchID, action)
}

// AllocateAstronaut adds an astronaut to a launch's crew.
func (s *Service) AllocateAstronaut(ctx context.Context, userID, astronautID, missionID, launchID int) error {
	if err := s.mu.Lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	launch, err := s.crew.Allocate(ctx, userID, astronautID, missionID, launchID)
	if err != nil {
		return err
	}
	if err := s.launches.SaveLaunch(ctx, launch); err != nil {
		return err
	}
	s.log.Info("Astronaut allocated", "launch", launchID, "astronaut", astronautID)
	return nil
}

// DeallocateAstronaut removes an astronaut from a launch's crew.
func (s *Service) DeallocateAstronaut(ctx context.Context, sessionID string, astronautID, missionID, launchID int) error {
	if err := s.mu.Lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	launch, err := s.crew.Deallocate(ctx, sessionID, astronautID, missionID, launchID)
	if err != nil {
		return err
	}
	if err := s.launches.SaveLaunch(ctx, launch); err != nil {
		return err
	}
	s.log.Info("Astronaut deallocated", "launch", launchID, "astronaut", astronautID)
	return nil
}

// Details returns the read-only projection of a launch.
func (s *Service) Details(ctx context.Context, launchID int) (*models.LaunchView, error) {
	if err := s.mu.Lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	launch, err := s.launches.GetLaunch(ctx, launchID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.dir.ResolveVehicle(ctx, launch.VehicleID, false)
	if err != nil {
		return nil, err
	}
	crew, err := resolveCrew(ctx, s.dir, launch.Astronauts)
	if err != nil {
		return nil, err
	}

	view := &models.LaunchView{
		ID:        launch.ID,
		Mission:   launch.Mission.Summary(),
		CreatedAt: launch.CreatedAt,
		State:     launch.State,
		Vehicle: models.VehicleSummary{
			ID:            vehicle.ID,
			Name:          vehicle.Name,
			RemainingFuel: launch.RemainingFuel,
		},
		Payload:    s.payloadSummary(launch.Payload),
		Astronauts: make([]models.AstronautSummary, 0, len(crew)),
		Params:     launch.Params,
	}
	for _, a := range crew {
		view.Astronauts = append(view.Astronauts, models.AstronautSummary{ID: a.ID, Designation: a.Designation()})
	}
	return view, nil
}

func (s *Service) payloadSummary(p models.Payload) models.PayloadSummary {
	summary := models.PayloadSummary{
		Description:     p.Description,
		Weight:          p.Weight,
		Deployed:        p.DeployedAt != nil,
		DeployedAt:      p.DeployedAt,
		OrbitalDistance: p.OrbitalDistance,
		OrbitalVelocity: p.OrbitalVelocity,
	}
	if p.DeployedAt != nil && p.OrbitalDistance != nil && p.OrbitalVelocity != nil {
		angle := physics.DeviationAngle(*p.OrbitalVelocity, *p.OrbitalDistance, *p.DeployedAt, s.sched.Now())
		summary.DeviationAngle = &angle
	}
	return summary
}

// List splits every known launch into active and completed IDs. userID identifies the
// caller but does not filter the result.
func (s *Service) List(ctx context.Context, userID int, opts storage.SortOptions) (*models.LaunchList, error) {
	if err := s.mu.Lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	launches, err := s.launches.ListLaunches(ctx, opts)
	if err != nil {
		return nil, err
	}

	list := &models.LaunchList{Active: []int{}, Completed: []int{}}
	for _, l := range launches {
		if l.State.Active() {
			list.Active = append(list.Active, l.ID)
		} else {
			list.Completed = append(list.Completed, l.ID)
		}
	}
	s.log.Debug("Listed launches", "user", userID, "active", len(list.Active), "completed", len(list.Completed))
	return list, nil
}

// Reset cancels every pending timer and removes every launch.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.mu.Lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.timers.Reset()
	if err := s.launches.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("Launch control reset")
	return nil
}
