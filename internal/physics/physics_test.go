package physics

import (
	"math"
	"testing"
	"time"

	"github.com/rah-0/launchpad/internal/models"
)

func scenarioVehicle() models.LaunchVehicle {
	return models.LaunchVehicle{
		ID:             1,
		Name:           "Saturn",
		DryWeight:      54905,
		ThrustCapacity: 7607000,
	}
}

func scenarioParams() models.CalculationParameters {
	return models.CalculationParameters{
		TargetDistance:     10000,
		ThrustFuel:         1000,
		FuelBurnRate:       20,
		ActiveGravityForce: 9.8,
		ManeuveringDelay:   2,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestFeasibilityReachable(t *testing.T) {
	r := Feasibility(scenarioParams(), scenarioVehicle(), nil, 400)

	if r.BurnTime != 50 {
		t.Errorf("Expected burn time 50, got %f", r.BurnTime)
	}
	if r.TotalMass != 55305 {
		t.Errorf("Expected total mass 55305, got %f", r.TotalMass)
	}
	wantForce := 7607000 - 9.8*55305
	if !almostEqual(r.NetForce, wantForce) {
		t.Errorf("Expected net force %f, got %f", wantForce, r.NetForce)
	}
	wantAccel := wantForce / 55305
	if !almostEqual(r.Acceleration, wantAccel) {
		t.Errorf("Expected acceleration %f, got %f", wantAccel, r.Acceleration)
	}
	if !almostEqual(r.MaxReachableDistance, 0.5*wantAccel*2500) {
		t.Errorf("Unexpected reachable distance %f", r.MaxReachableDistance)
	}
	if !r.CanReachTarget {
		t.Errorf("Expected target to be reachable")
	}
}

func TestFeasibilityCountsCrew(t *testing.T) {
	crew := []models.Astronaut{{ID: 1, Weight: 80}, {ID: 2, Weight: 75.5}}
	r := Feasibility(scenarioParams(), scenarioVehicle(), crew, 400)

	if r.CrewWeight != 155.5 {
		t.Errorf("Expected crew weight 155.5, got %f", r.CrewWeight)
	}
	if r.TotalMass != 54905+155.5+400 {
		t.Errorf("Unexpected total mass %f", r.TotalMass)
	}
}

func TestFeasibilityHeavyGravity(t *testing.T) {
	params := scenarioParams()
	params.ActiveGravityForce = 100000

	r := Feasibility(params, scenarioVehicle(), nil, 400)

	if r.Acceleration >= 0 {
		t.Errorf("Expected negative acceleration, got %f", r.Acceleration)
	}
	if r.CanReachTarget {
		t.Errorf("Expected target to be unreachable")
	}
}

func TestFeasibilityBoundary(t *testing.T) {
	params := scenarioParams()
	r := Feasibility(params, scenarioVehicle(), nil, 400)

	// Target exactly at the reachable distance is still reachable
	params.TargetDistance = r.MaxReachableDistance
	if !Feasibility(params, scenarioVehicle(), nil, 400).CanReachTarget {
		t.Errorf("Expected boundary distance to be reachable")
	}

	params.TargetDistance = math.Nextafter(r.MaxReachableDistance, math.Inf(1))
	if Feasibility(params, scenarioVehicle(), nil, 400).CanReachTarget {
		t.Errorf("Expected distance just past the boundary to be unreachable")
	}
}

func TestFeasibilityDeterministic(t *testing.T) {
	crew := []models.Astronaut{{ID: 3, Weight: 90}}
	first := Feasibility(scenarioParams(), scenarioVehicle(), crew, 120)

	for i := 0; i < 100; i++ {
		if got := Feasibility(scenarioParams(), scenarioVehicle(), crew, 120); got != first {
			t.Fatalf("Feasibility changed between calls: %+v vs %+v", first, got)
		}
	}
}

func TestOrbitalHelpers(t *testing.T) {
	if d := OrbitalDistance(10000); d != 6388000 {
		t.Errorf("Expected orbital distance 6388000, got %f", d)
	}
	if v := OrbitalVelocity(2, 10000); !almostEqual(v, 200) {
		t.Errorf("Expected orbital velocity 200, got %f", v)
	}
}

func TestDeviationAngle(t *testing.T) {
	deployed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if a := DeviationAngle(500, 6388000, deployed, deployed); a != 0 {
		t.Errorf("Expected zero angle at deployment, got %f", a)
	}

	a := DeviationAngle(500, 6388000, deployed, deployed.Add(10*time.Second))
	if !almostEqual(a, 5000.0/6388000) {
		t.Errorf("Unexpected deviation angle %f", a)
	}
}
