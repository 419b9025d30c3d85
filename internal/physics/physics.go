// Package physics holds the constant-acceleration model used to decide whether a
// vehicle can plausibly reach its target distance. All functions are pure.
package physics

import (
	"math"
	"time"

	"github.com/rah-0/launchpad/internal/models"
)

// EarthRadiusMeters is added to the target distance to get the orbital radius.
const EarthRadiusMeters = 6378000.0

// Result is the outcome of a feasibility check.
type Result struct {
	BurnTime             float64 `json:"burnTime"`     // s
	CrewWeight           float64 `json:"crewWeight"`   // kg
	TotalMass            float64 `json:"totalMass"`    // kg
	NetForce             float64 `json:"netForce"`     // N
	Acceleration         float64 `json:"acceleration"` // m/s^2, negative when gravity wins
	MaxReachableDistance float64 `json:"maxReachableDistance"`
	CanReachTarget       bool    `json:"canReachTarget"`
}

// Feasibility runs the admission check for a vehicle carrying crew and payload.
func Feasibility(params models.CalculationParameters, vehicle models.LaunchVehicle, crew []models.Astronaut, payloadWeight float64) Result {
	var r Result
	r.BurnTime = params.ThrustFuel / params.FuelBurnRate
	for _, a := range crew {
		r.CrewWeight += a.Weight
	}
	r.TotalMass = vehicle.DryWeight + r.CrewWeight + payloadWeight
	r.NetForce = vehicle.ThrustCapacity - params.ActiveGravityForce*r.TotalMass
	r.Acceleration = r.NetForce / r.TotalMass
	r.MaxReachableDistance = 0.5 * r.Acceleration * r.BurnTime * r.BurnTime
	r.CanReachTarget = r.MaxReachableDistance >= params.TargetDistance
	return r
}

// OrbitalDistance is the distance of the payload from the Earth's centre.
func OrbitalDistance(targetDistance float64) float64 {
	return targetDistance + EarthRadiusMeters
}

// OrbitalVelocity is the speed reached after accelerating over the target distance.
func OrbitalVelocity(acceleration, targetDistance float64) float64 {
	return math.Sqrt(2 * acceleration * targetDistance)
}

// DeviationAngle is the angle in radians a deployed payload has drifted through by now.
func DeviationAngle(velocity, orbitalDistance float64, deployedAt, now time.Time) float64 {
	return velocity * now.Sub(deployedAt).Seconds() / orbitalDistance
}
