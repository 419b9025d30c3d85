package models

import (
	"fmt"
	"time"

	"github.com/brunoga/deep"
)

// Mission is a campaign definition owned by a user. Launches keep a snapshot of it.
type Mission struct {
	ID          int       `json:"missionId" yaml:"id"`
	OwnerID     int       `json:"ownerId" yaml:"ownerId"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Target      string    `json:"target" yaml:"target"`
	Archived    bool      `json:"archived" yaml:"archived"` // Archived missions cannot launch
	Astronauts  []int     `json:"assignedAstronauts" yaml:"astronauts"` // Astronaut IDs assigned to the mission
	CreatedAt   time.Time `json:"timeCreated" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"timeLastEdited" yaml:"updatedAt"`
}

// Clone returns a structural copy of the mission that shares no memory with the original.
func (m Mission) Clone() Mission {
	return deep.MustCopy(m)
}

// MissionSummary is the mission snapshot as shown to callers, without ownership fields.
type MissionSummary struct {
	ID          int    `json:"missionId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Target      string `json:"target"`
	Astronauts  []int  `json:"assignedAstronauts"`
}

// Summary strips ownership data from the mission.
func (m Mission) Summary() MissionSummary {
	astronauts := make([]int, len(m.Astronauts))
	copy(astronauts, m.Astronauts)
	return MissionSummary{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Target:      m.Target,
		Astronauts:  astronauts,
	}
}

// Astronaut is a crew member that can be assigned to a mission and allocated to launches.
type Astronaut struct {
	ID        int     `json:"astronautId" yaml:"id"`
	NameFirst string  `json:"nameFirst" yaml:"nameFirst"`
	NameLast  string  `json:"nameLast" yaml:"nameLast"`
	Rank      string  `json:"rank" yaml:"rank"`
	Weight    float64 `json:"weight" yaml:"weight"`                       // kg
	MissionID *int    `json:"assignedMission,omitempty" yaml:"missionId"` // nil when unassigned
}

// Designation is the display name of the astronaut.
func (a Astronaut) Designation() string {
	return fmt.Sprintf("%s %s %s", a.Rank, a.NameFirst, a.NameLast)
}

// AssignedTo reports whether the astronaut is assigned to the mission.
func (a Astronaut) AssignedTo(missionID int) bool {
	return a.MissionID != nil && *a.MissionID == missionID
}

// LaunchVehicle is a reusable resource that launches reference by ID.
type LaunchVehicle struct {
	ID               int     `json:"launchVehicleId" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	Description      string  `json:"description" yaml:"description"`
	MaxCrewWeight    float64 `json:"maxCrewWeight" yaml:"maxCrewWeight"`
	MaxPayloadWeight float64 `json:"maxPayloadWeight" yaml:"maxPayloadWeight"`
	DryWeight        float64 `json:"launchVehicleWeight" yaml:"dryWeight"`
	ThrustCapacity   float64 `json:"thrustCapacity" yaml:"thrustCapacity"` // N
	StartingFuel     float64 `json:"startingManeuveringFuel" yaml:"startingFuel"`
	Retired          bool    `json:"retired" yaml:"retired"`
}

// User owns missions. Only the ID matters to launch control.
type User struct {
	ID       int    `json:"userId" yaml:"id"`
	Email    string `json:"email" yaml:"email"`
	NameFull string `json:"name" yaml:"name"`
}

// Session links an opaque session token to a user.
type Session struct {
	ID     string `json:"sessionId" yaml:"id"`
	UserID int    `json:"userId" yaml:"userId"`
}
