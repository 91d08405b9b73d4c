// Package shroud decodes shroud zone definitions from the server property
// store and answers containment queries against them.
//
// A shroud zone is a circle anchored at a landblock position. A player who
// comes within Radius of the anchor is inside the zone; a player who drifts
// further than MaxDistance is ejected.
package shroud

import (
	"fmt"
	"math"
)

// LandblockSize is the edge length of one outdoor landblock in world units.
const LandblockSize = 192.0

// Vector3 is a point in landblock-local coordinates.
type Vector3 struct {
	X, Y, Z float64
}

// Quaternion is an orientation stored as given; it is never normalized.
type Quaternion struct {
	X, Y, Z, W float64
}

// Position is a landblock cell, a local point in that cell and an orientation.
// Value type, immutable.
type Position struct {
	CellID      uint32
	Coords      Vector3
	Orientation Quaternion
}

// RegionID returns the landblock part of the cell id (high 16 bits).
func (p Position) RegionID() uint16 {
	return uint16(p.CellID >> 16)
}

// Global returns the position in world coordinates.
// X and Y are offset by the landblock grid origin, Z is unchanged.
func (p Position) Global() Vector3 {
	lbX := float64(p.CellID >> 24)
	lbY := float64((p.CellID >> 16) & 0xFF)
	return Vector3{
		X: lbX*LandblockSize + p.Coords.X,
		Y: lbY*LandblockSize + p.Coords.Y,
		Z: p.Coords.Z,
	}
}

// DistanceSquared returns the squared world distance to other (без sqrt).
func (p Position) DistanceSquared(other Position) float64 {
	a, b := p.Global(), other.Global()
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx + dy*dy + dz*dz
}

func (p Position) String() string {
	return fmt.Sprintf("0x%08X [%f %f %f] %f %f %f %f",
		p.CellID,
		p.Coords.X, p.Coords.Y, p.Coords.Z,
		p.Orientation.X, p.Orientation.Y, p.Orientation.Z, p.Orientation.W,
	)
}

// Zone is one decoded shroud zone. Immutable after NewZone.
type Zone struct {
	center        Position
	radius        float64
	radiusSquared float64
	maxDistance   float64
}

// NewZone builds a Zone. radius and maxDistance must be finite and > 0.
func NewZone(center Position, radius, maxDistance float64) (Zone, error) {
	if !isPositiveFinite(radius) {
		return Zone{}, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	if !isPositiveFinite(maxDistance) {
		return Zone{}, fmt.Errorf("%w: %v", ErrInvalidMaxDistance, maxDistance)
	}
	return Zone{
		center:        center,
		radius:        radius,
		radiusSquared: radius * radius,
		maxDistance:   maxDistance,
	}, nil
}

// Center returns the zone anchor.
func (z Zone) Center() Position { return z.center }

// Radius returns the trigger distance.
func (z Zone) Radius() float64 { return z.radius }

// RadiusSquared returns Radius()*Radius(), computed once at construction.
func (z Zone) RadiusSquared() float64 { return z.radiusSquared }

// MaxDistance returns the ejection distance.
func (z Zone) MaxDistance() float64 { return z.maxDistance }

// RegionID returns the landblock of the zone anchor.
func (z Zone) RegionID() uint16 { return z.center.RegionID() }

// Contains reports whether p is within the trigger radius.
func (z Zone) Contains(p Position) bool {
	return z.center.DistanceSquared(p) <= z.radiusSquared
}

// ShouldEject reports whether p has drifted beyond the ejection distance.
func (z Zone) ShouldEject(p Position) bool {
	return z.center.DistanceSquared(p) > z.maxDistance*z.maxDistance
}

func (z Zone) String() string {
	return fmt.Sprintf("%s|%g|%g", z.center, z.radius, z.maxDistance)
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
