package core

import (
	"errors"
	"fmt"
)

// ErrUnknownGeometry indicates a geometry tag outside the closed set
// {sphere, lvg, slab}. Geometry is checked when a RunDef is built, never
// inside the iteration loop.
var ErrUnknownGeometry = errors.New("core: unknown geometry")

// Geometry selects the escape-probability formula for the cloud shape.
type Geometry int

const (
	// Sphere is a static, uniform sphere (Osterbrock approximation).
	Sphere Geometry = iota
	// LVG is an expanding sphere in the large-velocity-gradient (Sobolev)
	// approximation.
	LVG
	// Slab is a plane-parallel slab, appropriate for shocks.
	Slab
)

// ParseGeometry maps a textual tag to a Geometry. Accepted tags are
// "sphere", "lvg" and "slab"; anything else yields ErrUnknownGeometry.
func ParseGeometry(tag string) (Geometry, error) {
	switch tag {
	case "sphere":
		return Sphere, nil
	case "lvg":
		return LVG, nil
	case "slab":
		return Slab, nil
	default:
		return 0, fmt.Errorf("%q: %w", tag, ErrUnknownGeometry)
	}
}

// Valid reports whether g is one of the three defined geometries.
func (g Geometry) Valid() bool { return g == Sphere || g == LVG || g == Slab }

// String returns the canonical tag of the geometry.
func (g Geometry) String() string {
	switch g {
	case Sphere:
		return "sphere"
	case LVG:
		return "lvg"
	case Slab:
		return "slab"
	default:
		return fmt.Sprintf("geometry(%d)", int(g))
	}
}
