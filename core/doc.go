// Package core defines the molecular data model and run definition shared by
// every gadex subpackage.
//
// The core package provides:
//
//   - Molecule, Level, Transition and CollisionPartner — the immutable
//     energy-level structure, radiative rates and collisional rate tables of
//     a molecule, normally produced by the molfile reader.
//   - Geometry — a closed enumeration of the supported cloud geometries
//     (Sphere, LVG, Slab), parsed and validated once at construction time.
//   - RunDef — the physical conditions of a single run: collision partner
//     and its density, kinetic and background temperatures, column density,
//     line width, frequency window and geometry.
//   - Physical constants in cgs units and the solver's numerical floors.
//
// A Molecule is validated once with Validate and never mutated afterwards,
// so it may be shared freely between concurrent solves.
package core
