package body

import (
	"cogentcore.org/core/math32"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

type Kind string

const (
	KindStar        Kind = "star"
	KindPlanet      Kind = "planet"
	KindDwarfPlanet Kind = "dwarf_planet"
	KindMoon        Kind = "moon"
	KindRing        Kind = "ring"
	KindAsteroid    Kind = "asteroid"
)

// IsPrimary reports whether bodies of this kind orbit the star directly
func (k Kind) IsPrimary() bool {
	return k == KindPlanet || k == KindDwarfPlanet
}

// Definition is the static, storable description of one catalog entry
type Definition struct {
	Name          string  `json:"name"`
	Kind          Kind    `json:"kind"`
	ParentName    string  `json:"parent_name,omitempty"`
	Radius        float64 `json:"radius"`
	InnerRadius   float64 `json:"inner_radius,omitempty"`
	Color         string  `json:"color"`
	Texture       string  `json:"texture,omitempty"`
	SpinRate      float64 `json:"spin_rate,omitempty"`
	AxialTilt     float64 `json:"axial_tilt,omitempty"`
	Period        float64 `json:"period,omitempty"`
	SemiMajorAxis float64 `json:"semi_major_axis,omitempty"`
	Eccentricity  float64 `json:"eccentricity,omitempty"`
	Distance      float64 `json:"distance,omitempty"`
}

// PrimaryOrbit parameterizes a planet or dwarf planet around the star
type PrimaryOrbit struct {
	Period        float64
	SemiMajorAxis float64
	Eccentricity  float64
	StartAngle    float64
}

// SecondaryOrbit parameterizes a moon around its parent. Its phase comes from
// elapsed time alone, so equal periods stay in phase.
type SecondaryOrbit struct {
	Period   float64
	Distance float64
}

// AsteroidOrbit keeps the angular start of an asteroid; its height is its Y
// coordinate and its radius is read back from X and Z. X and Z carry the
// running position in float64; Body.Position is only a float32 copy of it.
type AsteroidOrbit struct {
	StartAngle float64
	X, Z       float64
}

// Body is a runtime entity of the scene. Only Position, Rotation, Spin and the
// asteroid orbit state change after the registry is built.
type Body struct {
	ID          uuid.UUID
	Name        string
	Kind        Kind
	Parent      *Body
	Radius      float32
	InnerRadius float32
	Color       colorful.Color
	Texture     string

	// SpinRate is the axial rotation per nominal frame unit; zero means the
	// body has no spin configured and is never rotated.
	SpinRate float32

	// Position is parent-relative for moons and world-space for everything else
	Position math32.Vector3
	Rotation math32.Vector3

	// Spin is the running Y rotation in float64, kept within [-π, π].
	// Rotation.Y is its float32 copy.
	Spin float64

	Primary   *PrimaryOrbit
	Secondary *SecondaryOrbit
	Asteroid  *AsteroidOrbit
}

// Spins reports whether a spin rate is configured
func (b *Body) Spins() bool {
	return b.SpinRate != 0
}

// WorldPosition resolves the position in scene coordinates
func (b *Body) WorldPosition() math32.Vector3 {
	if b.Kind == KindMoon && b.Parent != nil {
		return b.Parent.WorldPosition().Add(b.Position)
	}
	return b.Position
}

// State is the per-frame snapshot of a body
type State struct {
	ID       uuid.UUID `json:"id"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
}

func (b *Body) State() State {
	p := b.WorldPosition()
	return State{
		ID:       b.ID,
		Position: [3]float32{p.X, p.Y, p.Z},
		Rotation: [3]float32{b.Rotation.X, b.Rotation.Y, b.Rotation.Z},
	}
}

// BeltConfig describes the procedurally sampled asteroid belt
type BeltConfig struct {
	Count       int
	InnerRadius float64
	Width       float64
	MaxHeight   float64
	MinScale    float64
	ScaleRange  float64
	MaxTilt     float64
}

// DefaultBelt is the 1000-piece belt between Mars and Jupiter
func DefaultBelt() BeltConfig {
	return BeltConfig{
		Count:       1000,
		InnerRadius: 9.75,
		Width:       3,
		MaxHeight:   0.4,
		MinScale:    0.01,
		ScaleRange:  0.015,
		MaxTilt:     0.4,
	}
}
