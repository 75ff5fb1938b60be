// Package orbit places every body of a registry from elapsed session time.
//
// Orbits are closed-form curves, not integrated trajectories. Primaries follow
// an ellipse centred on the star, moons follow a circle around their parent,
// rings ride along with their planet and asteroids circle the star at a rate
// that depends on their height.
package orbit

import (
	"math"

	"orrery-server/internal/body"

	"cogentcore.org/core/math32"
)

const (
	// PeriodBucket splits primaries into fast and slow orbits. Slow orbits use
	// a smaller divisor so outer planets still move visibly within a session.
	PeriodBucket = 15
	// InnerDivisor scales periods below PeriodBucket
	InnerDivisor = 100
	// OuterDivisor scales periods at or above PeriodBucket
	OuterDivisor = 20
	// SecondaryDivisor scales every moon period
	SecondaryDivisor = 500

	AsteroidBaseRate   = 0.01
	AsteroidHeightRate = 0.01
)

// TimeScale is the divisor applied to a primary's period
func TimeScale(period float64) float64 {
	if period < PeriodBucket {
		return InnerDivisor
	}
	return OuterDivisor
}

func PrimaryAngle(o body.PrimaryOrbit, elapsed, speed float64) float64 {
	return o.StartAngle + elapsed/(o.Period*TimeScale(o.Period))*speed
}

// SemiMinorAxis is b = a·sqrt(1 - e²)
func SemiMinorAxis(semiMajorAxis, eccentricity float64) float64 {
	return semiMajorAxis * math.Sqrt(1-eccentricity*eccentricity)
}

// PrimaryPosition places a primary on its ellipse. The ellipse is centred on
// the star rather than on a focus.
func PrimaryPosition(o body.PrimaryOrbit, elapsed, speed float64) math32.Vector3 {
	angle := PrimaryAngle(o, elapsed, speed)
	return math32.Vec3(
		float32(math.Cos(angle)*o.SemiMajorAxis),
		0,
		float32(math.Sin(angle)*SemiMinorAxis(o.SemiMajorAxis, o.Eccentricity)),
	)
}

// SecondaryAngle has no start offset: moons with equal periods share a phase
func SecondaryAngle(o body.SecondaryOrbit, elapsed, speed float64) float64 {
	return elapsed / (o.Period * SecondaryDivisor) * speed
}

// SecondaryRadius keeps a moon clear of its parent's visual radius
func SecondaryRadius(parentRadius float32, o body.SecondaryOrbit) float64 {
	return float64(parentRadius)*2 + o.Distance
}

// SecondaryPosition is relative to the parent
func SecondaryPosition(o body.SecondaryOrbit, parentRadius float32, elapsed, speed float64) math32.Vector3 {
	angle := SecondaryAngle(o, elapsed, speed)
	radius := SecondaryRadius(parentRadius, o)
	return math32.Vec3(float32(math.Cos(angle)*radius), 0, float32(math.Sin(angle)*radius))
}

func AsteroidAngle(o body.AsteroidOrbit, height, elapsed, speed float64) float64 {
	return o.StartAngle + elapsed*(AsteroidBaseRate+height*AsteroidHeightRate)*speed
}

// AsteroidPosition moves an asteroid along its circle and returns its new
// position. The radius is read back from the float64 x/z held in o, which is
// updated in place; height never changes.
func AsteroidPosition(o *body.AsteroidOrbit, height float32, elapsed, speed float64) math32.Vector3 {
	angle := AsteroidAngle(*o, float64(height), elapsed, speed)
	radius := math.Hypot(o.X, o.Z)
	o.X = math.Cos(angle) * radius
	o.Z = math.Sin(angle) * radius
	return math32.Vec3(float32(o.X), height, float32(o.Z))
}

// AdvanceOrbits writes the position of every orbiting body in reg. Primaries
// go first so rings and moons read their parent's current position.
func AdvanceOrbits(reg *body.Registry, elapsed, speed float64) {
	for _, p := range reg.Primaries {
		p.Position = PrimaryPosition(*p.Primary, elapsed, speed)
	}

	for _, r := range reg.Rings {
		r.Position = r.Parent.Position
	}

	for _, m := range reg.Secondaries {
		m.Position = SecondaryPosition(*m.Secondary, m.Parent.Radius, elapsed, speed)
	}

	for _, a := range reg.Asteroids {
		a.Position = AsteroidPosition(a.Asteroid, a.Position.Y, elapsed, speed)
	}
}
