package pick

import (
	"orrery-server/internal/body"

	"cogentcore.org/core/math32"
)

// Scales are the user controlled size multipliers applied to the meshes
type Scales struct {
	Sun    float32
	Planet float32
}

// Hit is a body under the pointer and the distance along the ray to it
type Hit struct {
	Body     *body.Body
	Point    math32.Vector3
	Distance float32
}

// Picker hit-tests a ray against the pickable bodies of a registry:
// the star, the primaries, the moons and the rings. Asteroids are skipped.
type Picker struct {
	reg *body.Registry
}

func NewPicker(reg *body.Registry) *Picker {
	return &Picker{reg: reg}
}

// Pick returns the nearest body hit by ray
func (p *Picker) Pick(ray math32.Ray, scales Scales) (Hit, bool) {
	return p.PickWithin(ray, scales, 0, math32.Inf(1))
}

// PickWithin is Pick restricted to hits between near and far along the ray,
// the same range the camera draws.
func (p *Picker) PickWithin(ray math32.Ray, scales Scales, near, far float32) (Hit, bool) {
	var best Hit
	found := false

	consider := func(b *body.Body, point math32.Vector3) {
		dist := point.Sub(ray.Origin).Length()
		if point.Sub(ray.Origin).Dot(ray.Dir) < 0 || dist < near || dist > far {
			return
		}
		if !found || dist < best.Distance {
			best = Hit{Body: b, Point: point, Distance: dist}
			found = true
		}
	}

	for _, b := range p.reg.Celestial() {
		if b.Kind == body.KindRing {
			if point, ok := intersectRing(ray, b); ok {
				consider(b, point)
			}
			continue
		}

		sphere := math32.Sphere{Center: b.WorldPosition(), Radius: b.Radius * scaleFor(b.Kind, scales)}
		if point, ok := ray.IntersectSphere(sphere); ok {
			consider(b, point)
		}
	}

	return best, found
}

// scaleFor leaves moons and rings at unit scale: they are not children of their
// planet, so PlanetScale does not reach them.
func scaleFor(kind body.Kind, scales Scales) float32 {
	switch {
	case kind == body.KindStar:
		return scales.Sun
	case kind.IsPrimary():
		return scales.Planet
	default:
		return 1
	}
}

// intersectRing tests the flat annulus of a ring. The ring geometry lies in
// its local XY plane and is tilted about X by its rotation.
func intersectRing(ray math32.Ray, ring *body.Body) (math32.Vector3, bool) {
	center := ring.WorldPosition()
	normal := math32.Vec3(0, -math32.Sin(ring.Rotation.X), math32.Cos(ring.Rotation.X))

	var plane math32.Plane
	plane.SetFromNormalAndCoplanarPoint(normal, center)

	point, ok := ray.IntersectPlane(plane)
	if !ok {
		return point, false
	}

	r := point.Sub(center).Length()
	if r < ring.InnerRadius || r > ring.Radius {
		return point, false
	}
	return point, true
}
