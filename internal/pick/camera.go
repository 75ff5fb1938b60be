// Package pick turns a pointer position into the body under it.
package pick

import (
	"cogentcore.org/core/math32"
)

// Camera is a perspective camera. FOV is the vertical field of view in degrees.
type Camera struct {
	Position math32.Vector3
	Target   math32.Vector3
	Up       math32.Vector3
	FOV      float32
	Aspect   float32
	Near     float32
	Far      float32
}

// DefaultCamera sits slightly above the ecliptic looking at the star
func DefaultCamera() Camera {
	return Camera{
		Position: math32.Vec3(0, 1.25, 14),
		Target:   math32.Vec3(0, 1.25, 0),
		Up:       math32.Vec3(0, 1, 0),
		FOV:      75,
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      1000,
	}
}

// WithViewport returns a copy of c with the aspect ratio of v. A degenerate
// viewport leaves the aspect unchanged.
func (c Camera) WithViewport(v Viewport) Camera {
	if v.Valid() {
		c.Aspect = float32(v.Width) / float32(v.Height)
	}
	return c
}

// Ray returns the world-space ray through ndc, with x and y in [-1, 1]
func (c Camera) Ray(ndc math32.Vector2) math32.Ray {
	forward := c.Target.Sub(c.Position).Normal()
	right := forward.Cross(c.Up).Normal()
	up := right.Cross(forward)

	halfHeight := math32.Tan(math32.DegToRad(c.FOV) / 2)
	halfWidth := halfHeight * c.Aspect

	dir := forward.
		Add(right.MulScalar(ndc.X * halfWidth)).
		Add(up.MulScalar(ndc.Y * halfHeight)).
		Normal()

	return math32.Ray{Origin: c.Position, Dir: dir}
}

// Viewport is the size of the drawing surface in CSS pixels
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Pointer is the last known pointer position in client coordinates. Seen is
// false until the first pointer event arrives.
type Pointer struct {
	ClientX float32 `json:"clientX"`
	ClientY float32 `json:"clientY"`
	Seen    bool    `json:"-"`
}

// NDC maps the pointer into normalized device coordinates, y up
func (p Pointer) NDC(v Viewport) math32.Vector2 {
	return math32.Vec2(
		p.ClientX/float32(v.Width)*2-1,
		-(p.ClientY/float32(v.Height))*2+1,
	)
}
