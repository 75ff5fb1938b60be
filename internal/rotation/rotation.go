// Package rotation spins bodies about their own Y axis.
package rotation

import (
	"math"

	"orrery-server/internal/body"
)

// NominalFrameDelta is the fixed time unit of one spin step. Spin advances by
// frame, not by wall-clock time, so a slower frame rate spins more slowly.
const NominalFrameDelta = 0.016

// AdvanceRotations adds SpinRate·speed·frameDelta to the Y rotation of every
// body that has a spin rate configured. Bodies without one are left as they are.
//
// The angle is accumulated in float64 and wrapped into [-π, π], so the step
// stays far above float32 precision however long the session runs.
func AdvanceRotations(bodies []*body.Body, speed, frameDelta float64) {
	for _, b := range bodies {
		if !b.Spins() {
			continue
		}
		b.Spin = math.Remainder(b.Spin+float64(b.SpinRate)*speed*frameDelta, 2*math.Pi)
		b.Rotation.Y = float32(b.Spin)
	}
}

// Spinning lists the bodies of reg that take part in rotation
func Spinning(reg *body.Registry) []*body.Body {
	out := make([]*body.Body, 0, 1+len(reg.Primaries)+len(reg.Secondaries))
	for _, b := range reg.Celestial() {
		if b.Spins() {
			out = append(out, b)
		}
	}
	return out
}
