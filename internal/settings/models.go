package settings

import (
	"math"

	"orrery-server/internal/shared/errors"
)

const (
	MinSpeed = 0
	MaxSpeed = 10
	MinScale = 0.1
	MaxScale = 3.0
)

// Settings are the user controlled globals read by every frame
type Settings struct {
	Speed       float64 `json:"speed"`
	SunScale    float64 `json:"sun_scale"`
	PlanetScale float64 `json:"planet_scale"`
}

func Defaults() Settings {
	return Settings{Speed: 1, SunScale: 1, PlanetScale: 1}
}

// Patch is a partial update; nil fields are left unchanged
type Patch struct {
	Speed       *float64 `json:"speed,omitempty"`
	SunScale    *float64 `json:"sun_scale,omitempty"`
	PlanetScale *float64 `json:"planet_scale,omitempty"`
}

// Apply returns s with every non-nil field of p
func (p Patch) Apply(s Settings) Settings {
	if p.Speed != nil {
		s.Speed = *p.Speed
	}
	if p.SunScale != nil {
		s.SunScale = *p.SunScale
	}
	if p.PlanetScale != nil {
		s.PlanetScale = *p.PlanetScale
	}
	return s
}

func (p Patch) Empty() bool {
	return p.Speed == nil && p.SunScale == nil && p.PlanetScale == nil
}

// Validate rejects values outside the control ranges. A negative speed would
// run every orbit and spin backwards.
func (s Settings) Validate() error {
	if math.IsNaN(s.Speed) || s.Speed < MinSpeed || s.Speed > MaxSpeed {
		return errors.Validationf("speed must be between %d and %d, got %g", MinSpeed, MaxSpeed, s.Speed)
	}
	if !inScaleRange(s.SunScale) {
		return errors.Validationf("sun scale must be between %g and %g, got %g", MinScale, MaxScale, s.SunScale)
	}
	if !inScaleRange(s.PlanetScale) {
		return errors.Validationf("planet scale must be between %g and %g, got %g", MinScale, MaxScale, s.PlanetScale)
	}
	return nil
}

func inScaleRange(v float64) bool {
	return v >= MinScale && v <= MaxScale
}
