// Package simulation drives the per-frame update of the scene: orbits, spins,
// the pointer hit-test and handing the result to a renderer.
package simulation

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"orrery-server/internal/body"
	"orrery-server/internal/orbit"
	"orrery-server/internal/pick"
	"orrery-server/internal/rotation"
	"orrery-server/internal/settings"

	"github.com/google/uuid"
)

// FrameContext is everything a frame reads besides the bodies themselves
type FrameContext struct {
	Settings settings.Settings
	Pointer  pick.Pointer
	Viewport pick.Viewport
	Camera   pick.Camera
}

// Frame is the snapshot produced by one update
type Frame struct {
	Number           uint64            `json:"frame"`
	Elapsed          float64           `json:"elapsed"`
	Settings         settings.Settings `json:"settings"`
	Tooltip          pick.Tooltip      `json:"tooltip"`
	Picked           *uuid.UUID        `json:"picked,omitempty"`
	EnvironmentReady bool              `json:"environment_ready"`
	Bodies           []body.State      `json:"bodies"`
	Asteroids        []float32         `json:"asteroids"`
}

// Renderer draws or ships a finished frame. It is called from the frame loop
// and must not block.
type Renderer interface {
	Render(ctx context.Context, frame *Frame)
}

// ReadyChecker reports whether an asset has replaced its placeholder
type ReadyChecker interface {
	Loaded() bool
}

type Engine struct {
	reg         *body.Registry
	picker      *pick.Picker
	spinning    []*body.Body
	renderer    Renderer
	environment ReadyChecker
	logger      *slog.Logger

	start   time.Time
	elapsed float64
	frames  atomic.Uint64
	latest  atomic.Pointer[Frame]
}

// NewEngine wires the update for reg. renderer and environment may be nil.
func NewEngine(reg *body.Registry, renderer Renderer, environment ReadyChecker, logger *slog.Logger) *Engine {
	return &Engine{
		reg:         reg,
		picker:      pick.NewPicker(reg),
		spinning:    rotation.Spinning(reg),
		renderer:    renderer,
		environment: environment,
		logger:      logger.With("component", "simulation_engine"),
	}
}

// Advance runs one frame at wall-clock time now. The first call starts the
// session clock. Elapsed time never decreases, even if now does.
func (e *Engine) Advance(ctx context.Context, now time.Time, fc FrameContext) *Frame {
	if e.start.IsZero() {
		e.start = now
	}
	if elapsed := now.Sub(e.start).Seconds(); elapsed > e.elapsed {
		e.elapsed = elapsed
	}
	number := e.frames.Add(1)

	speed := fc.Settings.Speed
	orbit.AdvanceOrbits(e.reg, e.elapsed, speed)
	rotation.AdvanceRotations(e.spinning, speed, rotation.NominalFrameDelta)

	scales := pick.Scales{Sun: float32(fc.Settings.SunScale), Planet: float32(fc.Settings.PlanetScale)}
	hit, tooltip := e.picker.Resolve(fc.Pointer, fc.Viewport, fc.Camera, scales)

	frame := &Frame{
		Number:    number,
		Elapsed:   e.elapsed,
		Settings:  fc.Settings,
		Tooltip:   tooltip,
		Bodies:    e.reg.States(),
		Asteroids: e.reg.AsteroidPositions(),
	}
	if hit.Body != nil {
		id := hit.Body.ID
		frame.Picked = &id
	}
	if e.environment != nil {
		frame.EnvironmentReady = e.environment.Loaded()
	}

	e.latest.Store(frame)

	if e.renderer != nil {
		e.renderer.Render(ctx, frame)
	}
	return frame
}

// FrameCount is the number of frames advanced so far
func (e *Engine) FrameCount() uint64 {
	return e.frames.Load()
}

// Latest returns the most recent frame, or nil before the first one
func (e *Engine) Latest() *Frame {
	return e.latest.Load()
}

func (e *Engine) Registry() *body.Registry {
	return e.reg
}
