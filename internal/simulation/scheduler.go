package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orrery-server/internal/pick"
	"orrery-server/internal/settings"

	"golang.org/x/time/rate"
)

// logEvery is the number of frames between two progress log lines
const logEvery = 600

// SettingsSource supplies the settings for a frame
type SettingsSource interface {
	Current() settings.Settings
}

// Scheduler calls the engine once per frame slot. There is no pause: setting
// the speed to zero freezes the scene while frames keep coming.
type Scheduler struct {
	engine   *Engine
	session  *Session
	settings SettingsSource
	camera   pick.Camera
	limiter  *rate.Limiter
	clock    func() time.Time
	logger   *slog.Logger
}

func NewScheduler(engine *Engine, session *Session, source SettingsSource, camera pick.Camera, frameRate float64, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		engine:   engine,
		session:  session,
		settings: source,
		camera:   camera,
		limiter:  rate.NewLimiter(rate.Limit(frameRate), 1),
		clock:    time.Now,
		logger:   logger.With("component", "simulation_scheduler"),
	}
}

// WithClock replaces the wall clock, letting callers drive fixed time steps
func (s *Scheduler) WithClock(clock func() time.Time) *Scheduler {
	s.clock = clock
	return s
}

// Context assembles the inputs of the next frame
func (s *Scheduler) Context() FrameContext {
	pointer, viewport := s.session.Snapshot()
	return FrameContext{
		Settings: s.settings.Current(),
		Pointer:  pointer,
		Viewport: viewport,
		Camera:   s.camera,
	}
}

// Tick advances exactly one frame
func (s *Scheduler) Tick(ctx context.Context) *Frame {
	frame := s.engine.Advance(ctx, s.clock(), s.Context())

	if frame.Number%logEvery == 0 {
		s.logger.Debug("Frame progress",
			"frame", frame.Number,
			"elapsed", frame.Elapsed,
			"speed", frame.Settings.Speed,
			"picked", frame.Tooltip.Text,
		)
	}
	return frame
}

// Run ticks at the configured frame rate until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) error {
	logger := s.logger.With("operation", "run")
	logger.Info("Frame loop started", "frame_rate", float64(s.limiter.Limit()))

	for {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				logger.Info("Frame loop stopped")
				return nil
			}
			return fmt.Errorf("frame limiter: %w", err)
		}
		s.Tick(ctx)
	}
}
