package simulation

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"orrery-server/internal/body"
	"orrery-server/internal/orbit"
	"orrery-server/internal/pick"
	"orrery-server/internal/rotation"
	"orrery-server/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRegistry(t *testing.T) *body.Registry {
	t.Helper()
	reg, err := body.NewRegistry(body.DefaultCatalog(), body.DefaultBelt(), rand.New(rand.NewPCG(9, 9)))
	require.NoError(t, err)
	return reg
}

type recordingRenderer struct {
	mu     sync.Mutex
	frames []*Frame
}

func (r *recordingRenderer) Render(_ context.Context, f *Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

type fixedSettings settings.Settings

func (f fixedSettings) Current() settings.Settings { return settings.Settings(f) }

// steppingClock advances by step on every call
type steppingClock struct {
	now  time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func TestEngineFirstFrameStartsClock(t *testing.T) {
	reg := newRegistry(t)
	renderer := &recordingRenderer{}
	engine := NewEngine(reg, renderer, nil, discardLogger())
	assert.Nil(t, engine.Latest())

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	frame := engine.Advance(t.Context(), start, FrameContext{Settings: settings.Defaults(), Camera: pick.DefaultCamera()})

	assert.Equal(t, uint64(1), frame.Number)
	assert.Zero(t, frame.Elapsed)
	assert.Same(t, frame, engine.Latest())
	assert.Equal(t, 1, renderer.count())
	assert.Len(t, frame.Bodies, len(reg.Celestial()))
	assert.Len(t, frame.Asteroids, 3*len(reg.Asteroids))

	for _, p := range reg.Primaries {
		want := orbit.PrimaryPosition(*p.Primary, 0, 1)
		assert.Equal(t, want, p.Position, p.Name)
	}
}

func TestEngineElapsedNeverRewinds(t *testing.T) {
	engine := NewEngine(newRegistry(t), nil, nil, discardLogger())
	fc := FrameContext{Settings: settings.Defaults(), Camera: pick.DefaultCamera()}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	engine.Advance(t.Context(), start, fc)
	f := engine.Advance(t.Context(), start.Add(10*time.Second), fc)
	assert.InDelta(t, 10, f.Elapsed, 1e-9)

	f = engine.Advance(t.Context(), start.Add(3*time.Second), fc)
	assert.InDelta(t, 10, f.Elapsed, 1e-9)

	f = engine.Advance(t.Context(), start.Add(12*time.Second), fc)
	assert.InDelta(t, 12, f.Elapsed, 1e-9)
}

func TestSchedulerFixedSteps(t *testing.T) {
	reg := newRegistry(t)
	engine := NewEngine(reg, nil, nil, discardLogger())
	clock := &steppingClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Second / 60}
	speed := 2.0
	sched := NewScheduler(engine, NewSession(pick.Viewport{Width: 800, Height: 600}),
		fixedSettings{Speed: speed, SunScale: 1, PlanetScale: 1}, pick.DefaultCamera(), 60, discardLogger()).
		WithClock(clock.Now)

	earth, _ := reg.ByName("Earth")
	tilt := earth.Rotation.Z

	const frames = 120
	var last *Frame
	for i := 0; i < frames; i++ {
		last = sched.Tick(t.Context())
	}

	assert.Equal(t, uint64(frames), last.Number)
	assert.InDelta(t, float64(frames-1)/60, last.Elapsed, 1e-6)

	// spin is counted in frames, not in seconds
	want := float64(earth.SpinRate) * speed * rotation.NominalFrameDelta * frames
	assert.InDelta(t, want, earth.Rotation.Y, 1e-4)
	assert.Equal(t, tilt, earth.Rotation.Z)

	wantPos := orbit.PrimaryPosition(*earth.Primary, last.Elapsed, speed)
	assert.InDelta(t, wantPos.X, earth.Position.X, 1e-4)
	assert.InDelta(t, wantPos.Z, earth.Position.Z, 1e-4)
}

func TestZeroSpeedFreezesEverything(t *testing.T) {
	reg := newRegistry(t)
	engine := NewEngine(reg, nil, nil, discardLogger())
	clock := &steppingClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Second}
	sched := NewScheduler(engine, NewSession(pick.Viewport{}), fixedSettings{Speed: 0, SunScale: 1, PlanetScale: 1},
		pick.DefaultCamera(), 60, discardLogger()).WithClock(clock.Now)

	first := sched.Tick(t.Context())
	for i := 0; i < 30; i++ {
		sched.Tick(t.Context())
	}
	last := engine.Latest()

	assert.Equal(t, first.Bodies, last.Bodies)
	assert.InDeltaSlice(t, first.Asteroids, last.Asteroids, 1e-4)
	assert.Greater(t, last.Elapsed, first.Elapsed)
}

func TestAsteroidCountStaysFixed(t *testing.T) {
	reg := newRegistry(t)
	engine := NewEngine(reg, nil, nil, discardLogger())
	clock := &steppingClock{now: time.Now(), step: 50 * time.Millisecond}
	sched := NewScheduler(engine, NewSession(pick.Viewport{}), fixedSettings(settings.Defaults()),
		pick.DefaultCamera(), 60, discardLogger()).WithClock(clock.Now)

	for i := 0; i < 100; i++ {
		f := sched.Tick(t.Context())
		require.Len(t, f.Asteroids, 3000)
	}
	assert.Len(t, reg.Asteroids, 1000)
}

func TestPointerDrivesTooltip(t *testing.T) {
	reg := newRegistry(t)
	engine := NewEngine(reg, nil, nil, discardLogger())
	session := NewSession(pick.Viewport{Width: 1000, Height: 500})
	sched := NewScheduler(engine, session, fixedSettings(settings.Defaults()), pick.DefaultCamera(), 60, discardLogger())

	f := sched.Tick(t.Context())
	assert.False(t, f.Tooltip.Visible, "no pointer event yet")
	assert.Nil(t, f.Picked)

	session.SetPointer(500, 250)
	f = sched.Tick(t.Context())
	require.True(t, f.Tooltip.Visible)
	assert.Equal(t, "Sun", f.Tooltip.Text)
	assert.Equal(t, float32(510), f.Tooltip.Left)
	assert.Equal(t, float32(260), f.Tooltip.Top)
	require.NotNil(t, f.Picked)
	assert.Equal(t, reg.Star.ID, *f.Picked)

	session.SetPointer(500, 0)
	f = sched.Tick(t.Context())
	assert.False(t, f.Tooltip.Visible)
}

func TestSessionIgnoresDegenerateViewport(t *testing.T) {
	s := NewSession(pick.Viewport{Width: 800, Height: 600})
	s.SetViewport(pick.Viewport{Width: 0, Height: 600})
	_, v := s.Snapshot()
	assert.Equal(t, pick.Viewport{Width: 800, Height: 600}, v)
}

type loadedFlag bool

func (l loadedFlag) Loaded() bool { return bool(l) }

func TestEnvironmentReadiness(t *testing.T) {
	fc := FrameContext{Settings: settings.Defaults(), Camera: pick.DefaultCamera()}

	f := NewEngine(newRegistry(t), nil, loadedFlag(false), discardLogger()).Advance(t.Context(), time.Now(), fc)
	assert.False(t, f.EnvironmentReady)

	f = NewEngine(newRegistry(t), nil, loadedFlag(true), discardLogger()).Advance(t.Context(), time.Now(), fc)
	assert.True(t, f.EnvironmentReady)
}

func TestRunStopsOnCancel(t *testing.T) {
	renderer := &recordingRenderer{}
	engine := NewEngine(newRegistry(t), renderer, nil, discardLogger())
	sched := NewScheduler(engine, NewSession(pick.Viewport{}), fixedSettings(settings.Defaults()),
		pick.DefaultCamera(), 200, discardLogger())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	require.Eventually(t, func() bool { return renderer.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("frame loop did not stop")
	}
}
