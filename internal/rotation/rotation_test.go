package rotation

import (
	"math"
	"math/rand/v2"
	"testing"

	"orrery-server/internal/body"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationAccumulates(t *testing.T) {
	tests := []struct {
		name   string
		rate   float32
		speed  float64
		frames int
	}{
		{"earth", 0.02, 1, 60},
		{"fast forward", 0.02, 10, 100},
		{"half speed", 0.004, 0.5, 300},
		{"frozen", 0.03, 0, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &body.Body{Name: tt.name, SpinRate: tt.rate}
			b.Rotation.Z = 0.4
			for i := 0; i < tt.frames; i++ {
				AdvanceRotations([]*body.Body{b}, tt.speed, NominalFrameDelta)
			}
			want := float64(tt.rate) * tt.speed * NominalFrameDelta * float64(tt.frames)
			assert.InDelta(t, want, b.Rotation.Y, 1e-4)
			assert.InDelta(t, 0.4, b.Rotation.Z, 1e-7, "tilt must not change")
			assert.Zero(t, b.Rotation.X)
		})
	}
}

func TestRotationKeepsTurningAfterLongUptime(t *testing.T) {
	tests := []struct {
		name   string
		rate   float32
		speed  float64
		start  float64
		frames int
	}{
		{"sun after hours", 0.004, 1, 2048, 6000},
		{"retrograde", -0.0004, 1, -128, 6000},
		{"fast forward", 0.02, 10, 65536, 6000},
		{"slow motion", 0.004, 0.01, 4096, 6000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &body.Body{Name: tt.name, SpinRate: tt.rate, Spin: tt.start}
			AdvanceRotations([]*body.Body{b}, tt.speed, NominalFrameDelta)
			first := b.Spin
			for i := 1; i < tt.frames; i++ {
				AdvanceRotations([]*body.Body{b}, tt.speed, NominalFrameDelta)
			}

			want := float64(tt.rate) * tt.speed * NominalFrameDelta * float64(tt.frames)
			turned := math.Remainder(b.Spin-tt.start, 2*math.Pi)
			assert.InDelta(t, 0, math.Remainder(turned-want, 2*math.Pi), 1e-6)

			assert.LessOrEqual(t, math.Abs(first), math.Pi)
			assert.LessOrEqual(t, math.Abs(b.Spin), math.Pi)
			assert.Equal(t, float32(b.Spin), b.Rotation.Y)
		})
	}
}

func TestBodiesWithoutSpinAreUntouched(t *testing.T) {
	still := &body.Body{Name: "rings"}
	still.Rotation.Set(1, 2, 3)

	for i := 0; i < 100; i++ {
		AdvanceRotations([]*body.Body{still}, 5, NominalFrameDelta)
	}
	assert.Equal(t, float32(1), still.Rotation.X)
	assert.Equal(t, float32(2), still.Rotation.Y)
	assert.Equal(t, float32(3), still.Rotation.Z)
}

func TestSpinningSet(t *testing.T) {
	reg, err := body.NewRegistry(body.DefaultCatalog(), body.DefaultBelt(), rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)

	spinning := Spinning(reg)
	names := make(map[string]bool, len(spinning))
	for _, b := range spinning {
		names[b.Name] = true
		assert.NotEqual(t, body.KindRing, b.Kind)
		assert.NotEqual(t, body.KindAsteroid, b.Kind)
	}
	assert.True(t, names["Sun"])
	assert.True(t, names["Earth"])
	assert.True(t, names["Moon"])
	assert.False(t, names["Saturn's Rings"])
}
