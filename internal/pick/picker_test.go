package pick

import (
	"math/rand/v2"
	"testing"

	"orrery-server/internal/body"
	"orrery-server/internal/orbit"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitScales = Scales{Sun: 1, Planet: 1}

func solarSystem(t *testing.T) *body.Registry {
	t.Helper()
	reg, err := body.NewRegistry(body.DefaultCatalog(), body.DefaultBelt(), rand.New(rand.NewPCG(3, 5)))
	require.NoError(t, err)
	orbit.AdvanceOrbits(reg, 0, 1)
	return reg
}

func TestPointerNDC(t *testing.T) {
	v := Viewport{Width: 800, Height: 600}

	centre := Pointer{ClientX: 400, ClientY: 300, Seen: true}.NDC(v)
	assert.InDelta(t, 0, centre.X, 1e-6)
	assert.InDelta(t, 0, centre.Y, 1e-6)

	topLeft := Pointer{ClientX: 0, ClientY: 0, Seen: true}.NDC(v)
	assert.InDelta(t, -1, topLeft.X, 1e-6)
	assert.InDelta(t, 1, topLeft.Y, 1e-6)

	bottomRight := Pointer{ClientX: 800, ClientY: 600, Seen: true}.NDC(v)
	assert.InDelta(t, 1, bottomRight.X, 1e-6)
	assert.InDelta(t, -1, bottomRight.Y, 1e-6)
}

func TestCameraRay(t *testing.T) {
	cam := DefaultCamera()

	ray := cam.Ray(math32.Vec2(0, 0))
	assert.Equal(t, cam.Position, ray.Origin)
	assert.InDelta(t, 0, ray.Dir.X, 1e-6)
	assert.InDelta(t, 0, ray.Dir.Y, 1e-6)
	assert.InDelta(t, -1, ray.Dir.Z, 1e-6)

	top := cam.Ray(math32.Vec2(0, 1))
	assert.Greater(t, top.Dir.Y, float32(0))
	assert.InDelta(t, 1, top.Dir.Length(), 1e-5)

	right := cam.Ray(math32.Vec2(1, 0))
	assert.Greater(t, right.Dir.X, float32(0))
}

func TestCentrePointerPicksTheSun(t *testing.T) {
	reg := solarSystem(t)
	picker := NewPicker(reg)
	v := Viewport{Width: 1280, Height: 720}
	pointer := Pointer{ClientX: 640, ClientY: 360, Seen: true}

	hit, tip := picker.Resolve(pointer, v, DefaultCamera(), unitScales)
	require.NotNil(t, hit.Body)
	assert.Equal(t, "Sun", hit.Body.Name)
	assert.Equal(t, Tooltip{Text: "Sun", Visible: true, Left: 650, Top: 370}, tip)
}

func TestCameraFarPlaneClipsPicking(t *testing.T) {
	reg := solarSystem(t)
	picker := NewPicker(reg)
	cam := DefaultCamera()
	cam.Far = 5

	hit, tip := picker.Resolve(Pointer{ClientX: 640, ClientY: 360, Seen: true}, Viewport{Width: 1280, Height: 720}, cam, unitScales)
	assert.Nil(t, hit.Body)
	assert.False(t, tip.Visible)
}

func TestFarPointerPicksNothing(t *testing.T) {
	reg := solarSystem(t)
	picker := NewPicker(reg)
	v := Viewport{Width: 1280, Height: 720}
	pointer := Pointer{ClientX: 640, ClientY: 0, Seen: true}

	hit, tip := picker.Resolve(pointer, v, DefaultCamera(), unitScales)
	assert.Nil(t, hit.Body)
	assert.False(t, tip.Visible)
	assert.Empty(t, tip.Text)
}

func TestNoPointerHidesTooltip(t *testing.T) {
	reg := solarSystem(t)
	picker := NewPicker(reg)

	hit, tip := picker.Resolve(Pointer{ClientX: 640, ClientY: 360}, Viewport{Width: 1280, Height: 720}, DefaultCamera(), unitScales)
	assert.Nil(t, hit.Body)
	assert.Equal(t, Tooltip{}, tip)

	_, tip = picker.Resolve(Pointer{ClientX: 1, ClientY: 1, Seen: true}, Viewport{}, DefaultCamera(), unitScales)
	assert.False(t, tip.Visible)
}

func TestSunScaleAffectsPicking(t *testing.T) {
	reg := solarSystem(t)
	picker := NewPicker(reg)

	// passes 4 units above the origin, outside the unscaled sun
	ray := math32.Ray{Origin: math32.Vec3(0, 4, 14), Dir: math32.Vec3(0, 0, -1)}
	_, ok := picker.Pick(ray, unitScales)
	assert.False(t, ok)

	hit, ok := picker.Pick(ray, Scales{Sun: 2, Planet: 1})
	require.True(t, ok)
	assert.Equal(t, "Sun", hit.Body.Name)
}

func ringedSystem(t *testing.T) *body.Registry {
	t.Helper()
	defs := []body.Definition{
		{Name: "Star", Kind: body.KindStar, Radius: 1, Color: "#ffffff"},
		{Name: "Giant", Kind: body.KindPlanet, Radius: 1, Color: "#be9352", Period: 30, SemiMajorAxis: 20},
		{Name: "Giant's Rings", Kind: body.KindRing, ParentName: "Giant", InnerRadius: 2, Radius: 4, Color: "#c9b38a"},
	}
	reg, err := body.NewRegistry(defs, body.BeltConfig{}, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)

	giant, _ := reg.ByName("Giant")
	giant.Position = math32.Vec3(20, 0, 0)
	reg.Rings[0].Position = giant.Position
	return reg
}

func TestRingAnnulus(t *testing.T) {
	reg := ringedSystem(t)
	picker := NewPicker(reg)
	ring := reg.Rings[0]
	normal := math32.Vec3(0, -math32.Sin(ring.Rotation.X), math32.Cos(ring.Rotation.X))

	tests := []struct {
		name   string
		offset float32
		want   string
	}{
		{"through the gap hits the planet", 0, "Giant"},
		{"inside the gap misses", 1.5, ""},
		{"on the ring", 3, "Giant's Rings"},
		{"beyond the ring", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// a point in the ring plane offset along world X from the centre
			target := ring.Position.Add(math32.Vec3(tt.offset, 0, 0))
			ray := math32.Ray{Origin: target.Add(normal.MulScalar(10)), Dir: normal.MulScalar(-1)}

			hit, ok := picker.Pick(ray, unitScales)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, hit.Body.Name)
		})
	}
}

func TestNearestHitWins(t *testing.T) {
	reg := ringedSystem(t)
	picker := NewPicker(reg)

	// along -X from beyond the giant, off the ring plane: both spheres are
	// crossed and the giant is closer than the star
	ray := math32.Ray{Origin: math32.Vec3(40, 0, 0.5), Dir: math32.Vec3(-1, 0, 0)}
	hit, ok := picker.Pick(ray, unitScales)
	require.True(t, ok)
	assert.Equal(t, "Giant", hit.Body.Name)
	assert.InDelta(t, 20-0.8660254, hit.Distance, 1e-3)
}

func TestPickStaysWithinClipRange(t *testing.T) {
	reg := ringedSystem(t)
	picker := NewPicker(reg)
	ray := math32.Ray{Origin: math32.Vec3(40, 0, 0.5), Dir: math32.Vec3(-1, 0, 0)}

	_, ok := picker.PickWithin(ray, unitScales, 0.1, 10)
	assert.False(t, ok, "everything lies past the far plane")

	hit, ok := picker.PickWithin(ray, unitScales, 25, 1000)
	require.True(t, ok)
	assert.Equal(t, "Star", hit.Body.Name, "the giant is in front of the near plane")
	assert.InDelta(t, 40-0.8660254, hit.Distance, 1e-3)

	hit, ok = picker.PickWithin(ray, unitScales, 0.1, 1000)
	require.True(t, ok)
	assert.Equal(t, "Giant", hit.Body.Name)
}

func TestBodiesBehindTheRayAreIgnored(t *testing.T) {
	reg := ringedSystem(t)
	picker := NewPicker(reg)

	ray := math32.Ray{Origin: math32.Vec3(0, 0, 5), Dir: math32.Vec3(0, 0, 1)}
	_, ok := picker.Pick(ray, unitScales)
	assert.False(t, ok)
}
