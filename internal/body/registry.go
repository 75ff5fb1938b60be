package body

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"orrery-server/internal/shared/errors"

	"cogentcore.org/core/math32"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// RingTilt is the fixed X rotation of every ring plane
const RingTilt = -math.Pi / 2.5

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://orrery.local/bodies"))

// BodyID derives the stable id of a named body
func BodyID(name string) uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte(name))
}

// AsteroidID derives the stable id of the i-th asteroid of the belt
func AsteroidID(i int) uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte("asteroid/"+strconv.Itoa(i)))
}

// Registry is the fixed set of bodies of one session. It is built once and
// never grows or shrinks; the orbit and rotation models only write
// positions and rotations.
type Registry struct {
	Star        *Body
	Primaries   []*Body
	Secondaries []*Body
	Rings       []*Body
	Asteroids   []*Body

	byID   map[uuid.UUID]*Body
	byName map[string]*Body
}

// NewRegistry validates defs and builds the bodies, sampling primary start
// angles and the asteroid belt from rng.
func NewRegistry(defs []Definition, belt BeltConfig, rng *rand.Rand) (*Registry, error) {
	if err := Validate(defs); err != nil {
		return nil, err
	}
	if belt.Count < 0 {
		return nil, errors.Validationf("asteroid count must not be negative, got %d", belt.Count)
	}

	reg := &Registry{
		byID:   make(map[uuid.UUID]*Body, len(defs)+belt.Count),
		byName: make(map[string]*Body, len(defs)),
	}

	// top-level bodies first so children can resolve their parent
	for _, def := range defs {
		if def.Kind != KindStar && !def.Kind.IsPrimary() {
			continue
		}
		b := newBody(def)
		switch def.Kind {
		case KindStar:
			reg.Star = b
		default:
			b.Primary = &PrimaryOrbit{
				Period:        def.Period,
				SemiMajorAxis: def.SemiMajorAxis,
				Eccentricity:  def.Eccentricity,
				StartAngle:    rng.Float64() * 2 * math.Pi,
			}
			b.Position = math32.Vec3(float32(def.SemiMajorAxis), 0, 0)
			reg.Primaries = append(reg.Primaries, b)
		}
		reg.add(b)
	}

	for _, def := range defs {
		if def.Kind != KindMoon && def.Kind != KindRing {
			continue
		}
		b := newBody(def)
		b.Parent = reg.byName[def.ParentName]
		switch def.Kind {
		case KindMoon:
			b.Secondary = &SecondaryOrbit{Period: def.Period, Distance: def.Distance}
			b.Position = math32.Vec3(float32(def.Distance), 0, 0)
			reg.Secondaries = append(reg.Secondaries, b)
		case KindRing:
			b.Rotation.X = RingTilt
			b.Position = b.Parent.Position
			reg.Rings = append(reg.Rings, b)
		}
		reg.add(b)
	}

	reg.Asteroids = make([]*Body, 0, belt.Count)
	for i := 0; i < belt.Count; i++ {
		a := newAsteroid(i, belt, rng)
		reg.Asteroids = append(reg.Asteroids, a)
		reg.byID[a.ID] = a
	}

	return reg, nil
}

func newBody(def Definition) *Body {
	// colours were checked by Validate
	color, _ := colorful.Hex(def.Color)
	b := &Body{
		ID:          BodyID(def.Name),
		Name:        def.Name,
		Kind:        def.Kind,
		Radius:      float32(def.Radius),
		InnerRadius: float32(def.InnerRadius),
		Color:       color,
		Texture:     def.Texture,
		SpinRate:    float32(def.SpinRate),
	}
	b.Rotation.Z = float32(def.AxialTilt * math.Pi / 180)
	return b
}

func newAsteroid(i int, belt BeltConfig, rng *rand.Rand) *Body {
	angle := rng.Float64() * 2 * math.Pi
	radius := belt.InnerRadius + rng.Float64()*belt.Width
	scale := belt.MinScale + rng.Float64()*belt.ScaleRange
	height := rng.Float64() * belt.MaxHeight

	a := &Body{
		ID:       AsteroidID(i),
		Name:     "Asteroid " + strconv.Itoa(i+1),
		Kind:     KindAsteroid,
		Radius:   float32(scale),
		Color:    colorful.Color{R: 0.4, G: 0.4, B: 0.4},
		Asteroid: &AsteroidOrbit{StartAngle: angle, X: math.Cos(angle) * radius, Z: math.Sin(angle) * radius},
		Position: math32.Vec3(
			float32(math.Cos(angle)*radius),
			float32(height),
			float32(math.Sin(angle)*radius),
		),
	}
	a.Rotation = math32.Vec3(
		float32((rng.Float64()-0.5)*belt.MaxTilt),
		float32((rng.Float64()-0.5)*belt.MaxTilt),
		float32((rng.Float64()-0.5)*belt.MaxTilt),
	)
	return a
}

func (r *Registry) add(b *Body) {
	r.byID[b.ID] = b
	r.byName[b.Name] = b
}

// Validate checks a catalog: unique names, known kinds, parents that exist
// and are primaries (so the parent forest is at most star, planet, moon), and
// orbit parameters that keep the orbit formulas finite.
func Validate(defs []Definition) error {
	kinds := make(map[string]Kind, len(defs))
	stars := 0

	for _, def := range defs {
		if def.Name == "" {
			return errors.Validation("body name is required")
		}
		if _, dup := kinds[def.Name]; dup {
			return errors.Validationf("duplicate body name %q", def.Name)
		}
		kinds[def.Name] = def.Kind
		if _, err := colorful.Hex(def.Color); err != nil {
			return errors.WrapValidation(fmt.Sprintf("invalid color for %s", def.Name), err)
		}
		if def.Radius <= 0 {
			return errors.Validationf("%s: radius must be positive", def.Name)
		}

		switch def.Kind {
		case KindStar:
			stars++
			if def.ParentName != "" {
				return errors.Validationf("%s: a star cannot have a parent", def.Name)
			}
		case KindPlanet, KindDwarfPlanet:
			if def.ParentName != "" {
				return errors.Validationf("%s: primaries orbit the star and cannot have a parent", def.Name)
			}
			if def.Period <= 0 {
				return errors.Validationf("%s: orbital period must be positive", def.Name)
			}
			if def.SemiMajorAxis <= 0 {
				return errors.Validationf("%s: semi-major axis must be positive", def.Name)
			}
			if def.Eccentricity < 0 || def.Eccentricity >= 1 {
				return errors.Validationf("%s: eccentricity must be in [0, 1)", def.Name)
			}
		case KindMoon:
			if def.Period <= 0 {
				return errors.Validationf("%s: orbital period must be positive", def.Name)
			}
			if def.Distance < 0 {
				return errors.Validationf("%s: orbit distance must not be negative", def.Name)
			}
		case KindRing:
			if def.InnerRadius < 0 || def.InnerRadius >= def.Radius {
				return errors.Validationf("%s: ring inner radius must be in [0, radius)", def.Name)
			}
		case KindAsteroid:
			return errors.Validationf("%s: asteroids are sampled, not cataloged", def.Name)
		default:
			return errors.Validationf("%s: unknown kind %q", def.Name, def.Kind)
		}
	}

	if stars != 1 {
		return errors.Validationf("catalog needs exactly one star, found %d", stars)
	}

	for _, def := range defs {
		if def.Kind != KindMoon && def.Kind != KindRing {
			continue
		}
		parentKind, ok := kinds[def.ParentName]
		if !ok {
			return errors.Validationf("%s: unknown parent %q", def.Name, def.ParentName)
		}
		if !parentKind.IsPrimary() {
			return errors.Validationf("%s: parent %q must be a planet or dwarf planet", def.Name, def.ParentName)
		}
	}

	return nil
}

func (r *Registry) ByID(id uuid.UUID) (*Body, bool) {
	b, ok := r.byID[id]
	return b, ok
}

func (r *Registry) ByName(name string) (*Body, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// Celestial lists every non-asteroid body: star, primaries, moons, rings
func (r *Registry) Celestial() []*Body {
	bodies := make([]*Body, 0, 1+len(r.Primaries)+len(r.Secondaries)+len(r.Rings))
	if r.Star != nil {
		bodies = append(bodies, r.Star)
	}
	bodies = append(bodies, r.Primaries...)
	bodies = append(bodies, r.Secondaries...)
	return append(bodies, r.Rings...)
}

// Len is the total number of bodies including asteroids
func (r *Registry) Len() int {
	return len(r.byID)
}

// States snapshots every non-asteroid body
func (r *Registry) States() []State {
	celestial := r.Celestial()
	states := make([]State, 0, len(celestial))
	for _, b := range celestial {
		states = append(states, b.State())
	}
	return states
}

// AsteroidPositions flattens the belt into x, y, z triples in registry order
func (r *Registry) AsteroidPositions() []float32 {
	out := make([]float32, 0, 3*len(r.Asteroids))
	for _, a := range r.Asteroids {
		out = append(out, a.Position.X, a.Position.Y, a.Position.Z)
	}
	return out
}
