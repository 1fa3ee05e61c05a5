package field

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// Ornament appearance distribution. Shapes are ~40% box / 60% sphere; colors
// come from weighted buckets of ~10% accent red, 30% green, 60% gold.
const (
	boxShare        = 0.4
	redColorShare   = 0.1
	greenColorCum   = 0.4 // red share + 30% green
	spiralRadiusFit = 0.92
	ornamentJitter  = 0.25
)

var (
	colorAccentRed = [3]float32{0.90, 0.16, 0.14}
	colorGreen     = [3]float32{0.13, 0.48, 0.22}
	colorGold      = [3]float32{1.00, 0.78, 0.28}
)

// GenerateFoliage builds n foliage particles, each with a formation position
// inside the tree cone and a scatter position inside the scatter sphere.
// The shape is deterministic but the values are stochastic; n == 0 yields an
// empty slice.
//
// Parameters:
//   - n: the number of particles to generate
//
// Returns:
//   - []ParticlePoint: the generated particles
func GenerateFoliage(n int) []ParticlePoint {
	if n <= 0 {
		return []ParticlePoint{}
	}

	points := make([]ParticlePoint, n)
	for i := range points {
		p := &points[i]
		p.Formation = coneSample()
		p.Scatter = sphereSample(ScatterRadius)
		p.Phase = rand.Float32()
		p.TwinkleFreq = 1.5 + rand.Float32()*3.0

		if rand.Float32() < dustShare {
			p.Class = SizeDust
			p.Size = dustSizeMin + rand.Float32()*(dustSizeMax-dustSizeMin)
		} else {
			p.Class = SizeLight
			p.Size = lightSizeMin + rand.Float32()*(lightSizeMax-lightSizeMin)
		}
	}
	return points
}

// GenerateOrnaments builds n ornaments strung along a spiral winding around
// the cone surface from base to tip, ordered by index. n == 0 yields an
// empty slice.
//
// Parameters:
//   - n: the number of ornaments to generate
//
// Returns:
//   - []OrnamentInstance: the generated ornaments
func GenerateOrnaments(n int) []OrnamentInstance {
	if n <= 0 {
		return []OrnamentInstance{}
	}

	ornaments := make([]OrnamentInstance, n)
	for i := range ornaments {
		o := &ornaments[i]

		// Ordinal progress along the string: 0 at the base, 1 at the tip.
		t := float32(0)
		if n > 1 {
			t = float32(i) / float32(n-1)
		}

		angle := t * SpiralTurns * 2 * math32.Pi
		radius := TreeRadius * (1 - t) * spiralRadiusFit
		o.Formation = [3]float32{
			radius*math32.Cos(angle) + jitter(ornamentJitter),
			t*TreeHeight - TreeHeight/2 - TreeDrop + jitter(ornamentJitter),
			radius*math32.Sin(angle) + jitter(ornamentJitter),
		}
		o.Scatter = sphereSample(ScatterRadius)

		o.BaseRotation = [3]float32{
			rand.Float32() * 2 * math32.Pi,
			rand.Float32() * 2 * math32.Pi,
			rand.Float32() * 2 * math32.Pi,
		}
		o.SpinSpeed = [3]float32{
			(rand.Float32() - 0.5) * 1.2,
			0.4 + rand.Float32()*0.8,
			(rand.Float32() - 0.5) * 1.2,
		}
		o.Scale = 0.26 + rand.Float32()*0.2

		if rand.Float32() < boxShare {
			o.Shape = ShapeBox
		} else {
			o.Shape = ShapeSphere
		}

		switch c := rand.Float32(); {
		case c < redColorShare:
			o.Color = colorAccentRed
		case c < greenColorCum:
			o.Color = colorGreen
		default:
			o.Color = colorGold
		}
	}
	return ornaments
}

// coneSample returns a point uniformly distributed inside the tree cone.
// The cone has its base at the bottom and tapers linearly to the tip, so the
// height coordinate is cube-root weighted toward the base — plain uniform
// height would thin out the wide part of the volume. A small jitter keeps
// the surface from reading as mathematically crisp.
func coneSample() [3]float32 {
	// t is the normalized height from base (0) to tip (1); cross-section
	// area shrinks as (1-t)^2, hence the cube root.
	t := 1 - math32.Cbrt(rand.Float32())
	maxRadius := TreeRadius * (1 - t)

	// Area-uniform radial placement within the disc at this height.
	r := maxRadius * math32.Sqrt(rand.Float32())
	angle := rand.Float32() * 2 * math32.Pi

	return [3]float32{
		r*math32.Cos(angle) + jitter(TreeJitter),
		t*TreeHeight - TreeHeight/2 - TreeDrop + jitter(TreeJitter),
		r*math32.Sin(angle) + jitter(TreeJitter),
	}
}

// sphereSample returns a point uniformly distributed inside a sphere of the
// given radius. The radius variable takes the cube root of a uniform sample;
// naive linear scaling would cluster points at the center.
func sphereSample(radius float32) [3]float32 {
	// Uniform direction: uniform cos(polar) and uniform azimuth.
	cosTheta := rand.Float32()*2 - 1
	sinTheta := math32.Sqrt(1 - cosTheta*cosTheta)
	phi := rand.Float32() * 2 * math32.Pi

	r := radius * math32.Cbrt(rand.Float32())
	return [3]float32{
		r * sinTheta * math32.Cos(phi),
		r * cosTheta,
		r * sinTheta * math32.Sin(phi),
	}
}

// jitter returns a uniform offset in [-amount, amount].
func jitter(amount float32) float32 {
	return (rand.Float32()*2 - 1) * amount
}
