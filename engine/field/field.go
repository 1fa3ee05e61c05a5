// Package field holds the dual-state particle and ornament geometry and the
// per-frame formation blend math. Positions are generated once at startup:
// every particle carries both its tree-formation coordinate and its scattered
// coordinate, and the blend engine interpolates between the two each frame.
// Regenerating either set after startup would break interpolation continuity,
// so everything here is immutable once built.
package field

// Scene dimensions. The tree cone is vertically centered with a small
// downward drop so the trunk region sits slightly below the orbit target,
// and the scatter sphere comfortably contains the whole formation.
const (
	TreeHeight    = 16.0
	TreeRadius    = 6.0
	TreeDrop      = 1.0
	TreeJitter    = 0.35
	ScatterRadius = 28.0

	// SpiralTurns is how many times the ornament string winds around the
	// cone from base to tip.
	SpiralTurns = 8.0
)

// Foliage size tiers. Roughly 90% of particles are fine dust; the remaining
// 10% are larger lights that also participate in the twinkle pass.
const (
	dustShare   = 0.9
	dustSizeMin = 0.05
	dustSizeMax = 0.12

	lightSizeMin = 0.18
	lightSizeMax = 0.34
)

// SizeClass is the visual tier of a foliage particle.
type SizeClass uint8

const (
	// SizeDust is the fine volumetric filler tier.
	SizeDust SizeClass = iota
	// SizeLight is the larger glowing tier.
	SizeLight
)

// ParticlePoint is one foliage particle's immutable generation-time state.
type ParticlePoint struct {
	// Formation is the particle's coordinate in the assembled tree.
	Formation [3]float32
	// Scatter is the particle's coordinate in the dispersed cloud.
	Scatter [3]float32

	// Phase in [0, 1) staggers when this particle starts morphing and
	// desynchronizes its breathing and twinkle from its neighbours.
	Phase float32

	// Size is the render size for this particle's tier.
	Size float32

	// TwinkleFreq is this particle's randomized twinkle frequency in rad/s.
	TwinkleFreq float32

	// Class is the particle's visual tier.
	Class SizeClass
}

// Shape selects the ornament's mesh.
type Shape uint8

const (
	// ShapeBox renders the ornament as a cube.
	ShapeBox Shape = iota
	// ShapeSphere renders the ornament as a sphere.
	ShapeSphere
)

// OrnamentInstance is one ornament's immutable generation-time state. The
// per-frame transform derived from it is recomputed every frame and never
// stored back.
type OrnamentInstance struct {
	// Shape selects the instanced mesh.
	Shape Shape

	// Formation is the ornament's coordinate on the spiral string.
	Formation [3]float32
	// Scatter is the ornament's coordinate in the dispersed cloud.
	Scatter [3]float32

	// BaseRotation is the resting orientation in radians.
	BaseRotation [3]float32
	// SpinSpeed is the continuous self-rotation rate in radians per second.
	SpinSpeed [3]float32

	// Scale is the uniform mesh scale.
	Scale float32
	// Color is the ornament's RGB color.
	Color [3]float32
}

// Star is the topper element. Unlike particles it has exactly two fixed
// anchors and is always present regardless of particle counts.
type Star struct {
	// Apex is the on-tree position just above the cone tip.
	Apex [3]float32
	// Floated is the drifted-away position used when fully scattered.
	Floated [3]float32
	// Scale is the uniform mesh scale.
	Scale float32
}

// NewStar returns the topper with its two anchor positions.
//
// Returns:
//   - Star: the topper definition
func NewStar() Star {
	top := float32(TreeHeight)/2 - TreeDrop
	return Star{
		Apex:    [3]float32{0, top + 0.9, 0},
		Floated: [3]float32{3.5, top + 6.0, -2.5},
		Scale:   1.1,
	}
}
