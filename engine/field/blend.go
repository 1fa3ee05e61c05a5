package field

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/grove-go/common"
)

// Stagger constants. A particle's local progress is the global morph value
// stretched by staggerStretch and pushed back by its phase, so high-phase
// particles start moving later and the field cascades instead of sliding as
// one rigid block.
const (
	staggerStretch = 1.5
	staggerOffset  = 0.5

	// Breathing: a slow radial oscillation that fades out as a particle
	// approaches its scatter position.
	breatheAmplitude = 0.28
	breatheFrequency = 1.6

	// Twinkle gate and range. Light-tier particles always twinkle; dust only
	// when its phase is above the gate.
	twinklePhaseGate = 0.7
	twinkleBase      = 0.75
	twinkleDepth     = 0.35

	// scatterColorBlend is the weight of the scattered hue at full morph.
	// Deliberately below 1 so the warm tree character survives dispersal.
	scatterColorBlend = 0.6

	// ornamentPhaseStep converts an ornament's ordinal into its stagger
	// phase. Because the string is ordered along the spiral, this produces a
	// wave running up the tree rather than the foliage's random cascade.
	ornamentPhaseStep = 0.004

	// ornamentKick is the extra one-time rotation (radians) an ornament
	// accumulates over the course of its morph transition.
	ornamentKick = 2.4

	starSpinSpeed = 0.8
	starWobbleAmp = 0.18
)

// Warm glow palette for the assembled tree and the cool hue blended in as
// the field scatters.
var (
	glowInner  = [3]float32{1.00, 0.86, 0.55}
	glowOuter  = [3]float32{0.96, 0.55, 0.25}
	scatterHue = [3]float32{0.45, 0.65, 1.00}
)

// LocalProgress returns a particle's staggered share of the global morph
// value m, in [0, 1]. The smoothstep keeps each particle's own transition
// soft at both ends.
//
// Parameters:
//   - m: global morph progress, already sanitized to [0, 1]
//   - phase: the particle's stagger phase in [0, 1)
//
// Returns:
//   - float32: the particle's local progress in [0, 1]
func LocalProgress(m, phase float32) float32 {
	return common.Smoothstep(0, 1, m*staggerStretch-phase*staggerOffset)
}

// BlendPoint computes one foliage particle's live position, color, and
// render size for the current frame.
//
// Parameters:
//   - p: the particle's immutable generation-time state
//   - m: global morph progress (defensively sanitized here)
//   - elapsed: scene time in seconds, drives breathing and twinkle
//
// Returns:
//   - pos: the blended world position
//   - color: the particle's RGB color including brightness
//   - size: the particle's render size
func BlendPoint(p *ParticlePoint, m, elapsed float32) (pos, color [3]float32, size float32) {
	m = common.Sanitize01(m)
	local := LocalProgress(m, p.Phase)
	eased := common.EaseInOutCubic(local)

	pos = common.Lerp3(p.Formation, p.Scatter, eased)

	// Breathing: radial push desynchronized by phase, gone by the time the
	// particle reaches its scatter position.
	if dir, ok := common.Normalize3(pos); ok {
		offset := math32.Sin(elapsed*breatheFrequency+p.Phase*2*math32.Pi) * breatheAmplitude * (1 - local)
		pos[0] += dir[0] * offset
		pos[1] += dir[1] * offset
		pos[2] += dir[2] * offset
	}

	brightness := float32(1)
	if p.Class == SizeLight || p.Phase > twinklePhaseGate {
		brightness = twinkleBase + twinkleDepth*math32.Sin(elapsed*p.TwinkleFreq+p.Phase*2*math32.Pi)
	}

	// Warm glow falloff by distance from the tree's visual center, then a
	// partial blend toward the scattered hue as the field disperses.
	falloff := common.Clamp01(common.Length3(p.Formation) / (TreeHeight / 2))
	base := common.Lerp3(glowInner, glowOuter, falloff)
	color = common.Lerp3(base, scatterHue, scatterColorBlend*m)
	color[0] *= brightness
	color[1] *= brightness
	color[2] *= brightness

	return pos, color, p.Size
}

// OrnamentPhase returns the stagger phase for the ornament at the given
// ordinal. The string is ordered along the spiral, so phase grows with the
// ordinal and the morph runs up the tree as a wave.
//
// Parameters:
//   - ordinal: the ornament's index along the string
//
// Returns:
//   - float32: the stagger phase in [0, 1]
func OrnamentPhase(ordinal int) float32 {
	return common.Clamp01(float32(ordinal) * ornamentPhaseStep)
}

// BlendOrnament computes one ornament's live position and rotation.
// The local-progress formula matches the foliage exactly, keyed by the
// ordinal-derived phase; rotation is the base orientation plus continuous
// self-spin plus a one-time kick accumulated over the morph transition.
//
// Parameters:
//   - o: the ornament's immutable generation-time state
//   - ordinal: the ornament's index along the string
//   - m: global morph progress (defensively sanitized here)
//   - elapsed: scene time in seconds
//
// Returns:
//   - pos: the blended world position
//   - rot: the live Euler rotation in radians
func BlendOrnament(o *OrnamentInstance, ordinal int, m, elapsed float32) (pos, rot [3]float32) {
	m = common.Sanitize01(m)
	local := LocalProgress(m, OrnamentPhase(ordinal))
	eased := common.EaseInOutCubic(local)

	pos = common.Lerp3(o.Formation, o.Scatter, eased)
	rot = [3]float32{
		o.BaseRotation[0] + o.SpinSpeed[0]*elapsed + ornamentKick*eased,
		o.BaseRotation[1] + o.SpinSpeed[1]*elapsed,
		o.BaseRotation[2] + o.SpinSpeed[2]*elapsed + ornamentKick*eased*0.5,
	}
	return pos, rot
}

// BlendStar computes the topper's live position and rotation: the same cubic
// ease between its two anchors, continuous spin, and a small wobble.
//
// Parameters:
//   - s: the topper definition
//   - m: global morph progress (defensively sanitized here)
//   - elapsed: scene time in seconds
//
// Returns:
//   - pos: the blended world position
//   - rot: the live Euler rotation in radians
func BlendStar(s Star, m, elapsed float32) (pos, rot [3]float32) {
	m = common.Sanitize01(m)
	eased := common.EaseInOutCubic(m)

	pos = common.Lerp3(s.Apex, s.Floated, eased)
	pos[0] += math32.Sin(elapsed*0.9) * starWobbleAmp
	pos[1] += math32.Sin(elapsed*1.3) * starWobbleAmp * 0.6

	rot = [3]float32{
		math32.Sin(elapsed*0.7) * 0.12,
		elapsed * starSpinSpeed,
		0,
	}
	return pos, rot
}
