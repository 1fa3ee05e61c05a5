package morph

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerDefaults(t *testing.T) {
	c := NewController()

	snap := c.Snapshot()
	assert.Equal(t, float32(0), snap.Morph)
	assert.Equal(t, float32(0), snap.Height)
	assert.Equal(t, ModeAssembled, snap.Mode)
	assert.Equal(t, float32(0), c.MorphTarget())
	assert.Equal(t, float32(0), c.HeightTarget())
}

func TestTickApproachesTargetWithoutOvershoot(t *testing.T) {
	c := NewController()
	c.SetMorphTarget(1)

	prev := float32(0)
	for i := 0; i < 200; i++ {
		c.Tick()
		v := c.Morph()
		require.GreaterOrEqual(t, v, prev, "morph must increase monotonically")
		require.LessOrEqual(t, v, float32(1), "morph must never overshoot the target")
		prev = v
	}
	assert.Equal(t, float32(1), c.Morph(), "morph should snap exactly to the target")
}

func TestTickExponentialStep(t *testing.T) {
	c := NewController()
	c.SetMorphTarget(1)

	// After N ticks the remaining distance is (1 - rate)^N.
	const n = 10
	for i := 0; i < n; i++ {
		c.Tick()
	}
	want := 1 - math32.Pow(1-DefaultMorphRate, n)
	assert.InDelta(t, float64(want), float64(c.Morph()), 1e-4)
}

func TestTickSnapsWithinEpsilon(t *testing.T) {
	c := NewController()
	c.SetMorphTarget(1)

	for i := 0; i < 10000; i++ {
		c.Tick()
		if c.Morph() == 1 {
			return
		}
	}
	t.Fatal("morph never snapped to its target")
}

func TestModeHysteresis(t *testing.T) {
	c := NewController()

	// Rising through the band: mode stays assembled until the upper threshold.
	c.SetMorphTarget(1)
	for c.Morph() <= scatterThreshold {
		if c.Morph() > assembleThreshold {
			assert.Equal(t, ModeAssembled, c.Mode(), "mode must hold inside the band while rising")
		}
		c.Tick()
	}
	assert.Equal(t, ModeScattered, c.Mode())

	// Falling back through the band: mode stays scattered until the lower threshold.
	c.SetMorphTarget(0)
	for c.Morph() >= assembleThreshold {
		if c.Morph() < scatterThreshold {
			assert.Equal(t, ModeScattered, c.Mode(), "mode must hold inside the band while falling")
		}
		c.Tick()
	}
	assert.Equal(t, ModeAssembled, c.Mode())
}

func TestToggle(t *testing.T) {
	c := NewController()

	assert.Equal(t, ModeScattered, c.Toggle())
	assert.Equal(t, float32(1), c.MorphTarget())

	assert.Equal(t, ModeAssembled, c.Toggle())
	assert.Equal(t, float32(0), c.MorphTarget())
}

func TestSetAssembledAndScattered(t *testing.T) {
	c := NewController()

	c.SetScattered()
	assert.Equal(t, ModeScattered, c.Mode())
	assert.Equal(t, float32(1), c.MorphTarget())

	c.SetAssembled()
	assert.Equal(t, ModeAssembled, c.Mode())
	assert.Equal(t, float32(0), c.MorphTarget())
}

func TestTargetClamping(t *testing.T) {
	c := NewController()

	c.SetMorphTarget(3.5)
	assert.Equal(t, float32(1), c.MorphTarget())

	c.SetMorphTarget(-2)
	assert.Equal(t, float32(0), c.MorphTarget())

	c.SetMorphTarget(math32.NaN())
	assert.Equal(t, float32(0), c.MorphTarget(), "NaN target must collapse to 0, not poison the smoothing")

	c.SetHeightTarget(math32.Inf(1))
	assert.Equal(t, float32(1), c.HeightTarget())
}

func TestHeightIndependentOfMorph(t *testing.T) {
	c := NewController()
	c.SetMorphTarget(1)
	c.SetHeightTarget(0.5)

	for i := 0; i < 50; i++ {
		c.Tick()
	}

	// Height follows its own slower rate.
	wantHeight := 0.5 * (1 - math32.Pow(1-DefaultHeightRate, 50))
	assert.InDelta(t, float64(wantHeight), float64(c.Height()), 1e-3)
	assert.Greater(t, c.Morph(), c.Height(), "morph smooths faster than height")
}

func TestBuilderOptions(t *testing.T) {
	c := NewController(
		WithMorphRate(0.5),
		WithHeightRate(0.5),
		WithInitialHeight(0.8),
	)

	assert.Equal(t, float32(0.8), c.Height())
	assert.Equal(t, float32(0.8), c.HeightTarget())

	c.SetMorphTarget(1)
	c.Tick()
	assert.InDelta(t, 0.5, float64(c.Morph()), 1e-6)

	// Out-of-range rates fall back to the defaults.
	d := NewController(WithMorphRate(-1))
	d.SetMorphTarget(1)
	d.Tick()
	assert.InDelta(t, float64(DefaultMorphRate), float64(d.Morph()), 1e-6)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "assembled", ModeAssembled.String())
	assert.Equal(t, "scattered", ModeScattered.String())
}

func TestSnapshotConsistency(t *testing.T) {
	c := NewController()
	c.SetMorphTarget(1)
	c.Tick()

	snap := c.Snapshot()
	assert.Equal(t, c.Morph(), snap.Morph)
	assert.Equal(t, c.Height(), snap.Height)
	assert.Equal(t, c.Mode(), snap.Mode)
}
