package morph

import (
	"sync"

	"github.com/chewxy/math32"
)

// Default smoothing rates, expressed as the fraction of the remaining
// distance covered per tick at the fixed engine tick rate. The morph value
// reacts faster than the camera height on purpose: snappy spread feels
// responsive, but camera motion at the same rate reads as nauseating.
const (
	DefaultMorphRate  = 0.08
	DefaultHeightRate = 0.05

	// SnapEpsilon ends the exponential approach: once the remaining distance
	// falls below it, current is set to target exactly. Without this the
	// value creeps asymptotically forever and accumulates float drift.
	SnapEpsilon = 0.001

	// Hysteresis band for the discrete mode. The mode flips to Scattered only
	// above the upper threshold and back to Assembled only below the lower
	// one, so a morph value hovering near the midpoint never flickers.
	scatterThreshold  = 0.6
	assembleThreshold = 0.4
)

// Mode is the coarse discrete state of the scene.
type Mode int

const (
	// ModeAssembled means the field is in (or heading to) the tree formation.
	ModeAssembled Mode = iota
	// ModeScattered means the field is in (or heading to) the dispersed cloud.
	ModeScattered
)

// String returns the mode name for logging.
func (m Mode) String() string {
	if m == ModeScattered {
		return "scattered"
	}
	return "assembled"
}

// Snapshot is a consistent read of every render-facing value, taken under a
// single lock acquisition so a frame never observes a half-updated pair.
type Snapshot struct {
	Morph  float32
	Height float32
	Mode   Mode
}

// value is one exponentially smoothed scalar. current approaches target by a
// fixed fractional step each tick and snaps once within SnapEpsilon.
type value struct {
	current float32
	target  float32
	rate    float32
}

func (v *value) tick() {
	d := v.target - v.current
	if math32.Abs(d) < SnapEpsilon {
		v.current = v.target
		return
	}
	v.current += d * v.rate
}

// controllerImpl is the single implementation of Controller.
type controllerImpl struct {
	mu *sync.Mutex

	morph  value
	height value
	mode   Mode
}

// Controller owns the live morph and height values and the discrete mode.
// Targets are set from gesture readings or the manual toggle; Tick is called
// by the engine tick loop and is the only writer of the current values.
// Render-side consumers read the smoothed values only, never the targets.
// Thread-safe for concurrent access.
type Controller interface {
	// Tick advances both smoothed values one step toward their targets and
	// updates the discrete mode through the hysteresis band. Must be called
	// from exactly one loop.
	Tick()

	// Morph returns the current smoothed morph progress in [0, 1].
	//
	// Returns:
	//   - float32: the smoothed morph value
	Morph() float32

	// Height returns the current smoothed height value in [0, 1].
	//
	// Returns:
	//   - float32: the smoothed height value
	Height() float32

	// Snapshot returns the morph, height, and mode read consistently under a
	// single lock acquisition. Render consumers should use this once per
	// frame instead of separate getters.
	//
	// Returns:
	//   - Snapshot: the consistent value set
	Snapshot() Snapshot

	// SetMorphTarget sets the morph target, clamped to [0, 1].
	//
	// Parameters:
	//   - t: the new target
	SetMorphTarget(t float32)

	// SetHeightTarget sets the height target, clamped to [0, 1].
	//
	// Parameters:
	//   - t: the new target
	SetHeightTarget(t float32)

	// MorphTarget returns the current morph target.
	//
	// Returns:
	//   - float32: the morph target
	MorphTarget() float32

	// HeightTarget returns the current height target.
	//
	// Returns:
	//   - float32: the height target
	HeightTarget() float32

	// Mode returns the current discrete mode.
	//
	// Returns:
	//   - Mode: the discrete mode
	Mode() Mode

	// SetAssembled drives the morph target to 0 and sets the discrete mode
	// to assembled immediately, without waiting for the hysteresis crossing.
	SetAssembled()

	// SetScattered drives the morph target to 1 and sets the discrete mode
	// to scattered immediately, without waiting for the hysteresis crossing.
	SetScattered()

	// Toggle flips the discrete mode and drives the morph target to the
	// matching extreme (0 for assembled, 1 for scattered).
	//
	// Returns:
	//   - Mode: the mode after the flip
	Toggle() Mode
}

// Compile-time interface compliance check
var _ Controller = &controllerImpl{}

// NewController creates a Controller with the default rates and both values
// at rest in the assembled state.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerOption) Controller {
	c := &controllerImpl{
		mu:     &sync.Mutex{},
		morph:  value{rate: DefaultMorphRate},
		height: value{rate: DefaultHeightRate},
		mode:   ModeAssembled,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *controllerImpl) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.morph.tick()
	c.height.tick()

	// Hysteresis: values inside (assembleThreshold, scatterThreshold) keep
	// whatever mode was last established.
	switch {
	case c.morph.current > scatterThreshold:
		c.mode = ModeScattered
	case c.morph.current < assembleThreshold:
		c.mode = ModeAssembled
	}
}

func (c *controllerImpl) Morph() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.morph.current
}

func (c *controllerImpl) Height() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height.current
}

func (c *controllerImpl) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Morph:  c.morph.current,
		Height: c.height.current,
		Mode:   c.mode,
	}
}

func (c *controllerImpl) SetMorphTarget(t float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.morph.target = clamp01(t)
}

func (c *controllerImpl) SetHeightTarget(t float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height.target = clamp01(t)
}

func (c *controllerImpl) MorphTarget() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.morph.target
}

func (c *controllerImpl) HeightTarget() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height.target
}

func (c *controllerImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *controllerImpl) SetAssembled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeAssembled
	c.morph.target = 0
}

func (c *controllerImpl) SetScattered() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeScattered
	c.morph.target = 1
}

func (c *controllerImpl) Toggle() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeAssembled {
		c.mode = ModeScattered
		c.morph.target = 1
	} else {
		c.mode = ModeAssembled
		c.morph.target = 0
	}
	return c.mode
}

func clamp01(v float32) float32 {
	if math32.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
