package morph

// ControllerOption is a functional option for configuring a Controller.
// Use the With* functions to create options that are applied directly to the
// controller instance.
type ControllerOption func(*controllerImpl)

// WithMorphRate sets the per-tick smoothing rate for the morph value.
// Values outside (0, 1] fall back to the default.
//
// Parameters:
//   - rate: fraction of the remaining distance covered per tick
//
// Returns:
//   - ControllerOption: option function to apply
func WithMorphRate(rate float32) ControllerOption {
	return func(c *controllerImpl) {
		if rate <= 0 || rate > 1 {
			rate = DefaultMorphRate
		}
		c.morph.rate = rate
	}
}

// WithHeightRate sets the per-tick smoothing rate for the height value.
// Values outside (0, 1] fall back to the default.
//
// Parameters:
//   - rate: fraction of the remaining distance covered per tick
//
// Returns:
//   - ControllerOption: option function to apply
func WithHeightRate(rate float32) ControllerOption {
	return func(c *controllerImpl) {
		if rate <= 0 || rate > 1 {
			rate = DefaultHeightRate
		}
		c.height.rate = rate
	}
}

// WithInitialHeight sets both the current and target height, so the camera
// starts at a chosen elevation instead of snapping up from zero.
//
// Parameters:
//   - h: the initial height in [0, 1]
//
// Returns:
//   - ControllerOption: option function to apply
func WithInitialHeight(h float32) ControllerOption {
	return func(c *controllerImpl) {
		h = clamp01(h)
		c.height.current = h
		c.height.target = h
	}
}
