package camera

// CameraOption is a functional option for configuring a Camera.
// Use the With* functions to create options that are applied directly to the
// camera instance.
type CameraOption func(*cameraImpl)

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraOption: option function to apply
func WithFov(fov float32) CameraOption {
	return func(c *cameraImpl) {
		if fov > 0 {
			c.fov = fov
		}
	}
}

// WithAspect sets the initial aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraOption: option function to apply
func WithAspect(aspect float32) CameraOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//
// Returns:
//   - CameraOption: option function to apply
func WithNear(near float32) CameraOption {
	return func(c *cameraImpl) {
		if near > 0 {
			c.near = near
		}
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraOption: option function to apply
func WithFar(far float32) CameraOption {
	return func(c *cameraImpl) {
		if far > 0 {
			c.far = far
		}
	}
}

// WithController attaches a pre-configured orbit controller.
//
// Parameters:
//   - controller: the controller to attach
//
// Returns:
//   - CameraOption: option function to apply
func WithController(controller Controller) CameraOption {
	return func(c *cameraImpl) {
		c.controller = controller
	}
}

// WithDirector attaches a pre-configured gesture director.
//
// Parameters:
//   - director: the director to attach
//
// Returns:
//   - CameraOption: option function to apply
func WithDirector(director Director) CameraOption {
	return func(c *cameraImpl) {
		c.director = director
	}
}

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controllerImpl)

// WithRadius sets the initial orbit radius.
//
// Parameters:
//   - radius: the orbit radius
//
// Returns:
//   - ControllerOption: option function to apply
func WithRadius(radius float32) ControllerOption {
	return func(cc *controllerImpl) {
		if radius > 0 {
			cc.radius = radius
		}
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - minRadius: the closest allowed radius
//   - maxRadius: the farthest allowed radius
//
// Returns:
//   - ControllerOption: option function to apply
func WithRadiusBounds(minRadius, maxRadius float32) ControllerOption {
	return func(cc *controllerImpl) {
		if minRadius > 0 && maxRadius > minRadius {
			cc.minRadius = minRadius
			cc.maxRadius = maxRadius
		}
	}
}

// WithTarget sets the orbit target.
//
// Parameters:
//   - x, y, z: the look target in world space
//
// Returns:
//   - ControllerOption: option function to apply
func WithTarget(x, y, z float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.target = [3]float32{x, y, z}
	}
}

// WithAzimuth sets the initial azimuth angle in radians.
//
// Parameters:
//   - azimuth: the azimuth angle
//
// Returns:
//   - ControllerOption: option function to apply
func WithAzimuth(azimuth float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial elevation angle in radians.
//
// Parameters:
//   - elevation: the elevation angle
//
// Returns:
//   - ControllerOption: option function to apply
func WithElevation(elevation float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.elevation = elevation
	}
}

// WithZoomSpeed sets the scroll zoom speed.
//
// Parameters:
//   - speed: radius change per scroll step
//
// Returns:
//   - ControllerOption: option function to apply
func WithZoomSpeed(speed float32) ControllerOption {
	return func(cc *controllerImpl) {
		if speed > 0 {
			cc.zoomSpeed = speed
		}
	}
}

// WithMouseSensitivity sets the orbit drag sensitivity.
//
// Parameters:
//   - sensitivity: radians per pixel of drag
//
// Returns:
//   - ControllerOption: option function to apply
func WithMouseSensitivity(sensitivity float32) ControllerOption {
	return func(cc *controllerImpl) {
		if sensitivity > 0 {
			cc.mouseSensitivity = sensitivity
		}
	}
}

// WithAutoRotateSpeed sets the idle auto-rotation speed.
//
// Parameters:
//   - speed: radians per second
//
// Returns:
//   - ControllerOption: option function to apply
func WithAutoRotateSpeed(speed float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.autoRotateSpeed = speed
	}
}
