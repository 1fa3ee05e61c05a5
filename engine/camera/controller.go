package camera

import (
	"sync"

	"github.com/chewxy/math32"
)

// controllerImpl is the single implementation of Controller. Orbit methods
// modify spherical coordinates around the target and recompute the cached
// position.
type controllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position [3]float32
	target   [3]float32

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	// Input sensitivity
	mouseSensitivity float32
	zoomSpeed        float32

	// Idle auto-rotation
	autoRotate      bool
	autoRotateSpeed float32 // radians per second
}

// Controller is the free-orbit camera control: spherical coordinates around
// a look target with radius/elevation clamps, mouse-drag orbiting, scroll
// zoom, and an optional idle auto-rotation. It is the position source while
// gesture control is inactive. Thread-safe for concurrent access.
type Controller interface {
	// Position returns the computed camera position.
	//
	// Returns:
	//   - x, y, z: the camera position in world space
	Position() (x, y, z float32)

	// Target returns the orbit target.
	//
	// Returns:
	//   - x, y, z: the look target in world space
	Target() (x, y, z float32)

	// SetTarget sets the orbit target and recomputes the position.
	//
	// Parameters:
	//   - x, y, z: the new look target
	SetTarget(x, y, z float32)

	// Orbit applies a mouse drag delta to azimuth and elevation, scaled by
	// the mouse sensitivity. Elevation is clamped to its bounds.
	//
	// Parameters:
	//   - dx: horizontal drag delta in pixels
	//   - dy: vertical drag delta in pixels
	Orbit(dx, dy float32)

	// Zoom moves the camera along the view ray by delta scroll steps,
	// clamped to the radius bounds.
	//
	// Parameters:
	//   - delta: scroll delta (positive = zoom in)
	Zoom(delta float32)

	// Radius returns the current orbit radius.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// Azimuth returns the current azimuth angle in radians.
	//
	// Returns:
	//   - float32: the azimuth angle
	Azimuth() float32

	// Elevation returns the current elevation angle in radians.
	//
	// Returns:
	//   - float32: the elevation angle
	Elevation() float32

	// SetAutoRotate enables or disables the idle auto-rotation applied by
	// Update.
	//
	// Parameters:
	//   - enabled: whether auto-rotation is active
	SetAutoRotate(enabled bool)

	// AutoRotate reports whether idle auto-rotation is enabled.
	//
	// Returns:
	//   - bool: true if auto-rotation is active
	AutoRotate() bool

	// Update advances the idle auto-rotation by dt. No-op when auto-rotation
	// is disabled.
	//
	// Parameters:
	//   - dt: elapsed time since the last update in seconds
	Update(dt float32)
}

// Compile-time interface compliance check
var _ Controller = &controllerImpl{}

// NewController creates an orbit controller with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerOption) Controller {
	cc := &controllerImpl{
		mu:     &sync.Mutex{},
		target: [3]float32{0, 0, 0},

		radius:    30.0,
		azimuth:   0.4,
		elevation: 0.35,

		minRadius:    6.0,
		maxRadius:    80.0,
		minElevation: -0.3,
		maxElevation: math32.Pi/2 - 0.1,

		mouseSensitivity: 0.005,
		zoomSpeed:        2.0,

		autoRotateSpeed: 0.25,
	}

	for _, option := range options {
		option(cc)
	}

	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Must be called whenever radius, azimuth, elevation, or target changes.
// Caller must hold the mutex.
func (cc *controllerImpl) updatePosition() {
	cosElev := math32.Cos(cc.elevation)
	sinElev := math32.Sin(cc.elevation)
	cosAzim := math32.Cos(cc.azimuth)
	sinAzim := math32.Sin(cc.azimuth)

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

func (cc *controllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *controllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *controllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target[0] = x
	cc.target[1] = y
	cc.target[2] = z
	cc.updatePosition()
}

func (cc *controllerImpl) Orbit(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.azimuth += dx * cc.mouseSensitivity
	cc.elevation += dy * cc.mouseSensitivity
	if cc.elevation < cc.minElevation {
		cc.elevation = cc.minElevation
	}
	if cc.elevation > cc.maxElevation {
		cc.elevation = cc.maxElevation
	}
	cc.updatePosition()
}

func (cc *controllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.radius -= delta * cc.zoomSpeed
	if cc.radius < cc.minRadius {
		cc.radius = cc.minRadius
	}
	if cc.radius > cc.maxRadius {
		cc.radius = cc.maxRadius
	}
	cc.updatePosition()
}

func (cc *controllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *controllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *controllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *controllerImpl) SetAutoRotate(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.autoRotate = enabled
}

func (cc *controllerImpl) AutoRotate() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.autoRotate
}

func (cc *controllerImpl) Update(dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if !cc.autoRotate || dt <= 0 {
		return
	}
	cc.azimuth += cc.autoRotateSpeed * dt
	cc.updatePosition()
}
