package camera

import (
	"sync"

	"github.com/Carmen-Shannon/grove-go/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	up [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller Controller
	director   Director
}

// Camera holds perspective settings and computes view/projection matrices
// each frame from either the gesture Director (when active) or the free
// orbit Controller. Thread-safe for concurrent access.
type Camera interface {
	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetAspect sets the aspect ratio and recomputes the projection matrix.
	// Call on window resize.
	//
	// Parameters:
	//   - aspect: the new aspect ratio
	SetAspect(aspect float32)

	// ViewProjectionMatrix returns the combined view-projection matrix as 16
	// floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Basis returns the camera's world-space right and up vectors, derived
	// from the view matrix. The point renderer uses these to expand
	// camera-facing billboards.
	//
	// Returns:
	//   - right: the world-space right vector
	//   - up: the world-space up vector
	Basis() (right, up [3]float32)

	// Controller returns the attached orbit controller.
	//
	// Returns:
	//   - Controller: the orbit controller
	Controller() Controller

	// Director returns the attached gesture director.
	//
	// Returns:
	//   - Director: the gesture director
	Director() Director

	// Update advances the director's damping and the controller's
	// auto-rotation by dt, picks the active source (director when gesture
	// control is engaged, orbit controller otherwise), and recomputes the
	// matrices. Call once per tick.
	//
	// Parameters:
	//   - dt: elapsed time since the last update in seconds
	Update(dt float32)
}

// Compile-time interface compliance check
var _ Camera = &cameraImpl{}

// NewCamera creates a camera with sensible perspective defaults, a free
// orbit controller, and a gesture director.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		fov:    float32(60.0 * 3.14159265 / 180.0),
		aspect: 16.0 / 9.0,
		near:   0.1,
		far:    500,
	}

	for _, option := range options {
		option(c)
	}

	if c.controller == nil {
		c.controller = NewController()
	}
	if c.director == nil {
		c.director = NewDirector()
	}

	c.recompute()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.recompute()
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Basis() (right, up [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Rows of the view rotation are the camera axes in world space.
	right = [3]float32{c.viewMatrix[0], c.viewMatrix[4], c.viewMatrix[8]}
	up = [3]float32{c.viewMatrix[1], c.viewMatrix[5], c.viewMatrix[9]}
	return right, up
}

func (c *cameraImpl) Controller() Controller {
	return c.controller
}

func (c *cameraImpl) Director() Director {
	return c.director
}

func (c *cameraImpl) Update(dt float32) {
	c.director.Update(dt)
	c.controller.Update(dt)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.recompute()
}

// recompute rebuilds the matrices from the active position source.
// Caller must hold the mutex.
func (c *cameraImpl) recompute() {
	var eyeX, eyeY, eyeZ, tX, tY, tZ float32
	if c.director != nil && c.director.Active() {
		eyeX, eyeY, eyeZ = c.director.Position()
		tX, tY, tZ = c.director.Target()
	} else if c.controller != nil {
		eyeX, eyeY, eyeZ = c.controller.Position()
		tX, tY, tZ = c.controller.Target()
	}

	common.LookAt(c.viewMatrix[:], eyeX, eyeY, eyeZ, tX, tY, tZ, c.up[0], c.up[1], c.up[2])
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
