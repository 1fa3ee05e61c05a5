package camera

import (
	"sync"

	"github.com/chewxy/math32"
)

// Director height mapping. The mapping is inverted on purpose: a hand held
// high pushes the camera low so the viewer looks up through the tree, and a
// hand held low lifts the camera into a look-down.
const (
	// DirectorHighY is the camera height when the hand signal is 0.
	DirectorHighY = 12.0
	// DirectorLowY is the camera height when the hand signal is 1.
	DirectorLowY = -3.0
	// DirectorDistance is the fixed horizontal standoff from scene center.
	DirectorDistance = 26.0

	// directorDamping is the exponential approach rate. The per-update
	// factor is 1-exp(-damping*dt), so the motion stays smooth at variable
	// frame rates instead of stepping by a fixed fraction.
	directorDamping = 4.0

	// detectionLinger keeps gesture control engaged briefly after the last
	// detection, so a single dropped recognizer frame does not bounce the
	// camera between control modes.
	detectionLinger = 0.75
)

// directorImpl is the single implementation of Director.
type directorImpl struct {
	mu *sync.Mutex

	active bool
	linger float32

	height float32 // latest smoothed height signal in [0, 1]
	camY   float32 // damped camera height, retained across deactivation

	lookTarget [3]float32
}

// Director drives the camera from the smoothed gesture height signal. It is
// a two-state machine: Inactive until a hand is detected, GestureActive
// while detections keep arriving (with a short linger), and back to Inactive
// on loss — retaining the last camera height rather than resetting, so the
// handover to orbit control is visually continuous. Thread-safe for
// concurrent access.
type Director interface {
	// MarkDetected records a detection this frame, engaging gesture control
	// and refreshing the linger window.
	MarkDetected()

	// Active reports whether gesture control currently owns the camera.
	//
	// Returns:
	//   - bool: true while gesture control is engaged
	Active() bool

	// SetHeight feeds the latest smoothed height signal. NaN and
	// out-of-range values are sanitized before use.
	//
	// Parameters:
	//   - h: the smoothed height in [0, 1]
	SetHeight(h float32)

	// Update expires the linger window and advances the damped camera
	// height toward the mapped target. Call once per tick.
	//
	// Parameters:
	//   - dt: elapsed time since the last update in seconds
	Update(dt float32)

	// Position returns the director's camera position.
	//
	// Returns:
	//   - x, y, z: the camera position in world space
	Position() (x, y, z float32)

	// Target returns the fixed look target near scene center.
	//
	// Returns:
	//   - x, y, z: the look target in world space
	Target() (x, y, z float32)
}

// Compile-time interface compliance check
var _ Director = &directorImpl{}

// NewDirector creates a Director resting at the midpoint camera height.
//
// Returns:
//   - Director: the newly created director
func NewDirector() Director {
	return &directorImpl{
		mu:         &sync.Mutex{},
		height:     0.5,
		camY:       (DirectorHighY + DirectorLowY) / 2,
		lookTarget: [3]float32{0, 1, 0},
	}
}

func (d *directorImpl) MarkDetected() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = true
	d.linger = detectionLinger
}

func (d *directorImpl) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

func (d *directorImpl) SetHeight(h float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if math32.IsNaN(h) {
		return
	}
	if h < 0 {
		h = 0
	}
	if h > 1 {
		h = 1
	}
	d.height = h
}

func (d *directorImpl) Update(dt float32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if dt <= 0 {
		return
	}

	if d.active {
		d.linger -= dt
		if d.linger <= 0 {
			// Hand lost: release control but keep camY where it is.
			d.active = false
			return
		}
	}
	if !d.active {
		return
	}

	targetY := DirectorHighY + (DirectorLowY-DirectorHighY)*d.height
	factor := 1 - math32.Exp(-directorDamping*dt)
	d.camY += (targetY - d.camY) * factor
}

func (d *directorImpl) Position() (x, y, z float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return 0, d.camY, DirectorDistance
}

func (d *directorImpl) Target() (x, y, z float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookTarget[0], d.lookTarget[1], d.lookTarget[2]
}
