package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerDefaults(t *testing.T) {
	cc := NewController()
	assert.Equal(t, float32(30.0), cc.Radius())
	assert.InDelta(t, 0.4, float64(cc.Azimuth()), 1e-6)
	assert.InDelta(t, 0.35, float64(cc.Elevation()), 1e-6)
	assert.False(t, cc.AutoRotate())
}

func TestControllerPositionFromSpherical(t *testing.T) {
	cc := NewController(
		WithTarget(1, 2, 3),
		WithRadius(10),
		WithAzimuth(0),
		WithElevation(0),
	)

	// Zero angles put the camera straight along +Z from the target.
	x, y, z := cc.Position()
	assert.InDelta(t, 1.0, float64(x), 1e-5)
	assert.InDelta(t, 2.0, float64(y), 1e-5)
	assert.InDelta(t, 13.0, float64(z), 1e-5)

	tx, ty, tz := cc.Target()
	assert.Equal(t, float32(1), tx)
	assert.Equal(t, float32(2), ty)
	assert.Equal(t, float32(3), tz)
}

func TestControllerOrbit(t *testing.T) {
	cc := NewController(WithAzimuth(0), WithElevation(0))

	// Default sensitivity is 0.005 radians per pixel.
	cc.Orbit(100, 0)
	assert.InDelta(t, 0.5, float64(cc.Azimuth()), 1e-6)

	// Elevation clamps at both ends, azimuth never does.
	cc.Orbit(0, 1e6)
	assert.InDelta(t, float64(math32.Pi/2-0.1), float64(cc.Elevation()), 1e-5)
	cc.Orbit(0, -1e6)
	assert.InDelta(t, -0.3, float64(cc.Elevation()), 1e-5)
}

func TestControllerZoomClamps(t *testing.T) {
	cc := NewController()

	cc.Zoom(1e6)
	assert.Equal(t, float32(6.0), cc.Radius())

	cc.Zoom(-1e6)
	assert.Equal(t, float32(80.0), cc.Radius())

	// Custom bounds apply the same way.
	cc = NewController(WithRadiusBounds(10, 20), WithRadius(15))
	cc.Zoom(1e6)
	assert.Equal(t, float32(10.0), cc.Radius())
}

func TestControllerAutoRotate(t *testing.T) {
	cc := NewController(WithAzimuth(0), WithAutoRotateSpeed(0.5))

	// Disabled: Update is a no-op.
	cc.Update(2.0)
	assert.Equal(t, float32(0), cc.Azimuth())

	cc.SetAutoRotate(true)
	assert.True(t, cc.AutoRotate())
	cc.Update(2.0)
	assert.InDelta(t, 1.0, float64(cc.Azimuth()), 1e-6)

	// Non-positive dt never advances.
	cc.Update(0)
	cc.Update(-1)
	assert.InDelta(t, 1.0, float64(cc.Azimuth()), 1e-6)
}

func TestDirectorInitialState(t *testing.T) {
	d := NewDirector()
	assert.False(t, d.Active())

	x, y, z := d.Position()
	assert.Equal(t, float32(0), x)
	assert.InDelta(t, (DirectorHighY+DirectorLowY)/2, float64(y), 1e-5)
	assert.Equal(t, float32(DirectorDistance), z)

	tx, ty, tz := d.Target()
	assert.Equal(t, float32(0), tx)
	assert.Equal(t, float32(1), ty)
	assert.Equal(t, float32(0), tz)
}

func TestDirectorLinger(t *testing.T) {
	d := NewDirector()
	d.MarkDetected()
	assert.True(t, d.Active())

	// Inside the linger window control is retained.
	d.Update(detectionLinger / 2)
	assert.True(t, d.Active())

	// Past the window it releases.
	d.Update(detectionLinger)
	assert.False(t, d.Active())

	// A fresh detection re-engages and refreshes the window.
	d.MarkDetected()
	assert.True(t, d.Active())
}

func TestDirectorHeightMapping(t *testing.T) {
	run := func(h float32) float32 {
		d := NewDirector()
		d.SetHeight(h)
		for i := 0; i < 600; i++ {
			d.MarkDetected()
			d.Update(0.016)
		}
		_, y, _ := d.Position()
		return y
	}

	// The mapping is inverted: hand low lifts the camera, hand high drops it.
	assert.InDelta(t, DirectorHighY, float64(run(0)), 0.05)
	assert.InDelta(t, DirectorLowY, float64(run(1)), 0.05)
	assert.InDelta(t, (DirectorHighY+DirectorLowY)/2, float64(run(0.5)), 0.05)
}

func TestDirectorRetainsHeightOnRelease(t *testing.T) {
	d := NewDirector()
	d.SetHeight(0)
	for i := 0; i < 200; i++ {
		d.MarkDetected()
		d.Update(0.016)
	}
	_, before, _ := d.Position()

	// Stop detections and let the linger expire.
	d.Update(detectionLinger + 0.1)
	require.False(t, d.Active())
	_, after, _ := d.Position()
	assert.Equal(t, before, after, "camera height must not reset on handover")
}

func TestDirectorSetHeightSanitized(t *testing.T) {
	d := NewDirector()

	d.SetHeight(0.3)
	d.SetHeight(math32.NaN())
	d.MarkDetected()
	for i := 0; i < 600; i++ {
		d.MarkDetected()
		d.Update(0.016)
	}
	_, y, _ := d.Position()

	// NaN was ignored so the 0.3 signal still drives the mapping.
	want := DirectorHighY + (DirectorLowY-DirectorHighY)*0.3
	assert.InDelta(t, want, float64(y), 0.05)

	// Out-of-range values clamp.
	d.SetHeight(7)
	for i := 0; i < 600; i++ {
		d.MarkDetected()
		d.Update(0.016)
	}
	_, y, _ = d.Position()
	assert.InDelta(t, DirectorLowY, float64(y), 0.05)
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, 60.0*3.14159265/180.0, float64(c.Fov()), 1e-5)
	assert.InDelta(t, 16.0/9.0, float64(c.Aspect()), 1e-5)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(500), c.Far())
	assert.NotNil(t, c.Controller())
	assert.NotNil(t, c.Director())
}

func TestCameraSetAspect(t *testing.T) {
	c := NewCamera()
	before := c.ViewProjectionMatrix()

	// Invalid aspect is ignored.
	c.SetAspect(0)
	assert.Equal(t, before, c.ViewProjectionMatrix())

	c.SetAspect(2.0)
	assert.Equal(t, float32(2.0), c.Aspect())
	assert.NotEqual(t, before, c.ViewProjectionMatrix())
}

func TestCameraBasisOrthonormal(t *testing.T) {
	c := NewCamera()
	c.Update(0.016)

	right, up := c.Basis()
	rl := math32.Sqrt(right[0]*right[0] + right[1]*right[1] + right[2]*right[2])
	ul := math32.Sqrt(up[0]*up[0] + up[1]*up[1] + up[2]*up[2])
	assert.InDelta(t, 1.0, float64(rl), 1e-4)
	assert.InDelta(t, 1.0, float64(ul), 1e-4)

	dot := right[0]*up[0] + right[1]*up[1] + right[2]*up[2]
	assert.InDelta(t, 0.0, float64(dot), 1e-4)
}

func TestCameraSourceSelection(t *testing.T) {
	c := NewCamera()
	c.Update(0.016)
	orbitView := c.ViewProjectionMatrix()

	// Engaging the director switches the position source.
	c.Director().SetHeight(0)
	c.Director().MarkDetected()
	c.Update(0.016)
	directed := c.ViewProjectionMatrix()
	assert.NotEqual(t, orbitView, directed)

	// Once the linger expires the orbit controller takes back over.
	c.Update(detectionLinger + 0.1)
	require.False(t, c.Director().Active())
	released := c.ViewProjectionMatrix()
	assert.Equal(t, orbitView, released)
}

func TestCameraBuilderGuards(t *testing.T) {
	c := NewCamera(
		WithFov(-1),
		WithNear(0),
		WithFar(-5),
		WithAspect(-2),
	)
	assert.InDelta(t, 60.0*3.14159265/180.0, float64(c.Fov()), 1e-5)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(500), c.Far())
	assert.InDelta(t, 16.0/9.0, float64(c.Aspect()), 1e-5)
}
