package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0.5), Clamp(0.5, 0, 1))
	assert.Equal(t, float32(0), Clamp(-3, 0, 1))
	assert.Equal(t, float32(1), Clamp(7, 0, 1))
}

func TestLerp3Endpoints(t *testing.T) {
	a := [3]float32{1, 2, 3}
	b := [3]float32{-4, 0, 10}
	assert.Equal(t, a, Lerp3(a, b, 0))
	assert.Equal(t, b, Lerp3(a, b, 1))

	mid := Lerp3(a, b, 0.5)
	assert.InDelta(t, -1.5, float64(mid[0]), 1e-6)
	assert.InDelta(t, 1.0, float64(mid[1]), 1e-6)
	assert.InDelta(t, 6.5, float64(mid[2]), 1e-6)
}

func TestSmoothstep(t *testing.T) {
	assert.Equal(t, float32(0), Smoothstep(0, 1, -0.5))
	assert.Equal(t, float32(1), Smoothstep(0, 1, 1.5))
	assert.InDelta(t, 0.5, float64(Smoothstep(0, 1, 0.5)), 1e-6)

	// Monotonic over the edge span.
	prev := float32(-1)
	for i := 0; i <= 20; i++ {
		v := Smoothstep(0, 1, float32(i)/20)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestEaseInOutCubic(t *testing.T) {
	assert.Equal(t, float32(0), EaseInOutCubic(0))
	assert.Equal(t, float32(1), EaseInOutCubic(1))
	assert.InDelta(t, 0.5, float64(EaseInOutCubic(0.5)), 1e-6)

	// Out-of-range input is clamped, not extrapolated.
	assert.Equal(t, float32(0), EaseInOutCubic(-2))
	assert.Equal(t, float32(1), EaseInOutCubic(3))
}

func TestNormalize3(t *testing.T) {
	v, ok := Normalize3([3]float32{3, 0, 4})
	assert.True(t, ok)
	assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(v[2]), 1e-6)

	// Degenerate input reports false instead of producing NaN.
	zero, ok := Normalize3([3]float32{0, 0, 0})
	assert.False(t, ok)
	assert.Equal(t, [3]float32{}, zero)
}

func TestSanitize01(t *testing.T) {
	assert.Equal(t, float32(0), Sanitize01(math32.NaN()))
	assert.Equal(t, float32(0), Sanitize01(-0.3))
	assert.Equal(t, float32(1), Sanitize01(2.5))
	assert.Equal(t, float32(0.42), Sanitize01(0.42))
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))

	b := SliceToBytes([]float32{1.0})
	assert.Len(t, b, 4)
}

func TestBuildModelMatrixTranslationAndScale(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 1, 2, 3, 0, 0, 0, 2)

	// No rotation: diagonal carries the scale, last column the translation.
	assert.InDelta(t, 2.0, float64(m[0]), 1e-6)
	assert.InDelta(t, 2.0, float64(m[5]), 1e-6)
	assert.InDelta(t, 2.0, float64(m[10]), 1e-6)
	assert.Equal(t, float32(1), m[12])
	assert.Equal(t, float32(2), m[13])
	assert.Equal(t, float32(3), m[14])
	assert.Equal(t, float32(1), m[15])
}

func TestMul4Identity(t *testing.T) {
	var id, other, out [16]float32
	Identity(id[:])
	for i := range other {
		other[i] = float32(i)
	}
	Mul4(out[:], id[:], other[:])
	assert.Equal(t, other, out)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	Perspective(p[:], math32.Pi/3, 16.0/9.0, 0.1, 500)

	// WebGPU convention markers: w receives -z, and [15] is zero.
	assert.Equal(t, float32(-1), p[11])
	assert.Equal(t, float32(0), p[15])
	assert.Less(t, p[10], float32(0))
}
