package renderer

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestGPUStructSizes(t *testing.T) {
	// The strides are baked into the bind group layouts and the WGSL structs;
	// a size drift here corrupts every upload.
	assert.Equal(t, uintptr(pointStride), unsafe.Sizeof(PointGPU{}))
	assert.Equal(t, uintptr(instanceStride), unsafe.Sizeof(InstanceGPU{}))
	assert.Equal(t, uintptr(96), unsafe.Sizeof(CameraGPU{}))
}

func TestCameraBytes(t *testing.T) {
	c := CameraGPU{}
	assert.Len(t, c.Bytes(), 96)
}

func TestPointBytes(t *testing.T) {
	assert.Nil(t, PointBytes(nil))
	assert.Len(t, PointBytes(make([]PointGPU, 3)), 3*pointStride)
}

func TestInstanceBytes(t *testing.T) {
	assert.Nil(t, InstanceBytes(nil))
	assert.Len(t, InstanceBytes(make([]InstanceGPU, 2)), 2*instanceStride)
}
