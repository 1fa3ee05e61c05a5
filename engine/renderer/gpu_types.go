package renderer

import "github.com/Carmen-Shannon/grove-go/common"

// CameraGPU is the camera uniform block shared by both pipelines.
// Layout matches the WGSL Camera struct: a column-major view-projection
// matrix followed by the camera's world-space right and up vectors (the
// billboard basis, padded to vec4). 96 bytes.
type CameraGPU struct {
	ViewProj [16]float32
	Right    [4]float32
	Up       [4]float32
}

// PointGPU is one particle in the point storage buffer. Layout matches the
// WGSL Point struct: position+size in the first vec4, color+glow in the
// second. 32 bytes per particle.
type PointGPU struct {
	Position [3]float32
	Size     float32
	Color    [3]float32
	Glow     float32
}

// InstanceGPU is one ornament in a mesh instance storage buffer: a
// column-major model matrix and an RGBA color. 80 bytes per instance.
type InstanceGPU struct {
	Model [16]float32
	Color [4]float32
}

// pointStride is the byte size of one PointGPU element.
const pointStride = 32

// instanceStride is the byte size of one InstanceGPU element.
const instanceStride = 80

// Bytes returns the uniform block as a byte slice view for GPU upload.
//
// Returns:
//   - []byte: byte view of the struct (shares memory, do not modify)
func (c *CameraGPU) Bytes() []byte {
	return common.SliceToBytes([]CameraGPU{*c})
}

// PointBytes returns the point slice as a byte slice view for GPU upload.
//
// Parameters:
//   - points: the packed point data
//
// Returns:
//   - []byte: byte view of the slice (shares memory, do not modify)
func PointBytes(points []PointGPU) []byte {
	return common.SliceToBytes(points)
}

// InstanceBytes returns the instance slice as a byte slice view for GPU upload.
//
// Parameters:
//   - instances: the packed instance data
//
// Returns:
//   - []byte: byte view of the slice (shares memory, do not modify)
func InstanceBytes(instances []InstanceGPU) []byte {
	return common.SliceToBytes(instances)
}
