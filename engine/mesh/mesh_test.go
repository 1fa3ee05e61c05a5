package mesh

import (
	"encoding/binary"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireIndicesInRange(t *testing.T, m Mesh) {
	t.Helper()
	for i, idx := range m.Indices {
		require.Less(t, int(idx), len(m.Vertices), "index %d out of range", i)
	}
}

func TestCube(t *testing.T) {
	c := Cube()
	assert.Len(t, c.Vertices, 24)
	assert.Len(t, c.Indices, 36)
	assert.Equal(t, 36, c.IndexCount())
	requireIndicesInRange(t, c)

	for i, v := range c.Vertices {
		// Unit cube corners.
		for axis := 0; axis < 3; axis++ {
			require.InDelta(t, 0.5, math32.Abs(v.Position[axis]), 1e-6, "vertex %d not on the cube surface", i)
		}
		// Axis-aligned unit normals.
		l := math32.Sqrt(v.Normal[0]*v.Normal[0] + v.Normal[1]*v.Normal[1] + v.Normal[2]*v.Normal[2])
		require.InDelta(t, 1.0, float64(l), 1e-6)
	}
}

func TestSphere(t *testing.T) {
	const rings, sectors = 12, 18
	s := Sphere(rings, sectors)

	assert.Len(t, s.Vertices, (rings+1)*(sectors+1))
	assert.Len(t, s.Indices, rings*sectors*6)
	requireIndicesInRange(t, s)

	for i, v := range s.Vertices {
		r := math32.Sqrt(v.Position[0]*v.Position[0] + v.Position[1]*v.Position[1] + v.Position[2]*v.Position[2])
		require.InDelta(t, 0.5, float64(r), 1e-5, "vertex %d off the sphere surface", i)

		nl := math32.Sqrt(v.Normal[0]*v.Normal[0] + v.Normal[1]*v.Normal[1] + v.Normal[2]*v.Normal[2])
		require.InDelta(t, 1.0, float64(nl), 1e-5, "vertex %d normal not unit length", i)

		// Smooth shading: the normal points along the position.
		dot := v.Normal[0]*v.Position[0] + v.Normal[1]*v.Position[1] + v.Normal[2]*v.Position[2]
		require.InDelta(t, 0.5, float64(dot), 1e-5)
	}
}

func TestSphereMinimumResolution(t *testing.T) {
	s := Sphere(1, 1)
	assert.Len(t, s.Vertices, 4*4)
	assert.Len(t, s.Indices, 3*3*6)
}

func TestStar(t *testing.T) {
	s := Star()
	assert.Len(t, s.Vertices, 24)
	assert.Len(t, s.Indices, 24)
	requireIndicesInRange(t, s)

	// Flat shading: the three vertices of each face share one unit normal.
	for f := 0; f < 8; f++ {
		n0 := s.Vertices[f*3].Normal
		for v := 1; v < 3; v++ {
			require.Equal(t, n0, s.Vertices[f*3+v].Normal, "face %d normals differ", f)
		}
		l := math32.Sqrt(n0[0]*n0[0] + n0[1]*n0[1] + n0[2]*n0[2])
		require.InDelta(t, 1.0, float64(l), 1e-5)
	}
}

func TestIndexBytesLittleEndian(t *testing.T) {
	m := Mesh{Indices: []uint32{0, 1, 0x01020304}}
	b := m.IndexBytes()
	require.Len(t, b, 12)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(b[0:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(b[4:]))
	assert.Equal(t, uint32(0x01020304), binary.LittleEndian.Uint32(b[8:]))
}

func TestVertexBytesLayout(t *testing.T) {
	m := Cube()
	// 24 bytes per vertex: position and normal, three float32 each.
	assert.Len(t, m.VertexBytes(), len(m.Vertices)*24)
}
