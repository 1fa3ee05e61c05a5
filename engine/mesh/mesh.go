// Package mesh builds the small procedural unit meshes used for ornament
// instancing. Meshes are generated once at startup and uploaded verbatim;
// per-instance transforms are applied in the vertex stage.
package mesh

import (
	"encoding/binary"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/grove-go/common"
)

// Vertex is the GPU vertex layout: position and normal, 24 bytes, matching
// the vertex buffer layout declared by the instanced mesh pipeline.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh is an indexed triangle mesh ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// VertexBytes returns the vertex data as a byte slice view for GPU upload.
//
// Returns:
//   - []byte: byte view of the vertex slice (shares memory, do not modify)
func (m Mesh) VertexBytes() []byte {
	return common.SliceToBytes(m.Vertices)
}

// IndexBytes returns the index data encoded as little-endian uint32s.
//
// Returns:
//   - []byte: the encoded index buffer
func (m Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// IndexCount returns the number of indices, used for draw calls.
//
// Returns:
//   - int: the index count
func (m Mesh) IndexCount() int {
	return len(m.Indices)
}

// Cube builds a unit cube with per-face normals.
// 6 faces x 4 vertices = 24 vertices, 36 indices.
//
// Returns:
//   - Mesh: the cube mesh
func Cube() Mesh {
	type faceData struct {
		positions [4][3]float32
		normal    [3]float32
	}

	faces := []faceData{
		// +X
		{positions: [4][3]float32{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}}, normal: [3]float32{1, 0, 0}},
		// -X
		{positions: [4][3]float32{{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}}, normal: [3]float32{-1, 0, 0}},
		// +Y
		{positions: [4][3]float32{{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}}, normal: [3]float32{0, 1, 0}},
		// -Y
		{positions: [4][3]float32{{-0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}}, normal: [3]float32{0, -1, 0}},
		// +Z
		{positions: [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}, normal: [3]float32{0, 0, 1}},
		// -Z
		{positions: [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}, normal: [3]float32{0, 0, -1}},
	}

	vertices := make([]Vertex, 0, 24)
	for _, face := range faces {
		for _, pos := range face.positions {
			vertices = append(vertices, Vertex{Position: pos, Normal: face.normal})
		}
	}

	indices := make([]uint32, 0, 36)
	for fi := range 6 {
		base := uint32(fi * 4)
		indices = append(indices,
			base+0, base+1, base+2,
			base+0, base+2, base+3,
		)
	}

	return Mesh{Vertices: vertices, Indices: indices}
}

// Sphere builds a UV sphere of radius 0.5 with smooth normals.
// Rings and sectors below 3 are raised to 3.
//
// Parameters:
//   - rings: number of latitude bands
//   - sectors: number of longitude bands
//
// Returns:
//   - Mesh: the sphere mesh
func Sphere(rings, sectors int) Mesh {
	if rings < 3 {
		rings = 3
	}
	if sectors < 3 {
		sectors = 3
	}

	vertices := make([]Vertex, 0, (rings+1)*(sectors+1))
	for r := 0; r <= rings; r++ {
		polar := math32.Pi * float32(r) / float32(rings)
		sinP := math32.Sin(polar)
		cosP := math32.Cos(polar)
		for s := 0; s <= sectors; s++ {
			azimuth := 2 * math32.Pi * float32(s) / float32(sectors)
			n := [3]float32{
				sinP * math32.Cos(azimuth),
				cosP,
				sinP * math32.Sin(azimuth),
			}
			vertices = append(vertices, Vertex{
				Position: [3]float32{n[0] * 0.5, n[1] * 0.5, n[2] * 0.5},
				Normal:   n,
			})
		}
	}

	indices := make([]uint32, 0, rings*sectors*6)
	stride := uint32(sectors + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			indices = append(indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}

	return Mesh{Vertices: vertices, Indices: indices}
}

// Star builds the topper: an octahedron stretched along Y into a spike, with
// flat per-face normals so the facets catch light as it spins.
//
// Returns:
//   - Mesh: the star mesh
func Star() Mesh {
	top := [3]float32{0, 0.8, 0}
	bottom := [3]float32{0, -0.8, 0}
	ring := [4][3]float32{
		{0.35, 0, 0},
		{0, 0, 0.35},
		{-0.35, 0, 0},
		{0, 0, -0.35},
	}

	// 8 faces, each with its own 3 vertices for flat shading.
	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 24)
	addFace := func(a, b, c [3]float32) {
		n := faceNormal(a, b, c)
		base := uint32(len(vertices))
		vertices = append(vertices,
			Vertex{Position: a, Normal: n},
			Vertex{Position: b, Normal: n},
			Vertex{Position: c, Normal: n},
		)
		indices = append(indices, base, base+1, base+2)
	}

	for i := range 4 {
		j := (i + 1) % 4
		addFace(top, ring[j], ring[i])
		addFace(bottom, ring[i], ring[j])
	}

	return Mesh{Vertices: vertices, Indices: indices}
}

// faceNormal returns the unit normal of the triangle (a, b, c) with
// counter-clockwise winding. Degenerate triangles fall back to +Y.
func faceNormal(a, b, c [3]float32) [3]float32 {
	u := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	v := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	cross := [3]float32{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
	if n, ok := common.Normalize3(cross); ok {
		return n
	}
	return [3]float32{0, 1, 0}
}
