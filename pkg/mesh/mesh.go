// Package mesh provides the indexed triangle mesh shared by the primitive
// generators and the scatter aggregator, plus the combiner that fuses
// translated copies of a mesh into one buffer.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/scattermesh/pkg/math"
)

var (
	ErrGeometryMismatch = errors.New("geometry mismatch")
	ErrDanglingIndex    = errors.New("face references missing vertex or texcoord")
)

// Face is one triangle. V indexes Points, T indexes TexCoords.
type Face struct {
	V [3]uint32
	T [3]uint32
}

// TriangleMesh is an indexed triangle mesh with separate vertex and
// texture coordinate index spaces.
type TriangleMesh struct {
	Points    []math.Vec3
	TexCoords []math.Vec2
	Faces     []Face
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Midpoint(b.Max)
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// VertexCount returns the number of vertices.
func (m *TriangleMesh) VertexCount() int {
	return len(m.Points)
}

// TexCoordCount returns the number of texture coordinates.
func (m *TriangleMesh) TexCoordCount() int {
	return len(m.TexCoords)
}

// FaceCount returns the number of triangles.
func (m *TriangleMesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no vertices or no faces.
func (m *TriangleMesh) IsEmpty() bool {
	return m == nil || len(m.Points) == 0 || len(m.Faces) == 0
}

// Validate checks that every face index is in range.
func (m *TriangleMesh) Validate() error {
	nv := uint32(len(m.Points))
	nt := uint32(len(m.TexCoords))
	for i, f := range m.Faces {
		for j := 0; j < 3; j++ {
			if f.V[j] >= nv {
				return fmt.Errorf("%w: face %d vertex %d (have %d)", ErrDanglingIndex, i, f.V[j], nv)
			}
			if f.T[j] >= nt {
				return fmt.Errorf("%w: face %d texcoord %d (have %d)", ErrDanglingIndex, i, f.T[j], nt)
			}
		}
	}
	return nil
}

// Bounds returns the bounding box of all points. An empty mesh has a zero box.
func (m *TriangleMesh) Bounds() Bounds {
	if len(m.Points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Points[0], Max: m.Points[0]}
	for _, p := range m.Points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Centroid returns the average of all points.
func (m *TriangleMesh) Centroid() math.Vec3 {
	if len(m.Points) == 0 {
		return math.Vec3{}
	}
	var sum math.Vec3
	for _, p := range m.Points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(m.Points)))
}

// Clone returns a deep copy.
func (m *TriangleMesh) Clone() *TriangleMesh {
	return &TriangleMesh{
		Points:    append([]math.Vec3(nil), m.Points...),
		TexCoords: append([]math.Vec2(nil), m.TexCoords...),
		Faces:     append([]Face(nil), m.Faces...),
	}
}

// Translate moves every point by offset in place.
func (m *TriangleMesh) Translate(offset math.Vec3) {
	for i := range m.Points {
		m.Points[i] = m.Points[i].Add(offset)
	}
}

// Equal reports whether two meshes hold identical buffers.
func (m *TriangleMesh) Equal(other *TriangleMesh) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.Points) != len(other.Points) ||
		len(m.TexCoords) != len(other.TexCoords) ||
		len(m.Faces) != len(other.Faces) {
		return false
	}
	for i := range m.Points {
		if m.Points[i] != other.Points[i] {
			return false
		}
	}
	for i := range m.TexCoords {
		if m.TexCoords[i] != other.TexCoords[i] {
			return false
		}
	}
	for i := range m.Faces {
		if m.Faces[i] != other.Faces[i] {
			return false
		}
	}
	return true
}

// PositionBuffer returns positions flattened as x,y,z triples.
func (m *TriangleMesh) PositionBuffer() []float32 {
	buf := make([]float32, 0, len(m.Points)*3)
	for _, p := range m.Points {
		buf = append(buf, p.X, p.Y, p.Z)
	}
	return buf
}

// IndexBuffer returns the vertex indices of all faces, three per triangle.
func (m *TriangleMesh) IndexBuffer() []uint32 {
	buf := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		buf = append(buf, f.V[0], f.V[1], f.V[2])
	}
	return buf
}

// EdgeIndexBuffer returns each undirected face edge once as a pair of
// vertex indices, in first-seen order. It is the index buffer for drawing
// the mesh as a line list.
func (m *TriangleMesh) EdgeIndexBuffer() []uint32 {
	type edge struct{ a, b uint32 }
	seen := make(map[edge]struct{}, len(m.Faces)*3/2)
	buf := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		for j := 0; j < 3; j++ {
			a, b := f.V[j], f.V[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			if _, ok := seen[edge{a, b}]; ok {
				continue
			}
			seen[edge{a, b}] = struct{}{}
			buf = append(buf, a, b)
		}
	}
	return buf
}
