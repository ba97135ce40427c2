package mesh

import (
	"errors"
	"testing"

	"github.com/Faultbox/scattermesh/pkg/math"
)

// triangle returns a one-face mesh with a single shared texcoord per vertex.
func triangle() *TriangleMesh {
	return &TriangleMesh{
		Points:    []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		TexCoords: []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Faces:     []Face{{V: [3]uint32{0, 1, 2}, T: [3]uint32{0, 1, 2}}},
	}
}

func TestValidate(t *testing.T) {
	m := triangle()
	if err := m.Validate(); err != nil {
		t.Fatalf("valid mesh rejected: %v", err)
	}

	m.Faces = append(m.Faces, Face{V: [3]uint32{0, 1, 3}, T: [3]uint32{0, 1, 2}})
	if err := m.Validate(); !errors.Is(err, ErrDanglingIndex) {
		t.Errorf("expected ErrDanglingIndex for vertex, got %v", err)
	}

	m = triangle()
	m.Faces[0].T[2] = 9
	if err := m.Validate(); !errors.Is(err, ErrDanglingIndex) {
		t.Errorf("expected ErrDanglingIndex for texcoord, got %v", err)
	}
}

func TestBoundsAndCentroid(t *testing.T) {
	m := triangle()
	b := m.Bounds()
	if b.Min != (math.Vec3{}) || b.Max != (math.Vec3{X: 1, Y: 1}) {
		t.Errorf("unexpected bounds %+v", b)
	}
	if got := b.Size(); got != (math.Vec3{X: 1, Y: 1}) {
		t.Errorf("Size() = %v", got)
	}

	c := m.Centroid()
	want := math.V3(1.0/3, 1.0/3, 0)
	if !c.ApproxEqual(want, 1e-6) {
		t.Errorf("Centroid() = %v, want %v", c, want)
	}

	empty := &TriangleMesh{}
	if empty.Bounds() != (Bounds{}) {
		t.Error("expected zero bounds for empty mesh")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := triangle()
	c := m.Clone()
	c.Translate(math.V3(5, 5, 5))
	if m.Points[0] != (math.Vec3{}) {
		t.Error("translating a clone modified the original")
	}
	if m.Equal(c) {
		t.Error("translated clone should not be equal")
	}
	if !m.Equal(m.Clone()) {
		t.Error("fresh clone should be equal")
	}
}

func TestFlatBuffers(t *testing.T) {
	m := triangle()
	pos := m.PositionBuffer()
	if len(pos) != 9 || pos[3] != 1 || pos[7] != 1 {
		t.Errorf("unexpected position buffer %v", pos)
	}
	idx := m.IndexBuffer()
	if len(idx) != 3 || idx[0] != 0 || idx[2] != 2 {
		t.Errorf("unexpected index buffer %v", idx)
	}
}

func TestEdgeIndexBuffer(t *testing.T) {
	// Two triangles sharing the 1-2 edge.
	m := &TriangleMesh{
		Points:    []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}},
		TexCoords: []math.Vec2{{X: 0, Y: 0}},
		Faces: []Face{
			{V: [3]uint32{0, 1, 2}},
			{V: [3]uint32{2, 1, 3}},
		},
	}

	edges := m.EdgeIndexBuffer()
	if len(edges) != 10 {
		t.Fatalf("got %d indices, want 10 (5 unique edges)", len(edges))
	}

	set := make(map[[2]uint32]bool)
	for i := 0; i < len(edges); i += 2 {
		a, b := edges[i], edges[i+1]
		if a > b {
			a, b = b, a
		}
		if set[[2]uint32{a, b}] {
			t.Errorf("edge %d-%d listed twice", a, b)
		}
		set[[2]uint32{a, b}] = true
	}
	for fi, f := range m.Faces {
		for j := 0; j < 3; j++ {
			a, b := f.V[j], f.V[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			if !set[[2]uint32{a, b}] {
				t.Errorf("face %d edge %d-%d missing", fi, a, b)
			}
		}
	}
}
