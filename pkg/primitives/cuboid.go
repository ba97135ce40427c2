package primitives

import (
	"github.com/Faultbox/scattermesh/pkg/math"
	"github.com/Faultbox/scattermesh/pkg/mesh"
)

// Cuboid generates an axis-aligned cube with edge length Height. Each face
// is a (Level+1)x(Level+1) grid of quads with its own texture coordinates.
type Cuboid struct{}

// Generate implements Generator.
func (Cuboid) Generate(params ShapeParameters, anchor *math.Vec3) (*mesh.TriangleMesh, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	h := params.Height
	s := h / 2
	n := params.Level + 1

	sides := []struct{ origin, du, dv math.Vec3 }{
		{math.V3(s, -s, -s), math.V3(0, 0, h), math.V3(0, h, 0)},
		{math.V3(-s, -s, -s), math.V3(0, 0, h), math.V3(0, h, 0)},
		{math.V3(-s, s, -s), math.V3(h, 0, 0), math.V3(0, 0, h)},
		{math.V3(-s, -s, -s), math.V3(h, 0, 0), math.V3(0, 0, h)},
		{math.V3(-s, -s, s), math.V3(h, 0, 0), math.V3(0, h, 0)},
		{math.V3(-s, -s, -s), math.V3(h, 0, 0), math.V3(0, h, 0)},
	}

	perSide := (n + 1) * (n + 1)
	m := &mesh.TriangleMesh{
		Points:    make([]math.Vec3, 0, 6*perSide),
		TexCoords: make([]math.Vec2, 0, 6*perSide),
		Faces:     make([]mesh.Face, 0, 6*n*n*2),
	}

	for _, side := range sides {
		start := uint32(len(m.Points))
		for j := 0; j <= n; j++ {
			for i := 0; i <= n; i++ {
				u := float32(i) / float32(n)
				v := float32(j) / float32(n)
				m.Points = append(m.Points, side.origin.Add(side.du.Scale(u)).Add(side.dv.Scale(v)))
				m.TexCoords = append(m.TexCoords, math.Vec2{X: u, Y: v})
			}
		}
		row := uint32(n + 1)
		for j := uint32(0); j < uint32(n); j++ {
			for i := uint32(0); i < uint32(n); i++ {
				a := start + j*row + i
				b := a + 1
				c := a + row
				d := c + 1
				m.Faces = append(m.Faces,
					mesh.Face{V: [3]uint32{a, b, d}, T: [3]uint32{a, b, d}},
					mesh.Face{V: [3]uint32{a, d, c}, T: [3]uint32{a, d, c}},
				)
			}
		}
	}
	orientOutward(m)

	return place(m, anchor), nil
}
