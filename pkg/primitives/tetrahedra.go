package primitives

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scattermesh/pkg/math"
	"github.com/Faultbox/scattermesh/pkg/mesh"
)

// Tetrahedra generates a regular tetrahedron whose height (base plane to
// apex) equals ShapeParameters.Height, centered on its centroid. Each level
// splits every triangle into four through its edge midpoints.
type Tetrahedra struct{}

// Generate implements Generator.
func (Tetrahedra) Generate(params ShapeParameters, anchor *math.Vec3) (*mesh.TriangleMesh, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	h := params.Height
	edge := h / math32.Sqrt(2.0/3.0)
	r := edge / math32.Sqrt(3)

	points := []math.Vec3{{X: 0, Y: 0.75 * h, Z: 0}}
	for i := 0; i < 3; i++ {
		angle := 2 * math32.Pi * float32(i) / 3
		points = append(points, math.Vec3{X: r * math32.Cos(angle), Y: -0.25 * h, Z: r * math32.Sin(angle)})
	}
	tris := [][3]uint32{{0, 1, 2}, {0, 2, 3}, {0, 3, 1}, {1, 3, 2}}

	for l := 0; l < params.Level; l++ {
		points, tris = subdivide(points, tris)
	}

	m := &mesh.TriangleMesh{
		Points:    points,
		TexCoords: make([]math.Vec2, len(points)),
		Faces:     make([]mesh.Face, len(tris)),
	}
	for i, p := range points {
		m.TexCoords[i] = math.Vec2{
			X: 0.5 + math32.Atan2(p.Z, p.X)/(2*math32.Pi),
			Y: clamp01(0.75 - p.Y/h),
		}
	}
	for i, t := range tris {
		m.Faces[i] = mesh.Face{V: t, T: t}
	}
	orientOutward(m)

	return place(m, anchor), nil
}

// subdivide splits each triangle into four, sharing edge midpoints.
func subdivide(points []math.Vec3, tris [][3]uint32) ([]math.Vec3, [][3]uint32) {
	mids := make(map[[2]uint32]uint32)
	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{a, b}
		if b < a {
			key = [2]uint32{b, a}
		}
		if idx, ok := mids[key]; ok {
			return idx
		}
		idx := uint32(len(points))
		points = append(points, points[a].Midpoint(points[b]))
		mids[key] = idx
		return idx
	}

	out := make([][3]uint32, 0, len(tris)*4)
	for _, t := range tris {
		ab := midpoint(t[0], t[1])
		bc := midpoint(t[1], t[2])
		ca := midpoint(t[2], t[0])
		out = append(out,
			[3]uint32{t[0], ab, ca},
			[3]uint32{ab, t[1], bc},
			[3]uint32{ca, bc, t[2]},
			[3]uint32{ab, bc, ca},
		)
	}
	return points, out
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}
