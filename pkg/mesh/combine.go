package mesh

import (
	"fmt"
	stdmath "math"

	"github.com/Faultbox/scattermesh/pkg/math"
)

// Combine merges base with one translated copy of tmpl per placement point.
//
// The result holds base's buffers followed by len(points) copies of tmpl.
// Copy k is translated by points[k] and its face indices are shifted by
// |V_base| + k*|V_tmpl| (vertices) and |T_base| + k*|T_tmpl| (texcoords).
// Texture coordinates are duplicated per copy, never shared. Inputs are
// not modified.
func Combine(base, tmpl *TriangleMesh, points []math.Vec3) (*TriangleMesh, error) {
	if base.IsEmpty() {
		return nil, fmt.Errorf("%w: base mesh is empty", ErrGeometryMismatch)
	}
	if tmpl.IsEmpty() {
		return nil, fmt.Errorf("%w: template mesh is empty", ErrGeometryMismatch)
	}
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("%w: base: %w", ErrGeometryMismatch, err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("%w: template: %w", ErrGeometryMismatch, err)
	}

	k := len(points)
	nv, nt, nf := len(tmpl.Points), len(tmpl.TexCoords), len(tmpl.Faces)
	if err := checkIndexSpace("vertex", len(base.Points), nv, k); err != nil {
		return nil, err
	}
	if err := checkIndexSpace("texcoord", len(base.TexCoords), nt, k); err != nil {
		return nil, err
	}

	out := &TriangleMesh{
		Points:    make([]math.Vec3, 0, len(base.Points)+k*nv),
		TexCoords: make([]math.Vec2, 0, len(base.TexCoords)+k*nt),
		Faces:     make([]Face, 0, len(base.Faces)+k*nf),
	}
	out.Points = append(out.Points, base.Points...)
	out.TexCoords = append(out.TexCoords, base.TexCoords...)
	out.Faces = append(out.Faces, base.Faces...)

	for _, p := range points {
		vOff := uint32(len(out.Points))
		tOff := uint32(len(out.TexCoords))

		for _, v := range tmpl.Points {
			out.Points = append(out.Points, v.Add(p))
		}
		out.TexCoords = append(out.TexCoords, tmpl.TexCoords...)
		for _, f := range tmpl.Faces {
			out.Faces = append(out.Faces, Face{
				V: [3]uint32{f.V[0] + vOff, f.V[1] + vOff, f.V[2] + vOff},
				T: [3]uint32{f.T[0] + tOff, f.T[1] + tOff, f.T[2] + tOff},
			})
		}
	}

	return out, nil
}

// checkIndexSpace reports whether base + copies*per elements can all be
// addressed by a uint32 face index.
func checkIndexSpace(kind string, base, per, copies int) error {
	if per != 0 && uint64(copies) > (stdmath.MaxUint64-uint64(base))/uint64(per) {
		return fmt.Errorf("%w: %s count overflows", ErrGeometryMismatch, kind)
	}
	total := uint64(base) + uint64(per)*uint64(copies)
	if total > stdmath.MaxUint32 {
		return fmt.Errorf("%w: %d %ss exceed the uint32 index range", ErrGeometryMismatch, total, kind)
	}
	return nil
}
