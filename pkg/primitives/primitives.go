// Package primitives generates the small polyhedra that are scattered at
// every point of a scatter mesh.
package primitives

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scattermesh/pkg/math"
	"github.com/Faultbox/scattermesh/pkg/mesh"
)

// MaxLevel bounds the subdivision level. Face counts grow by 4x per level.
const MaxLevel = 8

var (
	ErrInvalidShape = errors.New("invalid shape parameters")
	ErrUnknownShape = errors.New("unknown primitive shape")
)

// ShapeParameters are shared by every primitive of one build.
type ShapeParameters struct {
	Height float32
	Level  int
}

// Validate checks that height is positive and level is within [0, MaxLevel].
func (p ShapeParameters) Validate() error {
	if math32.IsNaN(p.Height) || p.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %v", ErrInvalidShape, p.Height)
	}
	if p.Level < 0 {
		return fmt.Errorf("%w: level must not be negative, got %d", ErrInvalidShape, p.Level)
	}
	if p.Level > MaxLevel {
		return fmt.Errorf("%w: level %d exceeds maximum %d", ErrInvalidShape, p.Level, MaxLevel)
	}
	return nil
}

// Generator produces the geometry of one primitive. When anchor is nil the
// primitive is centered on the origin, otherwise it is centered on *anchor.
type Generator interface {
	Generate(params ShapeParameters, anchor *math.Vec3) (*mesh.TriangleMesh, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(params ShapeParameters, anchor *math.Vec3) (*mesh.TriangleMesh, error)

// Generate calls f(params, anchor).
func (f GeneratorFunc) Generate(params ShapeParameters, anchor *math.Vec3) (*mesh.TriangleMesh, error) {
	return f(params, anchor)
}

// DefaultShape is the primitive used when no shape is configured.
const DefaultShape = "tetrahedra"

var registry = map[string]Generator{
	"tetrahedra": Tetrahedra{},
	"cuboid":     Cuboid{},
}

// Lookup returns the generator registered under name.
func Lookup(name string) (Generator, error) {
	g, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	return g, nil
}

// Names returns the registered shape names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// place translates m onto anchor when one is given.
func place(m *mesh.TriangleMesh, anchor *math.Vec3) *mesh.TriangleMesh {
	if anchor != nil {
		m.Translate(*anchor)
	}
	return m
}

// orientOutward flips faces whose normal points toward the origin.
// Only valid for convex shapes that contain the origin.
func orientOutward(m *mesh.TriangleMesh) {
	for i, f := range m.Faces {
		a, b, c := m.Points[f.V[0]], m.Points[f.V[1]], m.Points[f.V[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c).Scale(1.0 / 3)
		if n.Dot(center) < 0 {
			m.Faces[i].V[1], m.Faces[i].V[2] = f.V[2], f.V[1]
			m.Faces[i].T[1], m.Faces[i].T[2] = f.T[2], f.T[1]
		}
	}
}
