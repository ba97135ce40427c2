// Package scatter places a copy of a primitive shape at every point of a
// point cloud and exposes the result either as one mesh instance per point
// (exploded) or as a single fused mesh (join mode).
package scatter

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/scattermesh/internal/logger"
	"github.com/Faultbox/scattermesh/pkg/math"
	"github.com/Faultbox/scattermesh/pkg/mesh"
	"github.com/Faultbox/scattermesh/pkg/primitives"
)

// Defaults applied by New when no option overrides them.
const (
	DefaultHeight   float32 = 0.1
	DefaultLevel            = 0
	DefaultJoinMode         = true
)

// DefaultPoints returns the scatter points used when none are given.
func DefaultPoints() []math.Vec3 {
	return []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}}
}

// Aggregator owns the scatter points and shape parameters and the mesh
// instances built from them.
//
// Every change to points, height, level or join mode rebuilds the whole
// instance list once the aggregator has been built. A failed rebuild leaves
// the previous configuration and instances in place. An Aggregator is not
// safe for concurrent use.
type Aggregator struct {
	points    []math.Vec3
	params    primitives.ShapeParameters
	joinMode  bool
	generator primitives.Generator
	log       *zap.Logger

	instances    []*MeshInstance
	built        bool
	functionData []float64
}

// Option configures an Aggregator before its first build.
type Option func(*Aggregator)

// WithPoints sets the scatter points. The slice is copied.
func WithPoints(points []math.Vec3) Option {
	return func(a *Aggregator) {
		a.points = append([]math.Vec3(nil), points...)
	}
}

// WithHeight sets the primitive height.
func WithHeight(height float32) Option {
	return func(a *Aggregator) {
		a.params.Height = height
	}
}

// WithLevel sets the primitive subdivision level.
func WithLevel(level int) Option {
	return func(a *Aggregator) {
		a.params.Level = level
	}
}

// WithJoinMode selects fused (true) or exploded (false) output.
func WithJoinMode(join bool) Option {
	return func(a *Aggregator) {
		a.joinMode = join
	}
}

// WithGenerator replaces the default tetrahedron generator.
func WithGenerator(g primitives.Generator) Option {
	return func(a *Aggregator) {
		a.generator = g
	}
}

// WithLogger replaces the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		a.log = l
	}
}

// New creates an Aggregator and performs its first build.
func New(opts ...Option) (*Aggregator, error) {
	a := newAggregator(opts...)
	if err := a.Rebuild(); err != nil {
		return nil, err
	}
	return a, nil
}

// newAggregator stages the configuration without building.
func newAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		points:    DefaultPoints(),
		params:    primitives.ShapeParameters{Height: DefaultHeight, Level: DefaultLevel},
		joinMode:  DefaultJoinMode,
		generator: primitives.Tetrahedra{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Named("scatter")
	}
	return a
}

// Points returns a copy of the scatter points.
func (a *Aggregator) Points() []math.Vec3 {
	return append([]math.Vec3(nil), a.points...)
}

// Height returns the primitive height.
func (a *Aggregator) Height() float32 { return a.params.Height }

// Level returns the primitive subdivision level.
func (a *Aggregator) Level() int { return a.params.Level }

// JoinMode reports whether the instances are fused into one mesh.
func (a *Aggregator) JoinMode() bool { return a.joinMode }

// Built reports whether at least one rebuild has succeeded.
func (a *Aggregator) Built() bool { return a.built }

// SetPoints replaces the scatter points.
func (a *Aggregator) SetPoints(points []math.Vec3) error {
	old := a.points
	a.points = append([]math.Vec3(nil), points...)
	return a.invalidate(func() { a.points = old })
}

// SetHeight changes the primitive height.
func (a *Aggregator) SetHeight(height float32) error {
	old := a.params.Height
	a.params.Height = height
	return a.invalidate(func() { a.params.Height = old })
}

// SetLevel changes the primitive subdivision level.
func (a *Aggregator) SetLevel(level int) error {
	old := a.params.Level
	a.params.Level = level
	return a.invalidate(func() { a.params.Level = old })
}

// SetJoinMode switches between fused and exploded output.
func (a *Aggregator) SetJoinMode(join bool) error {
	old := a.joinMode
	a.joinMode = join
	return a.invalidate(func() { a.joinMode = old })
}

// invalidate rebuilds when already built. On failure restore undoes the
// staged field change so the configuration matches the retained instances.
func (a *Aggregator) invalidate(restore func()) error {
	if !a.built {
		return nil
	}
	if err := a.Rebuild(); err != nil {
		restore()
		return err
	}
	return nil
}

// Rebuild discards the current instances and builds new ones from the
// current configuration. On error the previous instances are kept.
func (a *Aggregator) Rebuild() error {
	instances, err := a.build()
	if err != nil {
		a.log.Warn("scatter rebuild failed",
			zap.Bool("join", a.joinMode),
			zap.Int("points", len(a.points)),
			zap.Error(err))
		return err
	}

	a.instances = instances
	a.built = true

	if ce := a.log.Check(zap.DebugLevel, "scatter rebuilt"); ce != nil {
		st := a.Stats()
		ce.Write(
			zap.Bool("join", a.joinMode),
			zap.Int("points", len(a.points)),
			zap.Int("instances", st.Instances),
			zap.Int("vertices", st.Vertices),
			zap.Int("faces", st.Faces))
	}
	return nil
}

func (a *Aggregator) build() ([]*MeshInstance, error) {
	if len(a.points) == 0 {
		return nil, fmt.Errorf("%w: no scatter points", ErrInvalidConfiguration)
	}
	if a.generator == nil {
		return nil, fmt.Errorf("%w: no primitive generator", ErrInvalidConfiguration)
	}
	if err := a.params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	if a.joinMode {
		return a.buildFused()
	}
	return a.buildExploded()
}

// buildExploded generates one standalone primitive per scatter point.
func (a *Aggregator) buildExploded() ([]*MeshInstance, error) {
	instances := make([]*MeshInstance, 0, len(a.points))
	for i := range a.points {
		p := a.points[i]
		m, err := a.generate(&p)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		instances = append(instances, newInstance(strconv.Itoa(i), m, p))
	}
	return instances, nil
}

// buildFused generates a base primitive on the first point and an
// unanchored template, then combines the base with one template copy per
// remaining point.
func (a *Aggregator) buildFused() ([]*MeshInstance, error) {
	anchor := a.points[0]
	base, err := a.generate(&anchor)
	if err != nil {
		return nil, fmt.Errorf("base primitive: %w", err)
	}
	tmpl, err := a.generate(nil)
	if err != nil {
		return nil, fmt.Errorf("template primitive: %w", err)
	}

	merged, err := mesh.Combine(base, tmpl, a.points[1:])
	if err != nil {
		return nil, err
	}
	return []*MeshInstance{newInstance("0", merged, anchor)}, nil
}

func (a *Aggregator) generate(anchor *math.Vec3) (*mesh.TriangleMesh, error) {
	m, err := a.generator.Generate(a.params, anchor)
	if err != nil {
		if errors.Is(err, primitives.ErrInvalidShape) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		return nil, err
	}
	if m.IsEmpty() {
		return nil, fmt.Errorf("%w: generator returned empty geometry", mesh.ErrGeometryMismatch)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", mesh.ErrGeometryMismatch, err)
	}
	return m, nil
}

// Instances returns the current instances in build order.
func (a *Aggregator) Instances() []*MeshInstance {
	return append([]*MeshInstance(nil), a.instances...)
}

// Len returns the number of current instances.
func (a *Aggregator) Len() int { return len(a.instances) }

// InstanceByID returns the instance with the given id, or the first
// instance when none matches. It returns nil only before the first build.
func (a *Aggregator) InstanceByID(id string) *MeshInstance {
	for _, inst := range a.instances {
		if inst.id == id {
			return inst
		}
	}
	if len(a.instances) == 0 {
		return nil
	}
	return a.instances[0]
}

// Stats summarizes the current build.
type Stats struct {
	Instances int
	Vertices  int
	Faces     int
	TexCoords int
}

// Stats totals the geometry of all current instances.
func (a *Aggregator) Stats() Stats {
	st := Stats{Instances: len(a.instances)}
	for _, inst := range a.instances {
		st.Vertices += inst.mesh.VertexCount()
		st.Faces += inst.mesh.FaceCount()
		st.TexCoords += inst.mesh.TexCoordCount()
	}
	return st
}
