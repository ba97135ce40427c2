package scatter

import (
	"errors"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/scattermesh/pkg/math"
	"github.com/Faultbox/scattermesh/pkg/mesh"
	"github.com/Faultbox/scattermesh/pkg/primitives"
)

// recordingGenerator wraps a generator and records every anchor it receives.
type recordingGenerator struct {
	inner   primitives.Generator
	anchors []*math.Vec3
}

func (g *recordingGenerator) Generate(p primitives.ShapeParameters, anchor *math.Vec3) (*mesh.TriangleMesh, error) {
	if anchor != nil {
		a := *anchor
		g.anchors = append(g.anchors, &a)
	} else {
		g.anchors = append(g.anchors, nil)
	}
	return g.inner.Generate(p, anchor)
}

func newRecorder() *recordingGenerator {
	return &recordingGenerator{inner: primitives.Tetrahedra{}}
}

func mustNew(t *testing.T, opts ...Option) *Aggregator {
	t.Helper()
	opts = append([]Option{WithLogger(zap.NewNop())}, opts...)
	a, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a
}

func templateCounts(t *testing.T, gen primitives.Generator, params primitives.ShapeParameters) (int, int) {
	t.Helper()
	m, err := gen.Generate(params, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return m.VertexCount(), m.FaceCount()
}

func TestNewDefaults(t *testing.T) {
	a := mustNew(t)

	if !a.Built() {
		t.Fatal("expected aggregator to be built")
	}
	if !a.JoinMode() {
		t.Error("expected join mode by default")
	}
	if a.Height() != DefaultHeight || a.Level() != DefaultLevel {
		t.Errorf("unexpected shape %v/%d", a.Height(), a.Level())
	}
	if got := a.Points(); len(got) != 3 || got[2] != math.V3(2, 2, 2) {
		t.Errorf("unexpected default points %v", got)
	}

	// Three tetrahedra fused: base + two template copies.
	if a.Len() != 1 {
		t.Fatalf("expected 1 instance, got %d", a.Len())
	}
	inst := a.Instances()[0]
	if inst.ID() != "0" {
		t.Errorf("expected id 0, got %q", inst.ID())
	}
	if inst.Mesh().VertexCount() != 12 || inst.Mesh().FaceCount() != 12 {
		t.Errorf("unexpected fused size %d/%d", inst.Mesh().VertexCount(), inst.Mesh().FaceCount())
	}
	if inst.Attributes() != DefaultAttributes {
		t.Errorf("unexpected attributes %+v", inst.Attributes())
	}
}

func TestExplodedInstances(t *testing.T) {
	points := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}}
	a := mustNew(t, WithPoints(points), WithJoinMode(false))

	if a.Len() != len(points) {
		t.Fatalf("expected %d instances, got %d", len(points), a.Len())
	}
	params := primitives.ShapeParameters{Height: DefaultHeight, Level: DefaultLevel}
	for i, inst := range a.Instances() {
		if inst.ID() != strconv.Itoa(i) {
			t.Errorf("instance %d has id %q", i, inst.ID())
		}
		if inst.Anchor() != points[i] {
			t.Errorf("instance %d anchored at %v, want %v", i, inst.Anchor(), points[i])
		}
		want, _ := primitives.Tetrahedra{}.Generate(params, &points[i])
		if !inst.Mesh().Equal(want) {
			t.Errorf("instance %d geometry is not the primitive at its point", i)
		}
		if inst.Attributes() != DefaultAttributes {
			t.Errorf("instance %d attributes %+v", i, inst.Attributes())
		}
	}
}

func TestFusedCounts(t *testing.T) {
	tests := []struct {
		name   string
		gen    primitives.Generator
		points int
		level  int
	}{
		{"tetra single point", primitives.Tetrahedra{}, 1, 0},
		{"tetra three points", primitives.Tetrahedra{}, 3, 0},
		{"tetra subdivided", primitives.Tetrahedra{}, 5, 2},
		{"cuboid", primitives.Cuboid{}, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]math.Vec3, tt.points)
			for i := range points {
				points[i] = math.V3(float32(i), float32(-i), float32(2*i))
			}
			a := mustNew(t, WithPoints(points), WithLevel(tt.level), WithGenerator(tt.gen))

			nv, nf := templateCounts(t, tt.gen, primitives.ShapeParameters{Height: DefaultHeight, Level: tt.level})
			inst := a.InstanceByID("0")
			if a.Len() != 1 || inst.ID() != "0" {
				t.Fatalf("expected single instance 0, got %d", a.Len())
			}
			// Base and template come from the same generator, so |V_b| == |V_t|.
			if got, want := inst.Mesh().VertexCount(), nv+(tt.points-1)*nv; got != want {
				t.Errorf("vertex count = %d, want %d", got, want)
			}
			if got, want := inst.Mesh().FaceCount(), nf+(tt.points-1)*nf; got != want {
				t.Errorf("face count = %d, want %d", got, want)
			}
			if err := inst.Mesh().Validate(); err != nil {
				t.Errorf("fused mesh has dangling indices: %v", err)
			}
		})
	}
}

func TestFusedGeometryPlacement(t *testing.T) {
	points := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}}
	a := mustNew(t, WithPoints(points))

	params := primitives.ShapeParameters{Height: DefaultHeight}
	tmpl, _ := primitives.Tetrahedra{}.Generate(params, nil)
	base, _ := primitives.Tetrahedra{}.Generate(params, &points[0])

	got := a.Instances()[0].Mesh()
	nv := tmpl.VertexCount()
	for i := range base.Points {
		if got.Points[i] != base.Points[i] {
			t.Errorf("base vertex %d = %v, want %v", i, got.Points[i], base.Points[i])
		}
	}
	for k, p := range points[1:] {
		for i, v := range tmpl.Points {
			if got.Points[nv+k*nv+i] != v.Add(p) {
				t.Errorf("copy %d vertex %d not translated to %v", k, i, p)
			}
		}
	}
}

func TestGeneratorCalls(t *testing.T) {
	points := []math.Vec3{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}}

	t.Run("fused", func(t *testing.T) {
		rec := newRecorder()
		mustNew(t, WithPoints(points), WithGenerator(rec))
		if len(rec.anchors) != 2 {
			t.Fatalf("expected 2 generator calls, got %d", len(rec.anchors))
		}
		if rec.anchors[0] == nil || *rec.anchors[0] != points[0] {
			t.Errorf("base anchored at %v, want %v", rec.anchors[0], points[0])
		}
		if rec.anchors[1] != nil {
			t.Errorf("template should be unanchored, got %v", *rec.anchors[1])
		}
	})

	t.Run("exploded", func(t *testing.T) {
		rec := newRecorder()
		mustNew(t, WithPoints(points), WithGenerator(rec), WithJoinMode(false))
		if len(rec.anchors) != len(points) {
			t.Fatalf("expected %d generator calls, got %d", len(points), len(rec.anchors))
		}
		for i, anchor := range rec.anchors {
			if anchor == nil || *anchor != points[i] {
				t.Errorf("call %d anchored at %v, want %v", i, anchor, points[i])
			}
		}
	})
}

func TestRebuildIdempotent(t *testing.T) {
	for _, join := range []bool{true, false} {
		a := mustNew(t, WithJoinMode(join), WithLevel(1))
		first := a.Instances()
		if err := a.Rebuild(); err != nil {
			t.Fatalf("Rebuild failed: %v", err)
		}
		second := a.Instances()

		if len(first) != len(second) {
			t.Fatalf("join=%v: instance count changed %d -> %d", join, len(first), len(second))
		}
		for i := range first {
			if first[i] == second[i] {
				t.Errorf("join=%v: instance %d survived the rebuild", join, i)
			}
			if !first[i].Mesh().Equal(second[i].Mesh()) {
				t.Errorf("join=%v: instance %d geometry differs after rebuild", join, i)
			}
		}
	}
}

func TestModeSwitch(t *testing.T) {
	points := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0}, {X: 0, Y: 3, Z: 0}, {X: 0, Y: 0, Z: 3}, {X: 3, Y: 3, Z: 3}}
	a := mustNew(t, WithPoints(points), WithJoinMode(false))
	original := a.Instances()

	if err := a.SetJoinMode(true); err != nil {
		t.Fatalf("SetJoinMode(true) failed: %v", err)
	}
	if a.Len() != 1 {
		t.Errorf("expected 1 fused instance, got %d", a.Len())
	}

	if err := a.SetJoinMode(false); err != nil {
		t.Fatalf("SetJoinMode(false) failed: %v", err)
	}
	if a.Len() != len(points) {
		t.Fatalf("expected %d instances, got %d", len(points), a.Len())
	}
	for i, inst := range a.Instances() {
		if inst.ID() != original[i].ID() || !inst.Mesh().Equal(original[i].Mesh()) {
			t.Errorf("instance %d differs after mode round trip", i)
		}
	}
}

func TestInstanceByID(t *testing.T) {
	a := mustNew(t, WithJoinMode(false))

	if got := a.InstanceByID("2"); got == nil || got.ID() != "2" {
		t.Errorf("InstanceByID(2) = %v", got)
	}
	if got := a.InstanceByID("nonexistent"); got == nil || got.ID() != "0" {
		t.Errorf("expected fallback to first instance, got %v", got)
	}

	staged := newAggregator(WithLogger(zap.NewNop()))
	if staged.InstanceByID("0") != nil {
		t.Error("expected nil before the first build")
	}
}

func TestSettersStageBeforeBuild(t *testing.T) {
	rec := newRecorder()
	a := newAggregator(WithGenerator(rec), WithLogger(zap.NewNop()))

	if err := a.SetPoints(nil); err != nil {
		t.Errorf("staging empty points should not fail: %v", err)
	}
	if err := a.SetHeight(-1); err != nil {
		t.Errorf("staging bad height should not fail: %v", err)
	}
	if err := a.SetPoints([]math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}); err != nil {
		t.Fatal(err)
	}
	if err := a.SetHeight(0.5); err != nil {
		t.Fatal(err)
	}
	if err := a.SetLevel(1); err != nil {
		t.Fatal(err)
	}
	if err := a.SetJoinMode(false); err != nil {
		t.Fatal(err)
	}

	if len(rec.anchors) != 0 || a.Built() || a.Len() != 0 {
		t.Fatalf("setters rebuilt before the first build (%d calls)", len(rec.anchors))
	}

	if err := a.Rebuild(); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if a.Len() != 2 || len(rec.anchors) != 2 {
		t.Errorf("expected 2 instances from 2 calls, got %d/%d", a.Len(), len(rec.anchors))
	}
}

func TestSettersRebuildAfterBuild(t *testing.T) {
	a := mustNew(t, WithJoinMode(false))

	if err := a.SetLevel(1); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}
	if got := a.Instances()[0].Mesh().VertexCount(); got != 10 {
		t.Errorf("expected subdivided primitive with 10 vertices, got %d", got)
	}

	if err := a.SetHeight(2); err != nil {
		t.Fatalf("SetHeight failed: %v", err)
	}
	if size := a.Instances()[0].Bounds().Size(); size.Y < 1.999 || size.Y > 2.001 {
		t.Errorf("expected height 2 after SetHeight, got %v", size.Y)
	}

	if err := a.SetPoints([]math.Vec3{{X: 5, Y: 5, Z: 5}}); err != nil {
		t.Fatalf("SetPoints failed: %v", err)
	}
	if a.Len() != 1 || a.Instances()[0].Anchor() != math.V3(5, 5, 5) {
		t.Error("SetPoints did not rebuild with the new point")
	}
}

func TestEmptyPoints(t *testing.T) {
	if _, err := New(WithPoints(nil), WithLogger(zap.NewNop())); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration from New, got %v", err)
	}

	a := mustNew(t)
	before := a.Instances()
	err := a.SetPoints([]math.Vec3{})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if len(a.Points()) != 3 {
		t.Errorf("points changed after failed rebuild: %v", a.Points())
	}
	after := a.Instances()
	if len(after) != len(before) || after[0] != before[0] {
		t.Error("instances changed after failed rebuild")
	}
}

func TestInvalidShapeKeepsState(t *testing.T) {
	a := mustNew(t)
	before := a.Instances()[0]

	err := a.SetHeight(0)
	if !errors.Is(err, ErrInvalidConfiguration) || !errors.Is(err, primitives.ErrInvalidShape) {
		t.Errorf("expected invalid configuration wrapping invalid shape, got %v", err)
	}
	if a.Height() != DefaultHeight {
		t.Errorf("height not restored, got %v", a.Height())
	}

	if err := a.SetLevel(-1); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for negative level, got %v", err)
	}
	if a.Level() != DefaultLevel {
		t.Errorf("level not restored, got %d", a.Level())
	}
	if a.Instances()[0] != before {
		t.Error("instances replaced by a failed rebuild")
	}
}

func TestJoinModeFailureRestoresMode(t *testing.T) {
	gen := primitives.GeneratorFunc(func(p primitives.ShapeParameters, anchor *math.Vec3) (*mesh.TriangleMesh, error) {
		if anchor == nil {
			return &mesh.TriangleMesh{}, nil
		}
		return primitives.Tetrahedra{}.Generate(p, anchor)
	})

	a := mustNew(t, WithJoinMode(false), WithGenerator(gen))
	err := a.SetJoinMode(true)
	if !errors.Is(err, mesh.ErrGeometryMismatch) {
		t.Fatalf("expected ErrGeometryMismatch, got %v", err)
	}
	if a.JoinMode() {
		t.Error("join mode not restored after failure")
	}
	if a.Len() != 3 {
		t.Errorf("expected exploded instances to remain, got %d", a.Len())
	}
}

func TestGeneratorErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	gen := primitives.GeneratorFunc(func(primitives.ShapeParameters, *math.Vec3) (*mesh.TriangleMesh, error) {
		return nil, boom
	})
	_, err := New(WithGenerator(gen), WithLogger(zap.NewNop()))
	if !errors.Is(err, boom) {
		t.Errorf("expected generator error, got %v", err)
	}
	if errors.Is(err, ErrInvalidConfiguration) {
		t.Error("generator failure should not be reported as invalid configuration")
	}
}

func TestExplodedRejectsDanglingGeometry(t *testing.T) {
	gen := primitives.GeneratorFunc(func(primitives.ShapeParameters, *math.Vec3) (*mesh.TriangleMesh, error) {
		return &mesh.TriangleMesh{
			Points:    []math.Vec3{{}},
			TexCoords: []math.Vec2{{}},
			Faces:     []mesh.Face{{V: [3]uint32{0, 5, 9}}},
		}, nil
	})

	for _, join := range []bool{true, false} {
		t.Run(strconv.FormatBool(join), func(t *testing.T) {
			_, err := New(WithGenerator(gen), WithJoinMode(join), WithLogger(zap.NewNop()))
			if !errors.Is(err, mesh.ErrGeometryMismatch) {
				t.Errorf("expected geometry mismatch, got %v", err)
			}
			if !errors.Is(err, mesh.ErrDanglingIndex) {
				t.Errorf("expected dangling index cause, got %v", err)
			}
		})
	}
}

func TestStats(t *testing.T) {
	a := mustNew(t, WithJoinMode(false))
	st := a.Stats()
	if st.Instances != 3 || st.Vertices != 12 || st.Faces != 12 || st.TexCoords != 12 {
		t.Errorf("unexpected stats %+v", st)
	}
}
