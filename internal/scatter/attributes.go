package scatter

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// CullFace selects which triangle side is discarded.
type CullFace int

const (
	CullNone CullFace = iota
	CullFront
	CullBack
)

func (c CullFace) String() string {
	switch c {
	case CullNone:
		return "none"
	case CullFront:
		return "front"
	case CullBack:
		return "back"
	default:
		return fmt.Sprintf("CullFace(%d)", int(c))
	}
}

// DrawMode selects filled or wireframe rasterization.
type DrawMode int

const (
	DrawFill DrawMode = iota
	DrawLine
)

func (d DrawMode) String() string {
	switch d {
	case DrawFill:
		return "fill"
	case DrawLine:
		return "line"
	default:
		return fmt.Sprintf("DrawMode(%d)", int(d))
	}
}

// DepthTest toggles depth testing.
type DepthTest int

const (
	DepthEnable DepthTest = iota
	DepthDisable
)

func (d DepthTest) String() string {
	if d == DepthDisable {
		return "disable"
	}
	return "enable"
}

// Attribute is a single render attribute that can be broadcast to instances.
// CullFace, DrawMode and DepthTest implement it.
type Attribute interface {
	applyTo(*RenderAttributes)
}

func (c CullFace) applyTo(r *RenderAttributes) { r.Cull = c }
func (d DrawMode) applyTo(r *RenderAttributes) { r.Draw = d }
func (d DepthTest) applyTo(r *RenderAttributes) { r.Depth = d }

// RenderAttributes are the per-instance rasterizer settings.
type RenderAttributes struct {
	Cull  CullFace
	Draw  DrawMode
	Depth DepthTest
}

// DefaultAttributes are assigned to every freshly built instance.
var DefaultAttributes = RenderAttributes{Cull: CullBack, Draw: DrawFill, Depth: DepthEnable}

// PipelineState is the GPU pipeline configuration implied by RenderAttributes.
type PipelineState struct {
	Primitive         gputypes.PrimitiveState
	DepthWriteEnabled bool
	DepthCompare      gputypes.CompareFunction
}

// PipelineState translates the attributes into WebGPU pipeline terms.
// Line mode switches to a line list, which must be fed the mesh edge
// indices (see MeshInstance.DrawIndices) rather than the triangle indices.
func (r RenderAttributes) PipelineState() PipelineState {
	ps := PipelineState{
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		DepthWriteEnabled: true,
		DepthCompare:      gputypes.CompareFunctionLess,
	}

	switch r.Cull {
	case CullFront:
		ps.Primitive.CullMode = gputypes.CullModeFront
	case CullBack:
		ps.Primitive.CullMode = gputypes.CullModeBack
	}
	if r.Draw == DrawLine {
		ps.Primitive.Topology = gputypes.PrimitiveTopologyLineList
	}
	if r.Depth == DepthDisable {
		ps.DepthWriteEnabled = false
		ps.DepthCompare = gputypes.CompareFunctionAlways
	}
	return ps
}
