package scatter

import (
	"image/color"

	"github.com/Faultbox/scattermesh/internal/paint"
	"github.com/Faultbox/scattermesh/pkg/math"
	"github.com/Faultbox/scattermesh/pkg/mesh"
)

// MeshInstance is one drawable produced by a rebuild. The aggregator owns
// it; callers may restyle it but should treat the geometry as read-only.
type MeshInstance struct {
	id     string
	mesh   *mesh.TriangleMesh
	anchor math.Vec3
	attrs  RenderAttributes
	bounds mesh.Bounds

	texture      paint.TextureMode
	functionData []float64
	vertexColors []int
	faceColors   []int
}

func newInstance(id string, m *mesh.TriangleMesh, anchor math.Vec3) *MeshInstance {
	inst := &MeshInstance{
		id:      id,
		mesh:    m,
		anchor:  anchor,
		attrs:   DefaultAttributes,
		texture: paint.None(),
	}
	inst.UpdateTransforms()
	return inst
}

// ID returns the instance identifier: its build-order index as a string.
func (i *MeshInstance) ID() string { return i.id }

// Mesh returns the instance geometry.
func (i *MeshInstance) Mesh() *mesh.TriangleMesh { return i.mesh }

// Anchor returns the scatter point the instance geometry is centered on.
// For a fused instance this is the first scatter point.
func (i *MeshInstance) Anchor() math.Vec3 { return i.anchor }

// Attributes returns the current render attributes.
func (i *MeshInstance) Attributes() RenderAttributes { return i.attrs }

// SetAttributes replaces all render attributes.
func (i *MeshInstance) SetAttributes(attrs RenderAttributes) { i.attrs = attrs }

// ApplyAttribute sets a single render attribute.
func (i *MeshInstance) ApplyAttribute(attr Attribute) { attr.applyTo(&i.attrs) }

// SetCullFace sets the cull mode.
func (i *MeshInstance) SetCullFace(c CullFace) { i.attrs.Cull = c }

// SetDrawMode sets the draw mode.
func (i *MeshInstance) SetDrawMode(d DrawMode) { i.attrs.Draw = d }

// SetDepthTest sets the depth-test flag.
func (i *MeshInstance) SetDepthTest(d DepthTest) { i.attrs.Depth = d }

// DrawIndices returns the index buffer matching the instance's draw mode:
// triangle indices for fill, unique edge pairs for line.
func (i *MeshInstance) DrawIndices() []uint32 {
	if i.attrs.Draw == DrawLine {
		return i.mesh.EdgeIndexBuffer()
	}
	return i.mesh.IndexBuffer()
}

// Bounds returns the bounding box computed by the last UpdateTransforms.
func (i *MeshInstance) Bounds() mesh.Bounds { return i.bounds }

// UpdateTransforms recomputes derived spatial data from the geometry.
func (i *MeshInstance) UpdateTransforms() {
	i.bounds = i.mesh.Bounds()
}

// TextureMode returns the active coloring configuration.
func (i *MeshInstance) TextureMode() paint.TextureMode { return i.texture }

// SetTextureMode switches the coloring configuration and recomputes the
// per-vertex or per-face palette indices it implies. The mode must be valid.
func (i *MeshInstance) SetTextureMode(mode paint.TextureMode) {
	i.texture = mode
	i.recolor()
}

// FunctionData returns the per-vertex inputs of the 1D function mode.
func (i *MeshInstance) FunctionData() []float64 { return i.functionData }

// UpdateF replaces the per-vertex function inputs. Vertex k uses values[k];
// vertices beyond len(values) use 0. Only the 1D function mode is recolored.
func (i *MeshInstance) UpdateF(values []float64) {
	i.functionData = append([]float64(nil), values...)
	if i.texture.Kind == paint.KindVertices1D {
		i.recolor()
	}
}

// VertexColors returns the palette index of every vertex, or nil when the
// active mode is not vertex-mapped.
func (i *MeshInstance) VertexColors() []int { return i.vertexColors }

// FaceColors returns the palette index of every face, or nil when the
// active mode is not face-mapped.
func (i *MeshInstance) FaceColors() []int { return i.faceColors }

// PaletteColors returns the colors indexed by VertexColors and FaceColors.
func (i *MeshInstance) PaletteColors() []color.RGBA {
	if !i.texture.DataMapped() {
		return nil
	}
	return i.texture.Palette.Colors(i.texture.Colors)
}

func (i *MeshInstance) recolor() {
	i.vertexColors, i.faceColors = nil, nil
	mode := i.texture

	switch mode.Kind {
	case paint.KindVertices3D:
		values := make([]float64, len(i.mesh.Points))
		for k, p := range i.mesh.Points {
			values[k] = mode.Density(p)
		}
		i.vertexColors = paint.PaletteIndices(values, mode.Colors, mode.Range)
	case paint.KindVertices1D:
		values := make([]float64, len(i.mesh.Points))
		for k := range values {
			var x float64
			if k < len(i.functionData) {
				x = i.functionData[k]
			}
			values[k] = mode.Function(x)
		}
		i.vertexColors = paint.PaletteIndices(values, mode.Colors, mode.Range)
	case paint.KindFaces:
		i.faceColors = paint.CycleIndices(len(i.mesh.Faces), mode.Colors)
	}
}
