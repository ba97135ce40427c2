package scatter

import (
	"image/color"

	"github.com/Faultbox/scattermesh/internal/paint"
)

// Broadcasts below fan out to every current instance in build order. None of
// them is remembered across a rebuild: new instances start untextured with
// DefaultAttributes.

// ApplyTextureMode sets mode on every instance. An invalid mode is rejected
// before any instance is touched.
func (a *Aggregator) ApplyTextureMode(mode paint.TextureMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	for _, inst := range a.instances {
		inst.SetTextureMode(mode)
	}
	return nil
}

// SetTextureModeNone colors every instance with paint.DefaultColor.
func (a *Aggregator) SetTextureModeNone() error {
	return a.ApplyTextureMode(paint.None())
}

// SetTextureModeSolid colors every instance with c.
func (a *Aggregator) SetTextureModeSolid(c color.RGBA) error {
	return a.ApplyTextureMode(paint.Solid(c))
}

// SetTextureModeSolidImage colors every instance with c and overlays image.
func (a *Aggregator) SetTextureModeSolidImage(c color.RGBA, image string) error {
	return a.ApplyTextureMode(paint.SolidImage(c, image))
}

// SetTextureModeImage textures every instance with image.
func (a *Aggregator) SetTextureModeImage(image string) error {
	return a.ApplyTextureMode(paint.Image(image))
}

// SetTextureModePattern textures every instance with a procedural pattern.
func (a *Aggregator) SetTextureModePattern(p paint.Pattern, scale float64) error {
	return a.ApplyTextureMode(paint.PatternMode(p, scale))
}

// SetTextureModeVertices3D colors vertices by a density function of position.
func (a *Aggregator) SetTextureModeVertices3D(colors int, dens paint.DensityFunc, opts ...paint.Option) error {
	return a.ApplyTextureMode(paint.Vertices3D(colors, dens, opts...))
}

// SetTextureModeVertices1D colors vertices by fn applied to the function data.
func (a *Aggregator) SetTextureModeVertices1D(colors int, fn paint.Func1D, opts ...paint.Option) error {
	return a.ApplyTextureMode(paint.Vertices1D(colors, fn, opts...))
}

// SetTextureModeFaces cycles palette colors over faces.
func (a *Aggregator) SetTextureModeFaces(colors int, opts ...paint.Option) error {
	return a.ApplyTextureMode(paint.Faces(colors, opts...))
}

// ApplyUniformAttribute sets one render attribute on every instance.
func (a *Aggregator) ApplyUniformAttribute(attr Attribute) {
	for _, inst := range a.instances {
		inst.ApplyAttribute(attr)
	}
}

// SetDrawMode sets the draw mode on every instance.
func (a *Aggregator) SetDrawMode(mode DrawMode) {
	a.ApplyUniformAttribute(mode)
}

// UpdateTransforms refreshes derived spatial data on every instance.
func (a *Aggregator) UpdateTransforms() {
	for _, inst := range a.instances {
		inst.UpdateTransforms()
	}
}

// FunctionData returns the values last passed to SetFunctionData.
func (a *Aggregator) FunctionData() []float64 {
	return append([]float64(nil), a.functionData...)
}

// SetFunctionData forwards per-vertex function inputs to every instance.
// Only coloring changes; geometry is not rebuilt.
func (a *Aggregator) SetFunctionData(values []float64) {
	a.functionData = append([]float64(nil), values...)
	if !a.built {
		return
	}
	for _, inst := range a.instances {
		inst.UpdateF(a.functionData)
	}
}
