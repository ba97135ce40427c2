package paint

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/Faultbox/scattermesh/pkg/math"
)

var ErrInvalidTextureMode = errors.New("invalid texture mode")

// Kind selects how a texture mode colors a mesh.
type Kind int

const (
	KindNone Kind = iota
	KindImage
	KindPattern
	KindVertices3D
	KindVertices1D
	KindFaces
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindImage:
		return "image"
	case KindPattern:
		return "pattern"
	case KindVertices3D:
		return "vertices3d"
	case KindVertices1D:
		return "vertices1d"
	case KindFaces:
		return "faces"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pattern is a procedural carbon-fiber style texture.
type Pattern int

const (
	PatternDarkCarbon Pattern = iota
	PatternLightCarbon
	PatternCarbonKevlar
	PatternGoldenCarbon
)

// DensityFunc maps a vertex position to a scalar.
type DensityFunc func(p math.Vec3) float64

// Func1D maps a per-vertex function-data value to a scalar.
type Func1D func(x float64) float64

// Range holds explicit normalization bounds.
type Range struct {
	Min, Max float64
}

// TextureMode is one complete coloring configuration for a mesh instance.
type TextureMode struct {
	Kind     Kind
	Color    color.RGBA
	Image    string
	Pattern  Pattern
	Scale    float64
	Colors   int
	Palette  Palette
	Density  DensityFunc
	Function Func1D
	Range    *Range
}

// Option customizes a data-mapped texture mode.
type Option func(*TextureMode)

// WithPalette overrides DefaultPalette.
func WithPalette(p Palette) Option {
	return func(m *TextureMode) {
		m.Palette = p
	}
}

// WithRange fixes the normalization bounds instead of using the data range.
func WithRange(min, max float64) Option {
	return func(m *TextureMode) {
		m.Range = &Range{Min: min, Max: max}
	}
}

// None is a solid DefaultColor.
func None() TextureMode {
	return TextureMode{Kind: KindNone, Color: DefaultColor}
}

// Solid is a solid color.
func Solid(c color.RGBA) TextureMode {
	return TextureMode{Kind: KindNone, Color: c}
}

// SolidImage is a solid color with an image applied on top.
func SolidImage(c color.RGBA, image string) TextureMode {
	return TextureMode{Kind: KindNone, Color: c, Image: image}
}

// Image textures with an image only.
func Image(image string) TextureMode {
	return TextureMode{Kind: KindImage, Color: DefaultColor, Image: image}
}

// PatternMode textures with a procedural pattern at the given scale.
func PatternMode(p Pattern, scale float64) TextureMode {
	return TextureMode{Kind: KindPattern, Color: DefaultColor, Pattern: p, Scale: scale}
}

// Vertices3D colors each vertex by dens(position) mapped onto colors palette entries.
func Vertices3D(colors int, dens DensityFunc, opts ...Option) TextureMode {
	return withOptions(TextureMode{Kind: KindVertices3D, Colors: colors, Density: dens}, opts)
}

// Vertices1D colors each vertex by fn(functionData[i]) mapped onto colors palette entries.
func Vertices1D(colors int, fn Func1D, opts ...Option) TextureMode {
	return withOptions(TextureMode{Kind: KindVertices1D, Colors: colors, Function: fn}, opts)
}

// Faces cycles colors palette entries over the faces.
func Faces(colors int, opts ...Option) TextureMode {
	return withOptions(TextureMode{Kind: KindFaces, Colors: colors}, opts)
}

func withOptions(m TextureMode, opts []Option) TextureMode {
	m.Color = DefaultColor
	m.Palette = DefaultPalette
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Validate checks that the fields required by Kind are set.
func (m TextureMode) Validate() error {
	switch m.Kind {
	case KindNone:
		return nil
	case KindImage:
		if m.Image == "" {
			return fmt.Errorf("%w: image mode without image", ErrInvalidTextureMode)
		}
	case KindPattern:
		if m.Scale <= 0 {
			return fmt.Errorf("%w: pattern scale must be positive, got %v", ErrInvalidTextureMode, m.Scale)
		}
	case KindVertices3D, KindVertices1D, KindFaces:
		if m.Colors < 1 {
			return fmt.Errorf("%w: %s needs at least one color, got %d", ErrInvalidTextureMode, m.Kind, m.Colors)
		}
		if m.Kind == KindVertices3D && m.Density == nil {
			return fmt.Errorf("%w: vertices3d without density function", ErrInvalidTextureMode)
		}
		if m.Kind == KindVertices1D && m.Function == nil {
			return fmt.Errorf("%w: vertices1d without function", ErrInvalidTextureMode)
		}
		if m.Range != nil && m.Range.Max < m.Range.Min {
			return fmt.Errorf("%w: range max %v below min %v", ErrInvalidTextureMode, m.Range.Max, m.Range.Min)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidTextureMode, int(m.Kind))
	}
	return nil
}

// DataMapped reports whether the mode derives colors from per-vertex or per-face data.
func (m TextureMode) DataMapped() bool {
	return m.Kind == KindVertices3D || m.Kind == KindVertices1D || m.Kind == KindFaces
}
