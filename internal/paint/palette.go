// Package paint describes how a mesh instance is colored: solid colors,
// images, procedural patterns and palette-mapped data values.
package paint

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Palette is an ordered list of color stops sampled by linear interpolation.
type Palette struct {
	Name  string
	Stops []color.RGBA
}

var (
	Rainbow = Palette{Name: "rainbow", Stops: []color.RGBA{
		colornames.Red, colornames.Orange, colornames.Yellow,
		colornames.Green, colornames.Blue, colornames.Indigo, colornames.Violet,
	}}
	Greens = Palette{Name: "greens", Stops: []color.RGBA{
		colornames.Darkgreen, colornames.Forestgreen, colornames.Limegreen, colornames.Palegreen,
	}}
	Grays = Palette{Name: "grays", Stops: []color.RGBA{colornames.Black, colornames.White}}
	Heat  = Palette{Name: "heat", Stops: []color.RGBA{
		colornames.Darkblue, colornames.Cyan, colornames.Yellow, colornames.Orangered, colornames.Darkred,
	}}
)

// DefaultPalette is used by data-mapped modes that do not name one.
var DefaultPalette = Rainbow

// DefaultColor is the diffuse color of an untextured instance.
var DefaultColor = colornames.White

var palettes = map[string]Palette{
	Rainbow.Name: Rainbow,
	Greens.Name:  Greens,
	Grays.Name:   Grays,
	Heat.Name:    Heat,
}

// LookupPalette returns a built-in palette by name.
func LookupPalette(name string) (Palette, bool) {
	p, ok := palettes[strings.ToLower(name)]
	return p, ok
}

// ParseColor resolves an SVG color name such as "steelblue".
func ParseColor(name string) (color.RGBA, error) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

// At samples the palette at t in [0, 1]. Values outside are clamped.
func (p Palette) At(t float64) color.RGBA {
	switch len(p.Stops) {
	case 0:
		return DefaultColor
	case 1:
		return p.Stops[0]
	}
	if t <= 0 {
		return p.Stops[0]
	}
	if t >= 1 {
		return p.Stops[len(p.Stops)-1]
	}

	pos := t * float64(len(p.Stops)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := p.Stops[i], p.Stops[i+1]
	return color.RGBA{
		R: lerp8(a.R, b.R, frac),
		G: lerp8(a.G, b.G, frac),
		B: lerp8(a.B, b.B, frac),
		A: lerp8(a.A, b.A, frac),
	}
}

// Colors returns n evenly spaced samples from first to last stop.
func (p Palette) Colors(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []color.RGBA{p.At(0)}
	}
	out := make([]color.RGBA, n)
	for i := range out {
		out[i] = p.At(float64(i) / float64(n-1))
	}
	return out
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
