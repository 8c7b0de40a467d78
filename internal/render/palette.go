package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// defaultColors are the matplotlib cycle colors C0..C9 and a few names.
var defaultColors = map[string]string{
	"C0":    "#1f77b4",
	"C1":    "#ff7f0e",
	"C2":    "#2ca02c",
	"C3":    "#d62728",
	"C4":    "#9467bd",
	"C5":    "#8c564b",
	"C6":    "#e377c2",
	"C7":    "#7f7f7f",
	"C8":    "#bcbd22",
	"C9":    "#17becf",
	"black": "#000000",
	"gray":  "#808080",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
}

// fallback is used for tokens without a color.
var fallback = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Palette maps group tokens to colors.
type Palette map[string]colorful.Color

// NewPalette returns the default token colors with overrides applied.
// Override values are "#rrggbb" strings.
func NewPalette(overrides map[string]string) (Palette, error) {
	p := Palette{}
	for token, hex := range defaultColors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, err
		}
		p[token] = c
	}
	for token, hex := range overrides {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("render: color for %q: %w", token, err)
		}
		p[token] = c
	}
	return p, nil
}

func (p Palette) lookup(token string) colorful.Color {
	if c, ok := p[token]; ok {
		return c
	}
	return fallback
}

// Color returns the color of token.
func (p Palette) Color(token string) color.Color {
	return p.lookup(token)
}

// Hex returns the color of token as "#rrggbb".
func (p Palette) Hex(token string) string {
	return p.lookup(token).Hex()
}

// diverging is a blue-white-red color map for values in [-1, 1].
type diverging []color.Color

func newDiverging(n int) diverging {
	low, _ := colorful.Hex("#3b4cc0")
	mid, _ := colorful.Hex("#f7f7f7")
	high, _ := colorful.Hex("#b40426")

	colors := make(diverging, n)
	for i := range colors {
		t := float64(i) / float64(n-1)
		if t < 0.5 {
			colors[i] = low.BlendLab(mid, t*2).Clamped()
		} else {
			colors[i] = mid.BlendLab(high, (t-0.5)*2).Clamped()
		}
	}
	return colors
}

// Colors implements palette.Palette.
func (d diverging) Colors() []color.Color { return d }
