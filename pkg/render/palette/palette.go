// Package palette assigns fill colors to treemap color codes.
//
// Colors come from a wheel of [NumColors] pastel hues (saturation 0.4, value
// 1.0). A [ColorKey] sorts the codes it is given and spaces them evenly
// around the wheel, so the same set of codes always gets the same colors.
package palette

import (
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/treemap/pkg/treemap"
)

const (
	// NumColors is the number of hues on the color wheel.
	NumColors = 512

	saturation = 0.4
	value      = 1.0
)

// Gray is used for codes the key does not know.
var Gray = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

var wheel = buildWheel()

func buildWheel() []colorful.Color {
	w := make([]colorful.Color, NumColors)
	for i := range w {
		// Hues run from 0 to 360 inclusive; the last one wraps back to red.
		hue := math.Mod(360*float64(i)/float64(NumColors-1), 360)
		w[i] = colorful.Hsv(hue, saturation, value).Clamped()
	}
	return w
}

// Wheel returns the color at position i of the wheel, wrapping around.
func Wheel(i int) colorful.Color {
	i %= NumColors
	if i < 0 {
		i += NumColors
	}
	return wheel[i]
}

// ColorKey maps a fixed set of color codes to colors.
type ColorKey struct {
	codes  []treemap.ColorCode
	colors map[string]colorful.Color
}

// NewColorKey builds a key for codes. Duplicates are ignored. Codes are
// sorted and assigned wheel positions NumColors/len(codes) apart, starting at
// position 0.
func NewColorKey(codes []treemap.ColorCode) *ColorKey {
	k := &ColorKey{colors: make(map[string]colorful.Color)}
	for _, c := range codes {
		if _, dup := k.colors[c.Key()]; dup {
			continue
		}
		k.colors[c.Key()] = colorful.Color{}
		k.codes = append(k.codes, slices.Clone(c))
	}
	slices.SortFunc(k.codes, func(a, b treemap.ColorCode) int { return slices.Compare(a, b) })

	if len(k.codes) == 0 {
		return k
	}
	step := max(1, NumColors/len(k.codes))
	for i, c := range k.codes {
		k.colors[c.Key()] = Wheel(i * step)
	}
	return k
}

// Color returns the color for code, or [Gray] if the key does not contain it.
func (k *ColorKey) Color(code treemap.ColorCode) colorful.Color {
	if c, ok := k.colors[code.Key()]; ok {
		return c
	}
	return Gray
}

// Hex returns Color(code) as a "#rrggbb" string.
func (k *ColorKey) Hex(code treemap.ColorCode) string {
	return k.Color(code).Hex()
}

// Codes returns the codes of the key in sorted order.
func (k *ColorKey) Codes() []treemap.ColorCode {
	out := make([]treemap.ColorCode, len(k.codes))
	for i, c := range k.codes {
		out[i] = slices.Clone(c)
	}
	return out
}

// Len returns the number of distinct codes.
func (k *ColorKey) Len() int { return len(k.codes) }

// Contrast returns black or white, whichever reads better on bg.
func Contrast(bg colorful.Color) colorful.Color {
	_, _, l := bg.Hcl()
	if l > 0.55 {
		return colorful.Color{}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}
