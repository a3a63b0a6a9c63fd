package treemap

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/treemap/pkg/errors"
)

// ColorCode identifies the group a rectangle is colored by. It is a non-empty
// sequence of strings; the default code is a single empty string.
type ColorCode []string

// DefaultColorCode is the code given to rectangles constructed without one.
func DefaultColorCode() ColorCode { return ColorCode{""} }

// Key returns a string form of the code that is unique per distinct code,
// suitable as a map key.
func (c ColorCode) Key() string { return strings.Join(c, "\x1f") }

// String joins the code's parts with " / " for display.
func (c ColorCode) String() string { return strings.Join(c, " / ") }

// Equal reports whether two codes have the same parts.
func (c ColorCode) Equal(o ColorCode) bool { return slices.Equal(c, o) }

// Rectangle is an immutable, axis-aligned rectangle with a label and a color
// code. The origin is the top-left corner in the coordinate system of the
// enclosing bounding box.
//
// Construct rectangles with [NewRectangle]; the zero value is a degenerate
// rectangle at the origin with an empty color code.
type Rectangle struct {
	x, y          float64
	width, height float64
	label         string
	colorCode     ColorCode
}

// NewRectangle validates and constructs a Rectangle.
//
// The origin and size must be non-negative finite numbers. A nil colorCode
// selects [DefaultColorCode]; an explicitly empty one is rejected. Failures
// carry the VALIDATION code.
func NewRectangle(x, y, width, height float64, label string, colorCode ColorCode) (Rectangle, error) {
	if err := validatePair("origin", x, y); err != nil {
		return Rectangle{}, err
	}
	if err := validatePair("size", width, height); err != nil {
		return Rectangle{}, err
	}
	if colorCode == nil {
		colorCode = DefaultColorCode()
	} else if len(colorCode) == 0 {
		return Rectangle{}, errors.New(errors.ErrCodeValidation,
			"rectangle color code must have at least one element")
	}
	return Rectangle{
		x: x, y: y,
		width: width, height: height,
		label:     label,
		colorCode: slices.Clone(colorCode),
	}, nil
}

func validatePair(name string, a, b float64) error {
	for _, v := range [2]float64{a, b} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeValidation,
				"incorrect value for rectangle %s: (%v, %v) (both values must be finite)", name, a, b)
		}
	}
	if a < 0 || b < 0 {
		return errors.New(errors.ErrCodeValidation,
			"incorrect value for rectangle %s: (%v, %v) (both values must be >= 0)", name, a, b)
	}
	return nil
}

func (r Rectangle) X() float64      { return r.x }
func (r Rectangle) Y() float64      { return r.y }
func (r Rectangle) Width() float64  { return r.width }
func (r Rectangle) Height() float64 { return r.height }
func (r Rectangle) Label() string   { return r.label }

// ColorCode returns a copy of the rectangle's color code.
func (r Rectangle) ColorCode() ColorCode { return slices.Clone(r.colorCode) }

// Area returns width × height.
func (r Rectangle) Area() float64 { return r.width * r.height }

// IsDegenerate reports whether the rectangle has zero width or height.
func (r Rectangle) IsDegenerate() bool { return r.width <= 0 || r.height <= 0 }

// CenterX returns the horizontal center of the rectangle.
func (r Rectangle) CenterX() float64 { return r.x + r.width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rectangle) CenterY() float64 { return r.y + r.height/2 }

// AspectRatio returns max(w/h, h/w), which is 1 for a square and grows as the
// rectangle gets thinner. Degenerate rectangles report +Inf.
func (r Rectangle) AspectRatio() float64 {
	if r.IsDegenerate() {
		return math.Inf(1)
	}
	return max(r.width/r.height, r.height/r.width)
}

// Equal reports whether two rectangles have identical geometry, label and
// color code.
func (r Rectangle) Equal(o Rectangle) bool {
	return r.x == o.x && r.y == o.y &&
		r.width == o.width && r.height == o.height &&
		r.label == o.label && r.colorCode.Equal(o.colorCode)
}

// String formats the rectangle as "RECTANGLE x y width height label" with
// four decimals of geometry.
func (r Rectangle) String() string {
	return fmt.Sprintf("RECTANGLE %.4f %.4f %.4f %.4f %s", r.x, r.y, r.width, r.height, r.label)
}

// withLabel returns a copy of r carrying the given label and color code.
func (r Rectangle) withLabel(label string, code ColorCode) Rectangle {
	r.label = label
	r.colorCode = slices.Clone(code)
	return r
}

// transpose swaps the x and y coordinates and the width and height, keeping
// label and color code. transpose(transpose(r)) == r.
func transpose(r Rectangle) Rectangle {
	return Rectangle{
		x: r.y, y: r.x,
		width: r.height, height: r.width,
		label:     r.label,
		colorCode: r.colorCode,
	}
}

type rectangleJSON struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Label     string    `json:"label"`
	ColorCode ColorCode `json:"color_code"`
}

// MarshalJSON implements json.Marshaler.
func (r Rectangle) MarshalJSON() ([]byte, error) {
	code := r.colorCode
	if code == nil {
		code = DefaultColorCode()
	}
	return json.Marshal(rectangleJSON{
		X: r.x, Y: r.y,
		Width: r.width, Height: r.height,
		Label:     r.label,
		ColorCode: code,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The decoded rectangle is
// validated exactly as by [NewRectangle].
func (r *Rectangle) UnmarshalJSON(data []byte) error {
	var v rectangleJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	rec, err := NewRectangle(v.X, v.Y, v.Width, v.Height, v.Label, v.ColorCode)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}
