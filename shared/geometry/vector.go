// Package geometry holds the axis-aligned shapes used by tile collision:
// vectors, bounding rectangles, right triangles (sloped tiles) and the
// resolution vectors computed between them.
package geometry

import (
	"fmt"
	"math"
)

var nan32 = float32(math.NaN())

// Vector2 is a 2D vector in screen space (Y grows downward).
// A NaN component means "no intersection" or "not applicable".
type Vector2 struct {
	X, Y float32
}

// Zero is the zero vector.
var Zero = Vector2{}

// NaNVector returns a vector with both components set to NaN.
func NaNVector() Vector2 {
	return Vector2{X: nan32, Y: nan32}
}

func NewVector2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(s float32) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

func (v Vector2) Abs() Vector2 {
	return Vector2{X: abs32(v.X), Y: abs32(v.Y)}
}

// IsNaN reports whether either component is NaN.
func (v Vector2) IsNaN() bool {
	return isNaN32(v.X) || isNaN32(v.Y)
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vector2) IsFinite() bool {
	return isFinite32(v.X) && isFinite32(v.Y)
}

func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func isNaN32(f float32) bool {
	return f != f
}

func isFinite32(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Clamp32 constrains value to [min, max].
func Clamp32(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
