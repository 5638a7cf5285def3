package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidTriangle is returned for triangles with a degenerate or NaN
// bounding box, or an unknown SlopedSides value.
var ErrInvalidTriangle = errors.New("invalid right triangle")

// SlopedSides names the two sides of a right triangle's bounding box that the
// hypotenuse cuts across. The right angle sits in the opposite corner.
type SlopedSides int

const (
	// TopLeft is a floor ramp rising to the right.
	TopLeft SlopedSides = iota
	// TopRight is a floor ramp falling to the right.
	TopRight
	// BottomLeft is a ceiling slope with its low end on the right.
	BottomLeft
	// BottomRight is a ceiling slope with its low end on the left.
	BottomRight
)

func (s SlopedSides) String() string {
	switch s {
	case TopLeft:
		return "top_left"
	case TopRight:
		return "top_right"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	default:
		return fmt.Sprintf("SlopedSides(%d)", int(s))
	}
}

func (s SlopedSides) valid() bool {
	return s >= TopLeft && s <= BottomRight
}

// RightTriangle is the collidable shape of a sloped tile.
type RightTriangle struct {
	Bounds      BoundingRectangle
	SlopedSides SlopedSides
}

// NewRightTriangle validates bounds and sides.
func NewRightTriangle(bounds BoundingRectangle, sides SlopedSides) (RightTriangle, error) {
	if !sides.valid() {
		return RightTriangle{}, fmt.Errorf("%w: sloped sides %d", ErrInvalidTriangle, int(sides))
	}
	pos, size := bounds.Position(), bounds.Size()
	if pos.IsNaN() || size.IsNaN() || bounds.Width <= 0 || bounds.Height <= 0 {
		return RightTriangle{}, fmt.Errorf("%w: bounds %+v", ErrInvalidTriangle, bounds)
	}
	return RightTriangle{Bounds: bounds, SlopedSides: sides}, nil
}

func (RightTriangle) isHitbox() {}

// IsTopSloped reports whether the solid part is below the hypotenuse.
func (t RightTriangle) IsTopSloped() bool {
	return t.SlopedSides == TopLeft || t.SlopedSides == TopRight
}

// Slope is rise over run with Y pointing up, so a ramp that climbs to the
// right is positive.
func (t RightTriangle) Slope() float32 {
	s := t.Bounds.Height / t.Bounds.Width
	switch t.SlopedSides {
	case TopLeft, BottomRight:
		return s
	default:
		return -s
	}
}

// Point90 is the corner holding the right angle.
func (t RightTriangle) Point90() Vector2 {
	b := t.Bounds
	switch t.SlopedSides {
	case TopLeft:
		return b.BottomRight()
	case TopRight:
		return b.BottomLeft()
	case BottomLeft:
		return b.TopRight()
	default:
		return b.TopLeft()
	}
}

// Point1 is the left end of the hypotenuse.
func (t RightTriangle) Point1() Vector2 {
	if t.Slope() > 0 {
		return t.Bounds.BottomLeft()
	}
	return t.Bounds.TopLeft()
}

// Point2 is the right end of the hypotenuse.
func (t RightTriangle) Point2() Vector2 {
	if t.Slope() > 0 {
		return t.Bounds.TopRight()
	}
	return t.Bounds.BottomRight()
}

// YIntersect is the screen-space Y where the hypotenuse line crosses x = 0.
func (t RightTriangle) YIntersect() float32 {
	p1 := t.Point1()
	return p1.Y + t.Slope()*p1.X
}

// GetPointOnSlope returns the point of the hypotenuse at x. The slope is
// undefined at or beyond the horizontal bounds, where a NaN vector is
// returned.
func (t RightTriangle) GetPointOnSlope(x float32) Vector2 {
	if isNaN32(x) || x <= t.Bounds.Left() || x >= t.Bounds.Right() {
		return NaNVector()
	}
	return Vector2{X: x, Y: t.slopeY(x)}
}

// GetClampedPointOnSlope is GetPointOnSlope with x clamped into the bounds.
func (t RightTriangle) GetClampedPointOnSlope(x float32) Vector2 {
	x = Clamp32(x, t.Bounds.Left(), t.Bounds.Right())
	return Vector2{X: x, Y: t.slopeY(x)}
}

func (t RightTriangle) slopeY(x float32) float32 {
	p1 := t.Point1()
	return p1.Y - t.Slope()*(x-p1.X)
}

// collisionTestPoint is the corner of r that reaches the hypotenuse first.
func (t RightTriangle) collisionTestPoint(r BoundingRectangle) Vector2 {
	switch t.SlopedSides {
	case TopLeft:
		return r.BottomRight()
	case TopRight:
		return r.BottomLeft()
	case BottomLeft:
		return r.TopRight()
	default:
		return r.TopLeft()
	}
}

// IntersectsRect reports whether r overlaps the triangle's bounding box and
// its bottom-center (floor ramps) or top-center (ceiling slopes) is on the
// solid side of the hypotenuse. Past the horizontal bounds the hypotenuse is
// extended flat from its nearest endpoint.
func (t RightTriangle) IntersectsRect(r BoundingRectangle) bool {
	if !t.Bounds.Intersects(r) {
		return false
	}
	if t.IsTopSloped() {
		center := r.BottomCenter()
		return center.Y > t.GetClampedPointOnSlope(center.X).Y
	}
	center := r.TopCenter()
	return center.Y < t.GetClampedPointOnSlope(center.X).Y
}

// GetCollisionResolution returns the displacement that moves r out of the
// triangle. When the corner of r facing the hypotenuse is outside the bounds,
// this is plain rectangle resolution against the bounds. Otherwise r is
// pushed vertically onto (or under) the slope sampled at r's horizontal
// center.
func (t RightTriangle) GetCollisionResolution(r BoundingRectangle) Resolution {
	if !t.Bounds.ContainsIncludingEdges(t.collisionTestPoint(r)) {
		return t.Bounds.GetCollisionResolution(r)
	}

	if t.IsTopSloped() {
		center := r.BottomCenter()
		depth := center.Y - t.GetClampedPointOnSlope(center.X).Y
		if depth > 0 {
			return MustResolution(Vector2{Y: -depth}, ResolutionSlope)
		}
		return ZeroResolution
	}

	center := r.TopCenter()
	depth := t.GetClampedPointOnSlope(center.X).Y - center.Y
	if depth > 0 {
		return MustResolution(Vector2{Y: depth}, ResolutionSlope)
	}
	return ZeroResolution
}
