package geometry

// BoundingRectangle is an axis-aligned box stored as its top-left corner and
// size. Width and Height are expected to be non-negative; callers enforce it.
type BoundingRectangle struct {
	X, Y          float32
	Width, Height float32
}

func NewBoundingRectangle(x, y, width, height float32) BoundingRectangle {
	return BoundingRectangle{X: x, Y: y, Width: width, Height: height}
}

// RectFromVectors builds a rectangle from a position and a size.
func RectFromVectors(position, size Vector2) BoundingRectangle {
	return BoundingRectangle{X: position.X, Y: position.Y, Width: size.X, Height: size.Y}
}

func (r BoundingRectangle) Left() float32   { return r.X }
func (r BoundingRectangle) Top() float32    { return r.Y }
func (r BoundingRectangle) Right() float32  { return r.X + r.Width }
func (r BoundingRectangle) Bottom() float32 { return r.Y + r.Height }

func (r BoundingRectangle) Position() Vector2 { return Vector2{X: r.X, Y: r.Y} }
func (r BoundingRectangle) Size() Vector2     { return Vector2{X: r.Width, Y: r.Height} }

func (r BoundingRectangle) Center() Vector2 {
	return Vector2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r BoundingRectangle) TopCenter() Vector2    { return Vector2{X: r.X + r.Width/2, Y: r.Top()} }
func (r BoundingRectangle) BottomCenter() Vector2 { return Vector2{X: r.X + r.Width/2, Y: r.Bottom()} }
func (r BoundingRectangle) LeftCenter() Vector2   { return Vector2{X: r.Left(), Y: r.Y + r.Height/2} }
func (r BoundingRectangle) RightCenter() Vector2  { return Vector2{X: r.Right(), Y: r.Y + r.Height/2} }

func (r BoundingRectangle) TopLeft() Vector2     { return Vector2{X: r.Left(), Y: r.Top()} }
func (r BoundingRectangle) TopRight() Vector2    { return Vector2{X: r.Right(), Y: r.Top()} }
func (r BoundingRectangle) BottomLeft() Vector2  { return Vector2{X: r.Left(), Y: r.Bottom()} }
func (r BoundingRectangle) BottomRight() Vector2 { return Vector2{X: r.Right(), Y: r.Bottom()} }

// Translate returns the rectangle moved by offset.
func (r BoundingRectangle) Translate(offset Vector2) BoundingRectangle {
	r.X += offset.X
	r.Y += offset.Y
	return r
}

// BoundingBox returns r itself.
func (r BoundingRectangle) BoundingBox() BoundingRectangle { return r }

func (BoundingRectangle) isHitbox() {}

// Contains reports whether point lies strictly inside the rectangle.
func (r BoundingRectangle) Contains(point Vector2) bool {
	return point.X > r.Left() && point.X < r.Right() &&
		point.Y > r.Top() && point.Y < r.Bottom()
}

// ContainsIncludingEdges is Contains with the edges counted as inside.
func (r BoundingRectangle) ContainsIncludingEdges(point Vector2) bool {
	return point.X >= r.Left() && point.X <= r.Right() &&
		point.Y >= r.Top() && point.Y <= r.Bottom()
}

// Intersects reports whether the two rectangles overlap on both axes.
// Rectangles that only share an edge do not intersect.
func (r BoundingRectangle) Intersects(other BoundingRectangle) bool {
	return r.Left() < other.Right() && other.Left() < r.Right() &&
		r.Top() < other.Bottom() && other.Top() < r.Bottom()
}

// IntersectsRect is Intersects under the Hitbox method set.
func (r BoundingRectangle) IntersectsRect(other BoundingRectangle) bool {
	return r.Intersects(other)
}

// IntersectsTriangle delegates to the triangle's slope-aware test.
func (r BoundingRectangle) IntersectsTriangle(t RightTriangle) bool {
	return t.IntersectsRect(r)
}

// GetIntersectionDepth returns how far other has to move on each axis to stop
// overlapping r. The sign of each component points from r's center toward
// other's center (equal centers push other toward negative coordinates).
// Both components are NaN unless the rectangles overlap on both axes.
func (r BoundingRectangle) GetIntersectionDepth(other BoundingRectangle) Vector2 {
	depthX := axisDepth(r.X+r.Width/2, other.X+other.Width/2, (r.Width+other.Width)/2)
	depthY := axisDepth(r.Y+r.Height/2, other.Y+other.Height/2, (r.Height+other.Height)/2)
	if isNaN32(depthX) || isNaN32(depthY) {
		return NaNVector()
	}
	return Vector2{X: depthX, Y: depthY}
}

func axisDepth(center, otherCenter, minDistance float32) float32 {
	distance := otherCenter - center
	if abs32(distance) >= minDistance {
		return nan32
	}
	if distance > 0 {
		return minDistance - distance
	}
	return -minDistance - distance
}

// GetCollisionResolution returns the single-axis displacement that moves
// other out of r along the shallowest edge. Equal depths resolve vertically.
func (r BoundingRectangle) GetCollisionResolution(other BoundingRectangle) Resolution {
	depth := r.GetIntersectionDepth(other)
	if depth.IsNaN() {
		return ZeroResolution
	}
	return shallowestEdge(depth)
}

func shallowestEdge(depth Vector2) Resolution {
	if abs32(depth.X) < abs32(depth.Y) {
		depth.Y = 0
	} else {
		depth.X = 0
	}
	if depth.IsZero() {
		return ZeroResolution
	}
	return MustResolution(depth, ResolutionNormal)
}
