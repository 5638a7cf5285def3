package geometry

// Hitbox is the collidable shape of a tile: either a BoundingRectangle or a
// RightTriangle. The set is closed; switch on the concrete type when the
// shape matters.
type Hitbox interface {
	BoundingBox() BoundingRectangle
	IntersectsRect(r BoundingRectangle) bool
	GetCollisionResolution(r BoundingRectangle) Resolution
	isHitbox()
}

var (
	_ Hitbox = BoundingRectangle{}
	_ Hitbox = RightTriangle{}
)

// BoundingBox returns the triangle's bounds.
func (t RightTriangle) BoundingBox() BoundingRectangle { return t.Bounds }

// IsSloped reports whether h is a right triangle.
func IsSloped(h Hitbox) bool {
	_, ok := h.(RightTriangle)
	return ok
}

// Direction is one of the four cardinal directions, or None.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// Vector is the unit step for d in screen space.
func (d Direction) Vector() Vector2 {
	switch d {
	case DirectionUp:
		return Vector2{Y: -1}
	case DirectionDown:
		return Vector2{Y: 1}
	case DirectionLeft:
		return Vector2{X: -1}
	case DirectionRight:
		return Vector2{X: 1}
	default:
		return Zero
	}
}

// IsHorizontal reports whether d is Left or Right.
func (d Direction) IsHorizontal() bool {
	return d == DirectionLeft || d == DirectionRight
}
