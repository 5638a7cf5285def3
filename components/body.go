package components

import (
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/yohamta/donburi"
)

// SpriteBody is the axis-aligned box of a moving entity. Every position
// change raises the moved flag so the grids re-bucket it on their next update.
type SpriteBody struct {
	pos, size geometry.Vector2
	moved     bool

	// Solid bodies push other sprites out of themselves.
	Solid bool
}

func NewSpriteBody(x, y, w, h float32) *SpriteBody {
	return &SpriteBody{
		pos:  geometry.Vector2{X: x, Y: y},
		size: geometry.Vector2{X: w, Y: h},
	}
}

func (b *SpriteBody) Position() geometry.Vector2 { return b.pos }
func (b *SpriteBody) Size() geometry.Vector2     { return b.size }
func (b *SpriteBody) HasMoved() bool             { return b.moved }
func (b *SpriteBody) SetHasMoved(moved bool)     { b.moved = moved }

func (b *SpriteBody) Bounds() geometry.BoundingRectangle {
	return geometry.RectFromVectors(b.pos, b.size)
}

func (b *SpriteBody) MoveBy(delta geometry.Vector2) {
	if delta.IsZero() {
		return
	}
	b.pos = b.pos.Add(delta)
	b.moved = true
}

func (b *SpriteBody) SetPosition(pos geometry.Vector2) {
	if pos == b.pos {
		return
	}
	b.pos = pos
	b.moved = true
}

// BodyData wraps the body pointer so grid membership survives donburi
// moving component storage around.
type BodyData struct {
	*SpriteBody
}

var Body = donburi.NewComponentType[BodyData]()
