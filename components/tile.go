package components

import (
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/yohamta/donburi"
)

// TileBody is a level tile. Static tiles never move; floating platforms are
// tiles moved by their tween, which raises the moved flag.
type TileBody struct {
	hitbox   geometry.Hitbox
	moved    bool
	Excluded bool
}

func NewTileBody(hitbox geometry.Hitbox) *TileBody {
	return &TileBody{hitbox: hitbox}
}

func (t *TileBody) Position() geometry.Vector2 { return t.hitbox.BoundingBox().Position() }
func (t *TileBody) Size() geometry.Vector2     { return t.hitbox.BoundingBox().Size() }
func (t *TileBody) Hitbox() geometry.Hitbox    { return t.hitbox }
func (t *TileBody) IsExcluded() bool           { return t.Excluded }
func (t *TileBody) HasMoved() bool             { return t.moved }
func (t *TileBody) SetHasMoved(moved bool)     { t.moved = moved }

// MoveBy translates the hitbox, keeping its shape.
func (t *TileBody) MoveBy(delta geometry.Vector2) {
	if delta.IsZero() {
		return
	}
	switch h := t.hitbox.(type) {
	case geometry.BoundingRectangle:
		t.hitbox = h.Translate(delta)
	case geometry.RightTriangle:
		h.Bounds = h.Bounds.Translate(delta)
		t.hitbox = h
	}
	t.moved = true
}

type TileData struct {
	*TileBody
}

var Tile = donburi.NewComponentType[TileData]()
