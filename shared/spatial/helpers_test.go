package spatial

import (
	"math"

	"github.com/automoto/tilephys/shared/geometry"
)

type box struct {
	pos, size geometry.Vector2
	moved     bool
}

func newBox(x, y, w, h float32) *box {
	return &box{pos: geometry.Vector2{X: x, Y: y}, size: geometry.Vector2{X: w, Y: h}}
}

func (b *box) Position() geometry.Vector2 { return b.pos }
func (b *box) Size() geometry.Vector2     { return b.size }
func (b *box) HasMoved() bool             { return b.moved }
func (b *box) SetHasMoved(moved bool)     { b.moved = moved }

func (b *box) moveTo(x, y float32) {
	b.pos = geometry.Vector2{X: x, Y: y}
	b.moved = true
}

type tile struct {
	box
	hitbox   geometry.Hitbox
	excluded bool
}

func rectTile(x, y, w, h float32) *tile {
	return &tile{box: *newBox(x, y, w, h), hitbox: geometry.NewBoundingRectangle(x, y, w, h)}
}

func slopeTile(x, y, w, h float32, sides geometry.SlopedSides) *tile {
	tri, err := geometry.NewRightTriangle(geometry.NewBoundingRectangle(x, y, w, h), sides)
	if err != nil {
		panic(err)
	}
	return &tile{box: *newBox(x, y, w, h), hitbox: tri}
}

func (t *tile) Hitbox() geometry.Hitbox { return t.hitbox }
func (t *tile) IsExcluded() bool        { return t.excluded }

func (t *tile) moveTo(x, y float32) {
	t.box.moveTo(x, y)
	t.hitbox = geometry.NewBoundingRectangle(x, y, t.size.X, t.size.Y)
}

// bruteRange recomputes an item's inclusive cell range without the package
// helpers.
func bruteRange(p Positionable, cell float32) (x0, y0, x1, y1 int) {
	pos, size := p.Position(), p.Size()
	f := func(v float32) int { return int(math.Floor(float64(v) / float64(cell))) }
	return f(pos.X), f(pos.Y), f(pos.X + size.X), f(pos.Y + size.Y)
}

func shareCell(a, b Positionable, cell float32) bool {
	ax0, ay0, ax1, ay1 := bruteRange(a, cell)
	bx0, by0, bx1, by1 := bruteRange(b, cell)
	return ax0 <= bx1 && bx0 <= ax1 && ay0 <= by1 && by0 <= ay1
}
