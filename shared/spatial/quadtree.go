package spatial

import (
	"fmt"
	"math"
	"slices"

	"github.com/automoto/tilephys/shared/geometry"
)

// SpriteItem is a comparable Positionable, usually a pointer.
type SpriteItem interface {
	comparable
	Positionable
}

// TileItem is a comparable Tile, usually a pointer.
type TileItem interface {
	comparable
	Tile
}

type quadCell[S SpriteItem, T TileItem] struct {
	sprites []S
	tiles   []T
}

func (c *quadCell[S, T]) empty() bool {
	return len(c.sprites) == 0 && len(c.tiles) == 0
}

// QuadTree indexes sprites and tiles side by side in one hash-mapped uniform
// grid. Despite the name there is no recursive subdivision: every cell has
// the same size.
//
// Objects larger than a cell on either axis are also stored in the ring of
// cells around their box, so they keep finding nearby tiles after collision
// resolution pushes them out of their original cell range.
type QuadTree[S SpriteItem, T TileItem] struct {
	cellSize   geometry.Vector2
	cells      map[CellKey]*quadCell[S, T]
	sprites    []S
	tiles      []T
	spriteSet  map[S]struct{}
	tileSet    map[T]struct{}
	tilesDirty bool
}

// NewQuadTree creates an empty grid with the given cell size.
func NewQuadTree[S SpriteItem, T TileItem](cellSize geometry.Vector2) (*QuadTree[S, T], error) {
	if err := validateCellSize(cellSize); err != nil {
		return nil, err
	}
	return &QuadTree[S, T]{
		cellSize:  cellSize,
		cells:     make(map[CellKey]*quadCell[S, T]),
		spriteSet: make(map[S]struct{}),
		tileSet:   make(map[T]struct{}),
	}, nil
}

func (q *QuadTree[S, T]) CellSize() geometry.Vector2 { return q.cellSize }
func (q *QuadTree[S, T]) CellCount() int             { return len(q.cells) }
func (q *QuadTree[S, T]) SpriteCount() int           { return len(q.sprites) }
func (q *QuadTree[S, T]) TileCount() int             { return len(q.tiles) }

// HasCell reports whether the cell at key holds anything.
func (q *QuadTree[S, T]) HasCell(key CellKey) bool {
	_, ok := q.cells[key]
	return ok
}

// SpritesInCell returns the sprites bucketed into the cell at key.
func (q *QuadTree[S, T]) SpritesInCell(key CellKey) []S {
	if c, ok := q.cells[key]; ok {
		return slices.Clone(c.sprites)
	}
	return nil
}

// TilesInCell returns the tiles bucketed into the cell at key, excluded ones
// included.
func (q *QuadTree[S, T]) TilesInCell(key CellKey) []T {
	if c, ok := q.cells[key]; ok {
		return slices.Clone(c.tiles)
	}
	return nil
}

// AddSprite registers sprite and places it right away.
func (q *QuadTree[S, T]) AddSprite(sprite S) error {
	var zero S
	if sprite == zero {
		return ErrNilItem
	}
	if _, ok := q.spriteSet[sprite]; ok {
		return ErrDuplicateItem
	}
	if err := validateBounds(sprite, q.cellSize); err != nil {
		return err
	}
	q.spriteSet[sprite] = struct{}{}
	q.sprites = append(q.sprites, sprite)
	q.PlaceSprite(sprite)
	return nil
}

// RemoveSprite unregisters sprite and drops it from every cell.
func (q *QuadTree[S, T]) RemoveSprite(sprite S) bool {
	if _, ok := q.spriteSet[sprite]; !ok {
		return false
	}
	delete(q.spriteSet, sprite)
	if i := slices.Index(q.sprites, sprite); i >= 0 {
		q.sprites = slices.Delete(q.sprites, i, i+1)
	}
	for key, c := range q.cells {
		if i := slices.Index(c.sprites, sprite); i >= 0 {
			c.sprites = slices.Delete(c.sprites, i, i+1)
		}
		if c.empty() {
			delete(q.cells, key)
		}
	}
	return true
}

// AddTile registers tile and places it right away.
func (q *QuadTree[S, T]) AddTile(tile T) error {
	var zero T
	if tile == zero {
		return ErrNilItem
	}
	if _, ok := q.tileSet[tile]; ok {
		return ErrDuplicateItem
	}
	if err := validateBounds(tile, q.cellSize); err != nil {
		return err
	}
	if tile.Hitbox() == nil {
		return fmt.Errorf("%w: tile has no hitbox", ErrInvalidBounds)
	}
	q.tileSet[tile] = struct{}{}
	q.tiles = append(q.tiles, tile)
	q.PlaceTile(tile)
	return nil
}

// RemoveTile unregisters tile and drops it from every cell.
func (q *QuadTree[S, T]) RemoveTile(tile T) bool {
	if _, ok := q.tileSet[tile]; !ok {
		return false
	}
	delete(q.tileSet, tile)
	if i := slices.Index(q.tiles, tile); i >= 0 {
		q.tiles = slices.Delete(q.tiles, i, i+1)
	}
	for key, c := range q.cells {
		if i := slices.Index(c.tiles, tile); i >= 0 {
			c.tiles = slices.Delete(c.tiles, i, i+1)
		}
		if c.empty() {
			delete(q.cells, key)
		}
	}
	return true
}

// GetIntersectingCells returns the cells item's box covers. For items larger
// than one cell on either axis the range is widened by one cell on every
// side.
func (q *QuadTree[S, T]) GetIntersectingCells(item Positionable) []CellKey {
	pos, size := item.Position(), item.Size()
	if !pos.IsFinite() || !size.IsFinite() || validateExtent(pos, size, q.cellSize) != nil {
		return nil
	}
	lo, hi := cellRange(pos, size, q.cellSize)
	if size.X > q.cellSize.X || size.Y > q.cellSize.Y {
		lo.X--
		lo.Y--
		hi.X++
		hi.Y++
	}
	keys := make([]CellKey, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	eachKey(lo, hi, func(key CellKey) {
		keys = append(keys, key)
	})
	return keys
}

// PlaceSprite puts sprite into every intersecting cell it is not already in.
func (q *QuadTree[S, T]) PlaceSprite(sprite S) {
	for _, key := range q.GetIntersectingCells(sprite) {
		c := q.cell(key)
		if !slices.Contains(c.sprites, sprite) {
			c.sprites = append(c.sprites, sprite)
		}
	}
}

// PlaceTile puts tile into every intersecting cell it is not already in.
func (q *QuadTree[S, T]) PlaceTile(tile T) {
	for _, key := range q.GetIntersectingCells(tile) {
		c := q.cell(key)
		if !slices.Contains(c.tiles, tile) {
			c.tiles = append(c.tiles, tile)
		}
	}
}

func (q *QuadTree[S, T]) cell(key CellKey) *quadCell[S, T] {
	c, ok := q.cells[key]
	if !ok {
		c = &quadCell[S, T]{}
		q.cells[key] = c
	}
	return c
}

// Update re-buckets every sprite. Tiles are assumed static and are only
// re-bucketed when one of them implements Movable and reports a move.
// Sprites or tiles whose bounds became invalid are left out of every cell
// until they are valid again.
func (q *QuadTree[S, T]) Update() {
	for _, tile := range q.tiles {
		if m, ok := any(tile).(Movable); ok && m.HasMoved() {
			m.SetHasMoved(false)
			q.tilesDirty = true
		}
	}

	for _, c := range q.cells {
		c.sprites = c.sprites[:0]
		if q.tilesDirty {
			c.tiles = c.tiles[:0]
		}
	}
	if q.tilesDirty {
		for _, tile := range q.tiles {
			if validateBounds(tile, q.cellSize) == nil {
				q.PlaceTile(tile)
			}
		}
		q.tilesDirty = false
	}
	for _, sprite := range q.sprites {
		if validateBounds(sprite, q.cellSize) == nil {
			q.PlaceSprite(sprite)
		}
	}

	for key, c := range q.cells {
		if c.empty() {
			delete(q.cells, key)
		}
	}
}

// GetNearbySprites returns the other sprites sharing a cell with sprite.
func (q *QuadTree[S, T]) GetNearbySprites(sprite S) []S {
	var result []S
	seen := map[S]struct{}{sprite: {}}
	for _, key := range q.GetIntersectingCells(sprite) {
		c, ok := q.cells[key]
		if !ok {
			continue
		}
		for _, other := range c.sprites {
			if _, dup := seen[other]; dup {
				continue
			}
			seen[other] = struct{}{}
			result = append(result, other)
		}
	}
	return result
}

// GetCollidableTiles returns every non-excluded tile in the cells sprite
// intersects, each once.
func (q *QuadTree[S, T]) GetCollidableTiles(sprite S) []T {
	return q.collidableTiles(sprite, func(T) bool { return true })
}

// GetCollidableSlopedTiles is GetCollidableTiles limited to right-triangle
// hitboxes.
func (q *QuadTree[S, T]) GetCollidableSlopedTiles(sprite S) []T {
	return q.collidableTiles(sprite, func(t T) bool { return geometry.IsSloped(t.Hitbox()) })
}

// GetCollidableNormalTiles is GetCollidableTiles limited to rectangle
// hitboxes.
func (q *QuadTree[S, T]) GetCollidableNormalTiles(sprite S) []T {
	return q.collidableTiles(sprite, func(t T) bool { return !geometry.IsSloped(t.Hitbox()) })
}

func (q *QuadTree[S, T]) collidableTiles(sprite S, keep func(T) bool) []T {
	var result []T
	seen := make(map[T]struct{})
	for _, key := range q.GetIntersectingCells(sprite) {
		c, ok := q.cells[key]
		if !ok {
			continue
		}
		for _, tile := range c.tiles {
			if _, dup := seen[tile]; dup {
				continue
			}
			seen[tile] = struct{}{}
			if tile.IsExcluded() || !keep(tile) {
				continue
			}
			result = append(result, tile)
		}
	}
	return result
}

// GetTileIntersectingAARay walks up to searchDistance cells from the cell
// holding position in direction and returns the nearest tile ahead of
// position whose bounds straddle the ray, checked one cell at a time.
func (q *QuadTree[S, T]) GetTileIntersectingAARay(position geometry.Vector2, direction geometry.Direction, searchDistance int) (T, bool, error) {
	var zero T
	if direction == geometry.DirectionNone {
		return zero, false, ErrNoDirection
	}
	if searchDistance <= 0 {
		return zero, false, ErrInvalidSearchDistance
	}
	if !position.IsFinite() || !inCellRange(position, q.cellSize) {
		return zero, false, ErrInvalidBounds
	}

	step := direction.Vector()
	key := cellOf(position, q.cellSize)
	for i := 0; i < searchDistance; i++ {
		if c, ok := q.cells[key]; ok {
			best, bestDistance := zero, math.Inf(1)
			for _, tile := range c.tiles {
				if tile.IsExcluded() {
					continue
				}
				d, hit := rayDistance(tile.Hitbox().BoundingBox(), position, direction)
				if hit && d < bestDistance {
					best, bestDistance = tile, d
				}
			}
			if bestDistance < math.Inf(1) {
				return best, true, nil
			}
		}
		key.X += int(step.X)
		key.Y += int(step.Y)
	}
	return zero, false, nil
}

// rayDistance tests the axis-aligned ray from origin in direction against b.
func rayDistance(b geometry.BoundingRectangle, origin geometry.Vector2, direction geometry.Direction) (float64, bool) {
	if direction.IsHorizontal() {
		if origin.Y < b.Top() || origin.Y > b.Bottom() {
			return 0, false
		}
	} else if origin.X < b.Left() || origin.X > b.Right() {
		return 0, false
	}

	var d float32
	switch direction {
	case geometry.DirectionRight:
		if b.Right() < origin.X {
			return 0, false
		}
		d = b.Left() - origin.X
	case geometry.DirectionLeft:
		if b.Left() > origin.X {
			return 0, false
		}
		d = origin.X - b.Right()
	case geometry.DirectionDown:
		if b.Bottom() < origin.Y {
			return 0, false
		}
		d = b.Top() - origin.Y
	case geometry.DirectionUp:
		if b.Top() > origin.Y {
			return 0, false
		}
		d = origin.Y - b.Bottom()
	}
	return math.Max(0, float64(d)), true
}

// GetTilesInArea returns the non-excluded tiles whose bounds intersect area.
// Cells that were never populated count as empty.
func (q *QuadTree[S, T]) GetTilesInArea(area geometry.BoundingRectangle) []T {
	if !area.Position().IsFinite() || !area.Size().IsFinite() || validateExtent(area.Position(), area.Size(), q.cellSize) != nil {
		return nil
	}
	var result []T
	seen := make(map[T]struct{})
	lo, hi := cellRange(area.Position(), area.Size(), q.cellSize)
	eachKey(lo, hi, func(key CellKey) {
		c, ok := q.cells[key]
		if !ok {
			return
		}
		for _, tile := range c.tiles {
			if _, dup := seen[tile]; dup {
				continue
			}
			seen[tile] = struct{}{}
			if tile.IsExcluded() || !tile.Hitbox().BoundingBox().Intersects(area) {
				continue
			}
			result = append(result, tile)
		}
	})
	return result
}
