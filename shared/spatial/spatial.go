// Package spatial provides the broad phase: hash-mapped uniform grids that
// bucket sprites and tiles into fixed-size cells so collision code only looks
// at objects near each other.
//
// Nothing here is safe for concurrent use. Every grid is meant to be mutated
// and queried from the single goroutine that steps the simulation.
package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/tilephys/shared/geometry"
)

var (
	ErrInvalidCellSize       = errors.New("cell size must be positive")
	ErrNilItem               = errors.New("item is nil")
	ErrInvalidBounds         = errors.New("item bounds are invalid")
	ErrDuplicateItem         = errors.New("item already added")
	ErrNoDirection           = errors.New("ray direction is none")
	ErrInvalidSearchDistance = errors.New("search distance must be positive")
)

// Positionable is anything with an axis-aligned box in world space.
type Positionable interface {
	Position() geometry.Vector2
	Size() geometry.Vector2
}

// Movable is a Positionable that raises a flag when its owner moves it.
// Grids clear the flag after re-bucketing the item.
type Movable interface {
	Positionable
	HasMoved() bool
	SetHasMoved(moved bool)
}

// Tile is a level tile with a rectangle or right-triangle hitbox.
// Excluded tiles are ignored by every query.
type Tile interface {
	Positionable
	Hitbox() geometry.Hitbox
	IsExcluded() bool
}

// CellKey addresses a grid cell.
type CellKey struct {
	X, Y int
}

func (k CellKey) String() string {
	return fmt.Sprintf("(%d,%d)", k.X, k.Y)
}

func validateCellSize(cellSize geometry.Vector2) error {
	if !cellSize.IsFinite() || cellSize.X <= 0 || cellSize.Y <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidCellSize, cellSize)
	}
	return nil
}

// Cell coordinates are kept within ±maxCellIndex so ranges never overflow
// int, and a single box may span at most maxCellSpan cells per axis.
const (
	maxCellIndex = 1 << 24
	maxCellSpan  = 1 << 16
)

func validateBounds(item Positionable, cellSize geometry.Vector2) error {
	pos, size := item.Position(), item.Size()
	if !pos.IsFinite() || !size.IsFinite() {
		return fmt.Errorf("%w: non-finite position %v or size %v", ErrInvalidBounds, pos, size)
	}
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("%w: size %v has no area", ErrInvalidBounds, size)
	}
	return validateExtent(pos, size, cellSize)
}

// validateExtent checks that the box maps onto a cell range the grids can
// walk.
func validateExtent(pos, size, cellSize geometry.Vector2) error {
	end := pos.Add(size)
	if !end.IsFinite() || !inCellRange(pos, cellSize) || !inCellRange(end, cellSize) {
		return fmt.Errorf("%w: box at %v size %v is outside the cell index range", ErrInvalidBounds, pos, size)
	}
	lo, hi := cellRange(pos, size, cellSize)
	if hi.X-lo.X >= maxCellSpan || hi.Y-lo.Y >= maxCellSpan {
		return fmt.Errorf("%w: box at %v size %v spans too many cells", ErrInvalidBounds, pos, size)
	}
	return nil
}

func inCellRange(p, cellSize geometry.Vector2) bool {
	return math.Abs(float64(p.X)/float64(cellSize.X)) <= maxCellIndex &&
		math.Abs(float64(p.Y)/float64(cellSize.Y)) <= maxCellIndex
}

func cellOf(point, cellSize geometry.Vector2) CellKey {
	return CellKey{
		X: int(math.Floor(float64(point.X) / float64(cellSize.X))),
		Y: int(math.Floor(float64(point.Y) / float64(cellSize.Y))),
	}
}

// cellRange returns the inclusive range of cells covered by the box at
// position with the given size, from its top-left and bottom-right corners.
func cellRange(position, size, cellSize geometry.Vector2) (lo, hi CellKey) {
	return cellOf(position, cellSize), cellOf(position.Add(size), cellSize)
}

func cellBounds(key CellKey, cellSize geometry.Vector2) geometry.BoundingRectangle {
	return geometry.NewBoundingRectangle(
		float32(key.X)*cellSize.X,
		float32(key.Y)*cellSize.Y,
		cellSize.X,
		cellSize.Y,
	)
}

func eachKey(lo, hi CellKey, fn func(CellKey)) {
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			fn(CellKey{X: x, Y: y})
		}
	}
}
