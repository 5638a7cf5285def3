package spatial

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/automoto/tilephys/shared/geometry"
)

// GridItem is what a SparseCellGrid stores: a comparable Movable, usually a
// pointer.
type GridItem interface {
	comparable
	Movable
}

// SparseCell is one occupied cell of a SparseCellGrid. A cell only exists
// while it holds at least one item.
type SparseCell[T GridItem] struct {
	key    CellKey
	bounds geometry.BoundingRectangle
	items  []T
}

func (c *SparseCell[T]) Key() CellKey                       { return c.key }
func (c *SparseCell[T]) Bounds() geometry.BoundingRectangle { return c.bounds }
func (c *SparseCell[T]) Len() int                           { return len(c.items) }

func (c *SparseCell[T]) Contains(item T) bool {
	return slices.Contains(c.items, item)
}

// Items yields the cell's items in insertion order.
func (c *SparseCell[T]) Items() iter.Seq[T] {
	return slices.Values(c.items)
}

func (c *SparseCell[T]) add(item T) {
	if !c.Contains(item) {
		c.items = append(c.items, item)
	}
}

func (c *SparseCell[T]) remove(item T) {
	if i := slices.Index(c.items, item); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
}

// SparseCellGrid buckets movable items into uniform cells that are created
// on demand and dropped once empty. An item is stored in every cell its box
// overlaps and in no other.
//
// Owners must call SetHasMoved(true) after repositioning an item; membership
// is only corrected by Update.
type SparseCellGrid[T GridItem] struct {
	cellSize geometry.Vector2
	cells    map[CellKey]*SparseCell[T]
	items    []T
	occupied map[T][]CellKey
}

// NewSparseCellGrid creates an empty grid with the given cell size.
func NewSparseCellGrid[T GridItem](cellSize geometry.Vector2) (*SparseCellGrid[T], error) {
	if err := validateCellSize(cellSize); err != nil {
		return nil, err
	}
	return &SparseCellGrid[T]{
		cellSize: cellSize,
		cells:    make(map[CellKey]*SparseCell[T]),
		occupied: make(map[T][]CellKey),
	}, nil
}

func (g *SparseCellGrid[T]) CellSize() geometry.Vector2 { return g.cellSize }

// Len is the number of items in the grid.
func (g *SparseCellGrid[T]) Len() int { return len(g.items) }

// CellCount is the number of live cells.
func (g *SparseCellGrid[T]) CellCount() int { return len(g.cells) }

// Items yields every item in insertion order.
func (g *SparseCellGrid[T]) Items() iter.Seq[T] {
	return slices.Values(g.items)
}

// Cells yields every live cell in no particular order.
func (g *SparseCellGrid[T]) Cells() iter.Seq[*SparseCell[T]] {
	return maps.Values(g.cells)
}

// Cell returns the live cell at key.
func (g *SparseCellGrid[T]) Cell(key CellKey) (*SparseCell[T], bool) {
	c, ok := g.cells[key]
	return c, ok
}

// CellsOf returns the cells item is currently stored in. The result may be
// stale if the item moved since the last Update.
func (g *SparseCellGrid[T]) CellsOf(item T) []CellKey {
	return slices.Clone(g.occupied[item])
}

// Add inserts item into every cell its box overlaps.
func (g *SparseCellGrid[T]) Add(item T) error {
	var zero T
	if item == zero {
		return ErrNilItem
	}
	if _, ok := g.occupied[item]; ok {
		return ErrDuplicateItem
	}
	if err := validateBounds(item, g.cellSize); err != nil {
		return err
	}
	g.items = append(g.items, item)
	g.place(item)
	return nil
}

// Remove takes item out of the grid. It reports whether item was present.
func (g *SparseCellGrid[T]) Remove(item T) bool {
	i := slices.Index(g.items, item)
	if i < 0 {
		return false
	}
	g.items = slices.Delete(g.items, i, i+1)
	g.unplace(item)
	delete(g.occupied, item)
	return true
}

// Update re-buckets every item whose moved flag is set and clears the flag.
// Items whose bounds became invalid keep their flag, stay in the item list
// without any cell, and are reported in the returned error.
func (g *SparseCellGrid[T]) Update() error {
	var errs []error
	for _, item := range g.items {
		if !item.HasMoved() {
			continue
		}
		g.unplace(item)
		if err := validateBounds(item, g.cellSize); err != nil {
			g.occupied[item] = nil
			errs = append(errs, err)
			continue
		}
		g.place(item)
		item.SetHasMoved(false)
	}
	for key, cell := range g.cells {
		if cell.Len() == 0 {
			delete(g.cells, key)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("update sparse grid: %w", errors.Join(errs...))
	}
	return nil
}

// GetItemsNearItem lazily yields every other item sharing a cell with item's
// current box, each at most once. Mutating the grid while ranging over the
// sequence is undefined.
func (g *SparseCellGrid[T]) GetItemsNearItem(item T) iter.Seq[T] {
	return func(yield func(T) bool) {
		if validateBounds(item, g.cellSize) != nil {
			return
		}
		seen := map[T]struct{}{item: {}}
		lo, hi := cellRange(item.Position(), item.Size(), g.cellSize)
		for y := lo.Y; y <= hi.Y; y++ {
			for x := lo.X; x <= hi.X; x++ {
				cell, ok := g.cells[CellKey{X: x, Y: y}]
				if !ok {
					continue
				}
				for _, other := range cell.items {
					if _, dup := seen[other]; dup {
						continue
					}
					seen[other] = struct{}{}
					if !yield(other) {
						return
					}
				}
			}
		}
	}
}

func (g *SparseCellGrid[T]) place(item T) {
	lo, hi := cellRange(item.Position(), item.Size(), g.cellSize)
	keys := make([]CellKey, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	eachKey(lo, hi, func(key CellKey) {
		cell, ok := g.cells[key]
		if !ok {
			cell = &SparseCell[T]{key: key, bounds: cellBounds(key, g.cellSize)}
			g.cells[key] = cell
		}
		cell.add(item)
		keys = append(keys, key)
	})
	g.occupied[item] = keys
}

func (g *SparseCellGrid[T]) unplace(item T) {
	for _, key := range g.occupied[item] {
		cell, ok := g.cells[key]
		if !ok {
			continue
		}
		cell.remove(item)
		if cell.Len() == 0 {
			delete(g.cells, key)
		}
	}
	g.occupied[item] = nil
}
