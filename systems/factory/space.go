package factory

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/tilephys/archetypes"
	"github.com/automoto/tilephys/components"
	"github.com/automoto/tilephys/config"
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/automoto/tilephys/shared/spatial"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

var ErrNoGrid = errors.New("world has no grid")

// CreateSpace creates the resolv space that holds trigger volumes. The space
// starts at area's top-left corner and is rounded up to whole cells.
func CreateSpace(w donburi.World, area geometry.BoundingRectangle, cellWidth, cellHeight int) *donburi.Entry {
	cols := max(1, int(math.Ceil(float64(area.Width)/float64(cellWidth))))
	rows := max(1, int(math.Ceil(float64(area.Height)/float64(cellHeight))))

	space := archetypes.Space.Spawn(w)
	components.Space.SetValue(space, components.SpaceData{
		Space:  resolv.NewSpace(cols*cellWidth, rows*cellHeight, cellWidth, cellHeight),
		Origin: area.Position(),
	})
	return space
}

// CreateGrid creates the sprite grid and the tile quad tree.
func CreateGrid(w donburi.World, cfg config.GridConfig) (*donburi.Entry, error) {
	sprites, err := spatial.NewSparseCellGrid[*components.SpriteBody](geometry.Vector2{X: cfg.SpriteCellWidth, Y: cfg.SpriteCellHeight})
	if err != nil {
		return nil, fmt.Errorf("sprite grid: %w", err)
	}
	tiles, err := spatial.NewQuadTree[*components.SpriteBody, *components.TileBody](geometry.Vector2{X: cfg.TileCellWidth, Y: cfg.TileCellHeight})
	if err != nil {
		return nil, fmt.Errorf("tile grid: %w", err)
	}

	grid := archetypes.Grid.Spawn(w)
	components.Grid.SetValue(grid, components.GridData{Sprites: sprites, Tiles: tiles})
	return grid, nil
}

func gridOf(w donburi.World) (*components.GridData, error) {
	entry, ok := components.Grid.First(w)
	if !ok {
		return nil, ErrNoGrid
	}
	return components.Grid.Get(entry), nil
}

func spaceOf(w donburi.World) *components.SpaceData {
	if entry, ok := components.Space.First(w); ok {
		return components.Space.Get(entry)
	}
	return nil
}

// addToSpace places obj on area and adds it to the trigger space, if the
// world has one.
func addToSpace(w donburi.World, obj *resolv.Object, area geometry.BoundingRectangle) {
	if space := spaceOf(w); space != nil {
		space.Place(obj, area)
		space.Add(obj)
	}
}
