package components

import (
	"github.com/automoto/tilephys/shared/spatial"
	"github.com/yohamta/donburi"
)

// GridData holds the broad phase indexes of a section. Sprites live in both:
// the sparse grid answers sprite-vs-sprite queries, the quad tree answers
// sprite-vs-tile queries.
type GridData struct {
	Sprites *spatial.SparseCellGrid[*SpriteBody]
	Tiles   *spatial.QuadTree[*SpriteBody, *TileBody]
}

var Grid = donburi.NewComponentType[GridData]()
