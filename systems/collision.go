package systems

import (
	"errors"

	"github.com/automoto/tilephys/components"
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/automoto/tilephys/tags"
	"github.com/yohamta/donburi"
)

var ErrNoGrid = errors.New("world has no grid")

// UpdateCollisions moves every sprite by its velocity, refreshes both grids
// and resolves each sprite against the tiles and solid sprites around it.
// Errors from the grid update (sprites with invalid bounds) are returned
// after the frame has been resolved for every other sprite.
func UpdateCollisions(w donburi.World) error {
	entry, ok := components.Grid.First(w)
	if !ok {
		return ErrNoGrid
	}
	grid := components.Grid.Get(entry)

	tags.Sprite.Each(w, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		physics := components.Physics.Get(e)
		body.MoveBy(physics.Velocity())
	})

	err := grid.Sprites.Update()
	grid.Tiles.Update()

	tags.Sprite.Each(w, func(e *donburi.Entry) {
		resolveSprite(grid, components.Body.Get(e).SpriteBody, components.Physics.Get(e))
	})

	return err
}

func resolveSprite(grid *components.GridData, body *components.SpriteBody, physics *components.PhysicsData) {
	physics.OnGround = false
	physics.OnSlope = false
	physics.Carrier = nil

	// Flat tiles settle the body first so a ramp never sees a body that has
	// sunk below its bounds into the floor next to it.
	for _, tile := range grid.Tiles.GetCollidableNormalTiles(body) {
		applyResolution(body, physics, tile, tile.Hitbox().GetCollisionResolution(body.Bounds()))
	}
	for _, tile := range grid.Tiles.GetCollidableSlopedTiles(body) {
		applyResolution(body, physics, tile, tile.Hitbox().GetCollisionResolution(body.Bounds()))
	}

	if body.Solid {
		return
	}
	for other := range grid.Sprites.GetItemsNearItem(body) {
		if !other.Solid {
			continue
		}
		applyResolution(body, physics, nil, other.Bounds().GetCollisionResolution(body.Bounds()))
	}
}

// applyResolution moves the body out of the contact and stops it along the
// resolved axis when it was moving into the contact.
func applyResolution(body *components.SpriteBody, physics *components.PhysicsData, tile *components.TileBody, res geometry.Resolution) {
	if res.IsZero() {
		return
	}
	body.MoveBy(res.Distance)

	switch {
	case res.Distance.Y < 0:
		physics.OnGround = true
		physics.OnSlope = physics.OnSlope || res.Type == geometry.ResolutionSlope
		if tile != nil {
			physics.Carrier = tile
		}
		if physics.SpeedY > 0 {
			physics.SpeedY = 0
		}
	case res.Distance.Y > 0:
		if physics.SpeedY < 0 {
			physics.SpeedY = 0
		}
	}

	if (res.Distance.X < 0 && physics.SpeedX > 0) || (res.Distance.X > 0 && physics.SpeedX < 0) {
		physics.SpeedX = 0
	}
}

