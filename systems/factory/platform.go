package factory

import (
	"fmt"

	"github.com/automoto/tilephys/archetypes"
	"github.com/automoto/tilephys/components"
	"github.com/automoto/tilephys/config"
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/yohamta/donburi"
)

// CreateTile creates a static tile. Sloped hitboxes become ramps.
func CreateTile(w donburi.World, hitbox geometry.Hitbox, excluded bool) (*donburi.Entry, error) {
	body, err := addTileBody(w, hitbox, excluded)
	if err != nil {
		return nil, err
	}

	var tile *donburi.Entry
	if geometry.IsSloped(hitbox) {
		tile = archetypes.Ramp.Spawn(w)
	} else {
		tile = archetypes.Platform.Spawn(w)
	}
	components.Tile.SetValue(tile, components.TileData{TileBody: body})

	return tile, nil
}

func CreateFloatingPlatform(w donburi.World, area geometry.BoundingRectangle, cfg config.PlatformConfig) (*donburi.Entry, error) {
	body, err := addTileBody(w, area, false)
	if err != nil {
		return nil, err
	}

	platform := archetypes.FloatingPlatform.Spawn(w)
	components.Tile.SetValue(platform, components.TileData{TileBody: body})

	// The floating platform moves back and forth between its spawn point
	// and Travel pixels above it.
	components.Tween.SetValue(platform, components.TweenData{
		From:     area.Y,
		To:       area.Y - cfg.Travel,
		Duration: cfg.Duration,
		Outbound: true,
	})

	return platform, nil
}

func addTileBody(w donburi.World, hitbox geometry.Hitbox, excluded bool) (*components.TileBody, error) {
	grid, err := gridOf(w)
	if err != nil {
		return nil, err
	}

	body := components.NewTileBody(hitbox)
	body.Excluded = excluded
	if err := grid.Tiles.AddTile(body); err != nil {
		return nil, fmt.Errorf("add tile at %v: %w", hitbox.BoundingBox().Position(), err)
	}

	return body, nil
}
