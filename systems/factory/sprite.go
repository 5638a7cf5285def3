package factory

import (
	"fmt"

	"github.com/automoto/tilephys/archetypes"
	"github.com/automoto/tilephys/components"
	"github.com/automoto/tilephys/config"
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/automoto/tilephys/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateSprite creates a moving body. Solid sprites are kinematic: they are
// not pushed by other sprites but push them out of themselves.
func CreateSprite(w donburi.World, bounds geometry.BoundingRectangle, solid bool, cfg config.PhysicsConfig) (*donburi.Entry, error) {
	grid, err := gridOf(w)
	if err != nil {
		return nil, err
	}

	body := components.NewSpriteBody(bounds.X, bounds.Y, bounds.Width, bounds.Height)
	body.Solid = solid
	if err := grid.Sprites.Add(body); err != nil {
		return nil, fmt.Errorf("add sprite at %v: %w", bounds.Position(), err)
	}
	if err := grid.Tiles.AddSprite(body); err != nil {
		grid.Sprites.Remove(body)
		return nil, fmt.Errorf("add sprite at %v: %w", bounds.Position(), err)
	}

	sprite := archetypes.Sprite.Spawn(w)
	components.Body.SetValue(sprite, components.BodyData{SpriteBody: body})
	components.Physics.SetValue(sprite, components.PhysicsData{
		Gravity:  cfg.Gravity,
		Friction: cfg.Friction,
		MaxSpeed: cfg.MaxSpeed,
		MaxFall:  cfg.MaxFallSpeed,
		MaxRise:  cfg.MaxRiseSpeed,
	})
	components.Spawn.SetValue(sprite, components.SpawnData{Point: bounds.Position()})

	probe := resolv.NewObject(float64(bounds.X), float64(bounds.Y), float64(bounds.Width), float64(bounds.Height), tags.ResolvSprite)
	probe.Data = sprite
	components.Probe.SetValue(sprite, components.ProbeData{Object: probe})
	addToSpace(w, probe, bounds)

	return sprite, nil
}

// RemoveSprite takes the sprite out of both grids and the trigger space
// before removing the entity.
func RemoveSprite(w donburi.World, sprite *donburi.Entry) error {
	grid, err := gridOf(w)
	if err != nil {
		return err
	}

	body := components.Body.Get(sprite).SpriteBody
	grid.Sprites.Remove(body)
	grid.Tiles.RemoveSprite(body)

	if space := spaceOf(w); space != nil {
		space.Remove(components.Probe.Get(sprite).Object)
	}

	w.Remove(sprite.Entity())
	return nil
}
