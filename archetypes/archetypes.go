package archetypes

import (
	"github.com/automoto/tilephys/components"
	"github.com/automoto/tilephys/tags"
	"github.com/yohamta/donburi"
)

var (
	Sprite = newArchetype(
		tags.Sprite,
		components.Body,
		components.Physics,
		components.Probe,
		components.Spawn,
	)
	Platform = newArchetype(
		tags.Platform,
		components.Tile,
	)
	Ramp = newArchetype(
		tags.Ramp,
		components.Tile,
	)
	FloatingPlatform = newArchetype(
		tags.FloatingPlatform,
		components.Tile,
		components.Tween,
	)
	DeadZone = newArchetype(
		tags.DeadZone,
		components.Trigger,
	)
	Space = newArchetype(
		components.Space,
	)
	Grid = newArchetype(
		components.Grid,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
