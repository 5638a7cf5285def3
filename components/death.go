package components

import (
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/yohamta/donburi"
)

// SpawnData remembers where a sprite returns to after touching a dead zone.
type SpawnData struct {
	Point  geometry.Vector2
	Deaths int
}

var Spawn = donburi.NewComponentType[SpawnData]()
