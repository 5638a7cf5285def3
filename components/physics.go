package components

import (
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/yohamta/donburi"
)

type PhysicsData struct {
	SpeedX   float32
	SpeedY   float32
	Gravity  float32
	Friction float32
	MaxSpeed float32
	MaxFall  float32
	MaxRise  float32
	OnGround bool
	OnSlope  bool

	// Carrier is the kinematic tile the body stood on last frame.
	Carrier *TileBody
}

func (p *PhysicsData) Velocity() geometry.Vector2 {
	return geometry.Vector2{X: p.SpeedX, Y: p.SpeedY}
}

var Physics = donburi.NewComponentType[PhysicsData]()
