package systems

import (
	"github.com/automoto/tilephys/components"
	"github.com/automoto/tilephys/shared/gamemath"
	"github.com/yohamta/donburi"
)

// UpdatePhysics applies friction and gravity to every body with physics.
func UpdatePhysics(w donburi.World) {
	components.Physics.Each(w, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)

		physics.SpeedX = gamemath.ApplyFriction(physics.SpeedX, physics.Friction)
		physics.SpeedX = gamemath.ClampSpeed(physics.SpeedX, physics.MaxSpeed)

		physics.SpeedY = gamemath.ApplyGravity(physics.SpeedY, physics.Gravity, physics.MaxRise, physics.MaxFall)
	})
}
