package components

import (
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// TriggerData is a volume that reacts to sprites overlapping it. It carries
// no hitbox and never takes part in collision resolution.
type TriggerData struct {
	*resolv.Object
}

var Trigger = donburi.NewComponentType[TriggerData]()

// ProbeData mirrors a sprite body into the trigger space.
type ProbeData struct {
	*resolv.Object
}

var Probe = donburi.NewComponentType[ProbeData]()

// SpaceData is the trigger space. Resolv cells start at (0,0), so world
// coordinates are shifted by Origin on their way into the space.
type SpaceData struct {
	*resolv.Space
	Origin geometry.Vector2
}

// Area is the world rectangle covered by the space's cells.
func (s *SpaceData) Area() geometry.BoundingRectangle {
	return geometry.NewBoundingRectangle(s.Origin.X, s.Origin.Y,
		float32(s.Width()*s.CellWidth), float32(s.Height()*s.CellHeight))
}

// Place moves obj onto the world rectangle r.
func (s *SpaceData) Place(obj *resolv.Object, r geometry.BoundingRectangle) {
	obj.X = float64(r.X) - float64(s.Origin.X)
	obj.Y = float64(r.Y) - float64(s.Origin.Y)
	obj.W, obj.H = float64(r.Width), float64(r.Height)
	if obj.Space != nil {
		obj.Update()
	}
}

// WorldRect returns obj's rectangle in world coordinates.
func (s *SpaceData) WorldRect(obj *resolv.Object) geometry.BoundingRectangle {
	return geometry.NewBoundingRectangle(
		float32(obj.X+float64(s.Origin.X)),
		float32(obj.Y+float64(s.Origin.Y)),
		float32(obj.W),
		float32(obj.H),
	)
}

var Space = donburi.NewComponentType[SpaceData]()
