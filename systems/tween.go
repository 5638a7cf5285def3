package systems

import (
	"github.com/automoto/tilephys/components"
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// UpdateTweens advances floating platforms by dt seconds. Sprites that stood
// on a platform last frame are carried along with it.
func UpdateTweens(w donburi.World, dt float32) {
	components.Tween.Each(w, func(e *donburi.Entry) {
		tw := components.Tween.Get(e)
		tile := components.Tile.Get(e).TileBody

		if tw.Current == nil {
			tw.Current = newLeg(tw)
		}
		y, finished := tw.Current.Update(dt)

		delta := geometry.Vector2{Y: y - tile.Position().Y}
		tile.MoveBy(delta)
		carry(w, tile, delta)

		// Turn around at either end of the trip
		if finished {
			tw.Outbound = !tw.Outbound
			tw.Current = newLeg(tw)
		}
	})
}

func newLeg(tw *components.TweenData) *gween.Tween {
	if tw.Outbound {
		return gween.New(tw.From, tw.To, tw.Duration, ease.Linear)
	}
	return gween.New(tw.To, tw.From, tw.Duration, ease.Linear)
}

func carry(w donburi.World, tile *components.TileBody, delta geometry.Vector2) {
	if delta.IsZero() {
		return
	}
	components.Physics.Each(w, func(e *donburi.Entry) {
		if components.Physics.Get(e).Carrier == tile {
			components.Body.Get(e).MoveBy(delta)
		}
	})
}
