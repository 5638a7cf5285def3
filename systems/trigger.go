package systems

import (
	"github.com/automoto/tilephys/components"
	"github.com/automoto/tilephys/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// UpdateTriggers syncs sprite probes into the trigger space and sends every
// sprite that overlaps a dead zone back to its spawn point. It returns the
// sprites that were respawned this frame.
func UpdateTriggers(w donburi.World) []*donburi.Entry {
	entry, ok := components.Space.First(w)
	if !ok {
		return nil
	}
	space := components.Space.Get(entry)
	area := space.Area()

	var respawned []*donburi.Entry
	tags.Sprite.Each(w, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		// Sprites off the space cannot touch a trigger; skipping them also
		// keeps non-finite positions out of resolv.
		if !body.Position().IsFinite() || !area.Intersects(body.Bounds()) {
			return
		}
		probe := components.Probe.Get(e)
		space.Place(probe.Object, body.Bounds())

		if !inDeadZone(space, probe.Object) {
			return
		}

		spawn := components.Spawn.Get(e)
		spawn.Deaths++
		body.SetPosition(spawn.Point)
		stop(components.Physics.Get(e))
		space.Place(probe.Object, body.Bounds())
		respawned = append(respawned, e)
	})
	return respawned
}

// The space only narrows candidates down to shared cells; the exact overlap
// test runs in world coordinates.
func inDeadZone(space *components.SpaceData, probe *resolv.Object) bool {
	check := probe.Check(0, 0, tags.ResolvDeadZone)
	if check == nil {
		return false
	}
	bounds := space.WorldRect(probe)
	for _, zone := range check.Objects {
		if space.WorldRect(zone).Intersects(bounds) {
			return true
		}
	}
	return false
}

func stop(p *components.PhysicsData) {
	p.SpeedX, p.SpeedY = 0, 0
	p.OnGround, p.OnSlope = false, false
	p.Carrier = nil
}
