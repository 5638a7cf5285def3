package factory

import (
	"github.com/automoto/tilephys/archetypes"
	"github.com/automoto/tilephys/components"
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/automoto/tilephys/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateDeadZone creates an invisible trigger that sends sprites back to
// their spawn point when touched
func CreateDeadZone(w donburi.World, area geometry.BoundingRectangle) *donburi.Entry {
	zone := archetypes.DeadZone.Spawn(w)

	obj := resolv.NewObject(float64(area.X), float64(area.Y), float64(area.Width), float64(area.Height), tags.ResolvDeadZone)
	obj.Data = zone
	components.Trigger.SetValue(zone, components.TriggerData{Object: obj})

	addToSpace(w, obj, area)

	return zone
}
