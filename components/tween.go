package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// TweenData drives a floating platform back and forth between From and To
// on the Y axis, one leg per Duration seconds.
type TweenData struct {
	From     float32
	To       float32
	Duration float32
	Outbound bool
	Current  *gween.Tween
}

var Tween = donburi.NewComponentType[TweenData]()
