package tags

import "github.com/yohamta/donburi"

var (
	Sprite           = donburi.NewTag().SetName("Sprite")
	Platform         = donburi.NewTag().SetName("Platform")
	Ramp             = donburi.NewTag().SetName("Ramp")
	FloatingPlatform = donburi.NewTag().SetName("FloatingPlatform")
	DeadZone         = donburi.NewTag().SetName("DeadZone")
)

// Resolv tags for the trigger space
const (
	ResolvSprite   = "sprite"
	ResolvDeadZone = "deadzone"
)

