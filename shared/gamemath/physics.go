// Package gamemath holds the per-frame velocity rules shared by the physics
// system.
package gamemath

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speed, friction float32) float32 {
	if speed > friction {
		return speed - friction
	}
	if speed < -friction {
		return speed + friction
	}
	return 0
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float32) float32 {
	return ClampRange(speed, -max, max)
}

// ClampRange clamps speed to [lo, hi]. Rising speeds are negative, so the
// vertical range is [maxRise, maxFall].
func ClampRange(speed, lo, hi float32) float32 {
	if speed > hi {
		return hi
	}
	if speed < lo {
		return lo
	}
	return speed
}

// ApplyGravity accelerates a vertical speed and keeps it inside the rise and
// fall limits.
func ApplyGravity(speedY, gravity, maxRise, maxFall float32) float32 {
	return ClampRange(speedY+gravity, maxRise, maxFall)
}
