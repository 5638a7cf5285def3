// Package leveldata parses level files into plain collision data. It has no
// dependencies on donburi or resolv, only geometry.
package leveldata

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/tilephys/shared/geometry"
)

// Slope names written by the level editor
const (
	Slope45UpRight = "45_up_right"
	Slope45UpLeft  = "45_up_left"
)

var (
	ErrUnknownSlope = errors.New("unknown slope")
	ErrInvalidLevel = errors.New("invalid level")
	ErrNoLevels     = errors.New("no level files found")
)

// Level holds all collision-relevant data of one level.
type Level struct {
	Name              string       `yaml:"name"`
	Width             int          `yaml:"width"` // pixels
	Height            int          `yaml:"height"`
	TileWidth         int          `yaml:"tile_width"`
	TileHeight        int          `yaml:"tile_height"`
	Tiles             []TileDef    `yaml:"tiles"`
	SpawnPoints       []SpawnPoint `yaml:"spawns"`
	DeadZones         []Area       `yaml:"dead_zones"`
	FloatingPlatforms []Area       `yaml:"floating_platforms"`
}

// TileDef represents one solid tile.
type TileDef struct {
	X        float32 `yaml:"x"`
	Y        float32 `yaml:"y"`
	W        float32 `yaml:"w"`
	H        float32 `yaml:"h"`
	Slope    string  `yaml:"slope,omitempty"` // "", "45_up_right", "45_up_left" or a sides name
	Excluded bool    `yaml:"excluded,omitempty"`
}

// Hitbox builds the tile's collision shape.
func (t TileDef) Hitbox() (geometry.Hitbox, error) {
	bounds := geometry.NewBoundingRectangle(t.X, t.Y, t.W, t.H)
	if t.Slope == "" {
		return bounds, nil
	}
	sides, err := ParseSlope(t.Slope)
	if err != nil {
		return nil, err
	}
	return geometry.NewRightTriangle(bounds, sides)
}

// Area is an axis-aligned region such as a dead zone.
type Area struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	W float32 `yaml:"w"`
	H float32 `yaml:"h"`
}

func (a Area) Rect() geometry.BoundingRectangle {
	return geometry.NewBoundingRectangle(a.X, a.Y, a.W, a.H)
}

// SpawnPoint represents a sprite spawn location.
type SpawnPoint struct {
	X     float32 `yaml:"x"`
	Y     float32 `yaml:"y"`
	Index int     `yaml:"index"`
}

// ParseSlope maps a level slope name onto the triangle's sloped sides.
// A ramp rising to the right has its hypotenuse on the top-left.
func ParseSlope(name string) (geometry.SlopedSides, error) {
	switch name {
	case Slope45UpRight, geometry.TopLeft.String():
		return geometry.TopLeft, nil
	case Slope45UpLeft, geometry.TopRight.String():
		return geometry.TopRight, nil
	case geometry.BottomLeft.String():
		return geometry.BottomLeft, nil
	case geometry.BottomRight.String():
		return geometry.BottomRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlope, name)
}

// Validate checks that every tile builds a hitbox and every area has a
// finite position and a size.
func (l *Level) Validate() error {
	if l.TileWidth <= 0 || l.TileHeight <= 0 {
		return fmt.Errorf("%w: tile size %dx%d", ErrInvalidLevel, l.TileWidth, l.TileHeight)
	}
	var errs []error
	for i, t := range l.Tiles {
		if err := validateArea(Area{X: t.X, Y: t.Y, W: t.W, H: t.H}); err != nil {
			errs = append(errs, fmt.Errorf("tile %d: %w", i, err))
			continue
		}
		if _, err := t.Hitbox(); err != nil {
			errs = append(errs, fmt.Errorf("tile %d at (%v,%v): %w", i, t.X, t.Y, err))
		}
	}
	for i, a := range l.DeadZones {
		if err := validateArea(a); err != nil {
			errs = append(errs, fmt.Errorf("dead zone %d: %w", i, err))
		}
	}
	for i, a := range l.FloatingPlatforms {
		if err := validateArea(a); err != nil {
			errs = append(errs, fmt.Errorf("floating platform %d: %w", i, err))
		}
	}
	for _, sp := range l.SpawnPoints {
		if !finite(sp.X, sp.Y) {
			errs = append(errs, fmt.Errorf("%w: spawn point %d at (%v,%v) is not finite", ErrInvalidLevel, sp.Index, sp.X, sp.Y))
		}
	}
	return errors.Join(errs...)
}

func validateArea(a Area) error {
	if !finite(a.X, a.Y, a.W, a.H) {
		return fmt.Errorf("%w: (%v,%v %vx%v) is not finite", ErrInvalidLevel, a.X, a.Y, a.W, a.H)
	}
	if a.W <= 0 || a.H <= 0 {
		return fmt.Errorf("%w: %vx%v has no area", ErrInvalidLevel, a.W, a.H)
	}
	return nil
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}
