package section

import (
	"math"
	"testing"

	"github.com/automoto/tilephys/config"
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/automoto/tilephys/shared/leveldata"
	"github.com/automoto/tilephys/shared/spatial"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"go.uber.org/zap/zaptest"
)

func newTestSection(t *testing.T, level *leveldata.Level) *Section {
	t.Helper()
	s, err := NewSection(config.Default(), level, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func rect(x, y, w, h float32) geometry.BoundingRectangle {
	return geometry.NewBoundingRectangle(x, y, w, h)
}

func floorLevel(tiles int) *leveldata.Level {
	level := &leveldata.Level{Name: "floor", Width: 16 * tiles, Height: 64, TileWidth: 16, TileHeight: 16}
	for i := 0; i < tiles; i++ {
		level.Tiles = append(level.Tiles, leveldata.TileDef{X: float32(16 * i), Y: 32, W: 16, H: 16})
	}
	return level
}

func stateOf(t *testing.T, s *Section, e donburi.Entity) SpriteState {
	t.Helper()
	st, err := s.Sprite(e)
	require.NoError(t, err)
	return st
}

func TestNewSection(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s, err := NewSection(nil, nil, nil)
		require.NoError(t, err)
		require.Equal(t, "empty", s.Level().Name)
		require.Zero(t, s.Stats().Tiles)
	})

	t.Run("Invalid Config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Grid.SpriteCellWidth = 0
		_, err := NewSection(cfg, nil, nil)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("Invalid Tile", func(t *testing.T) {
		level := floorLevel(1)
		level.Tiles[0].Slope = "sideways"
		_, err := NewSection(nil, level, nil)
		require.ErrorIs(t, err, leveldata.ErrUnknownSlope)
	})

	t.Run("Non-Finite Dead Zone", func(t *testing.T) {
		level := floorLevel(1)
		level.DeadZones = []leveldata.Area{{X: 0, Y: 0, W: float32(math.Inf(1)), H: 16}}
		_, err := NewSection(nil, level, nil)
		require.ErrorIs(t, err, leveldata.ErrInvalidLevel)
	})

	t.Run("Level Contents", func(t *testing.T) {
		level := floorLevel(4)
		level.FloatingPlatforms = []leveldata.Area{{X: 80, Y: 0, W: 32, H: 8}}
		s := newTestSection(t, level)
		require.Equal(t, 5, s.Stats().Tiles)
	})
}

func TestSection_FallingOntoRamp(t *testing.T) {
	s := newTestSection(t, nil)
	ramp, err := geometry.NewRightTriangle(rect(0, 16, 16, 16), geometry.TopLeft)
	require.NoError(t, err)
	require.NoError(t, s.AddTile(ramp, false))

	sprite, err := s.AddSprite(rect(0, 0, 16, 16), false)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_, err := s.Step()
		require.NoError(t, err)
		require.Zero(t, stateOf(t, s, sprite).Bounds.X, "frame %d: never pushed sideways", s.Frame())
	}

	st := stateOf(t, s, sprite)
	require.True(t, st.OnGround)
	require.True(t, st.OnSlope)
	require.Equal(t, rect(0, 8, 16, 16), st.Bounds, "bottom rests on the slope at the center x")
	require.Equal(t, ramp.GetPointOnSlope(8).Y, st.Bounds.Bottom())
}

func TestSection_LandingOnFloor(t *testing.T) {
	s := newTestSection(t, floorLevel(3))
	sprite, err := s.AddSprite(rect(8, 0, 16, 16), false)
	require.NoError(t, err)

	require.NoError(t, s.Run(20, nil))

	st := stateOf(t, s, sprite)
	require.Equal(t, rect(8, 16, 16, 16), st.Bounds)
	require.True(t, st.OnGround)
	require.False(t, st.OnSlope)
	require.Zero(t, st.Velocity.Y)

	ground, found, err := s.GroundBelow(sprite)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, float32(32), ground.BoundingBox().Top())
}

func TestSection_WalkingIntoWall(t *testing.T) {
	level := floorLevel(4)
	level.Tiles = append(level.Tiles, leveldata.TileDef{X: 48, Y: 16, W: 16, H: 16})
	s := newTestSection(t, level)

	sprite, err := s.AddSprite(rect(8, 16, 16, 16), false)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.SetVelocity(sprite, geometry.Vector2{X: 6}))
		_, err := s.Step()
		require.NoError(t, err)
	}

	st := stateOf(t, s, sprite)
	require.Equal(t, float32(48), st.Bounds.Right())
	require.Equal(t, float32(16), st.Bounds.Y)
	require.True(t, st.OnGround)
	require.Zero(t, st.Velocity.X)
}

func TestSection_SolidSprites(t *testing.T) {
	s := newTestSection(t, floorLevel(5))
	wall, err := s.AddSprite(rect(40, 16, 16, 16), true)
	require.NoError(t, err)
	mover, err := s.AddSprite(rect(8, 16, 16, 16), false)
	require.NoError(t, err)
	ghost, err := s.AddSprite(rect(0, 16, 16, 16), false)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.SetVelocity(mover, geometry.Vector2{X: 6}))
		_, err := s.Step()
		require.NoError(t, err)
	}

	require.Equal(t, float32(40), stateOf(t, s, mover).Bounds.Right())
	require.Equal(t, float32(40), stateOf(t, s, wall).Bounds.X, "solid sprites are not pushed")
	require.Equal(t, float32(0), stateOf(t, s, ghost).Bounds.X, "non-solid sprites overlap freely")
}

func TestSection_DeadZone(t *testing.T) {
	level := &leveldata.Level{
		Name: "pit", Width: 64, Height: 64, TileWidth: 16, TileHeight: 16,
		DeadZones: []leveldata.Area{{X: 0, Y: 100, W: 64, H: 20}},
	}
	s := newTestSection(t, level)
	sprite, err := s.AddSprite(rect(0, 0, 16, 16), false)
	require.NoError(t, err)

	respawns := 0
	require.NoError(t, s.Run(15, func(st Stats) { respawns += st.Respawns }))

	require.Equal(t, 1, respawns)
	st := stateOf(t, s, sprite)
	require.Equal(t, 1, st.Deaths)
	require.Equal(t, rect(0, 0, 16, 16), st.Bounds)
	require.Equal(t, geometry.Zero, st.Velocity)
}

func TestSection_DeadZonesPastTheMap(t *testing.T) {
	tests := []struct {
		name   string
		level  *leveldata.Level
		sprite geometry.BoundingRectangle
	}{
		{
			name: "Left Of The Origin",
			level: func() *leveldata.Level {
				level := floorLevel(4)
				level.DeadZones = []leveldata.Area{{X: -48, Y: 0, W: 32, H: 64}}
				return level
			}(),
			sprite: rect(-40, 10, 8, 8),
		},
		{
			name: "Above The Origin",
			level: &leveldata.Level{
				Name: "sky", Width: 64, Height: 64, TileWidth: 16, TileHeight: 16,
				DeadZones: []leveldata.Area{{X: 0, Y: -40, W: 64, H: 24}},
			},
			sprite: rect(8, -30, 8, 8),
		},
		{
			name: "Partial Last Cell",
			level: &leveldata.Level{
				Name: "narrow", Width: 70, Height: 64, TileWidth: 16, TileHeight: 16,
				DeadZones: []leveldata.Area{{X: 66, Y: 0, W: 4, H: 64}},
			},
			sprite: rect(66, 10, 4, 4),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSection(t, tt.level)
			sprite, err := s.AddSprite(tt.sprite, false)
			require.NoError(t, err)

			stats, err := s.Step()
			require.NoError(t, err)
			require.Equal(t, 1, stats.Respawns)
			require.Equal(t, 1, stateOf(t, s, sprite).Deaths)
		})
	}
}

func TestSection_FloatingPlatform(t *testing.T) {
	cfg := config.Default()
	cfg.Platform = config.PlatformConfig{Travel: 32, Duration: 1}
	level := &leveldata.Level{
		Name: "lift", Width: 64, Height: 128, TileWidth: 16, TileHeight: 16,
		FloatingPlatforms: []leveldata.Area{{X: 0, Y: 64, W: 32, H: 8}},
	}
	s, err := NewSection(cfg, level, zaptest.NewLogger(t))
	require.NoError(t, err)
	sprite, err := s.AddSprite(rect(8, 48, 16, 16), false)
	require.NoError(t, err)

	require.NoError(t, s.Run(30, nil))

	platforms := s.TilesInArea(rect(0, 0, 64, 128))
	require.Len(t, platforms, 1)
	top := platforms[0].BoundingBox().Top()
	require.InDelta(t, 48, top, 1, "half way up after half a leg")

	st := stateOf(t, s, sprite)
	require.True(t, st.OnGround)
	require.InDelta(t, top, st.Bounds.Bottom(), 1e-3, "rides on the platform")
	require.Equal(t, float32(8), st.Bounds.X)
}

func TestSection_Queries(t *testing.T) {
	level := floorLevel(3)
	level.Tiles[2].Excluded = true
	s := newTestSection(t, level)

	require.Len(t, s.TilesInArea(rect(0, 30, 48, 4)), 2, "excluded tiles are skipped")
	require.Empty(t, s.TilesInArea(rect(0, 0, 48, 16)))

	sprite, err := s.AddSprite(rect(0, 0, 8, 8), false)
	require.NoError(t, err)
	_, found, err := s.GroundBelow(sprite)
	require.NoError(t, err)
	require.True(t, found)

	high, err := s.AddSprite(rect(100, -400, 8, 8), false)
	require.NoError(t, err)
	_, found, err = s.GroundBelow(high)
	require.NoError(t, err)
	require.False(t, found, "nothing within the search range")
}

func TestSection_RemoveSprite(t *testing.T) {
	s := newTestSection(t, floorLevel(2))
	a, err := s.AddSprite(rect(0, 0, 8, 8), false)
	require.NoError(t, err)
	b, err := s.AddSprite(rect(4, 0, 8, 8), false)
	require.NoError(t, err)
	require.Equal(t, []donburi.Entity{a, b}, s.Sprites())

	require.NoError(t, s.RemoveSprite(a))
	require.ErrorIs(t, s.RemoveSprite(a), ErrUnknownSprite)
	require.Equal(t, []donburi.Entity{b}, s.Sprites())
	require.Equal(t, 1, s.Stats().Sprites)

	_, err = s.Sprite(a)
	require.ErrorIs(t, err, ErrUnknownSprite)
	_, _, err = s.GroundBelow(a)
	require.ErrorIs(t, err, ErrUnknownSprite)

	require.NoError(t, s.Run(5, nil))
}

func TestSection_InvalidBoundsSurfaceFromStep(t *testing.T) {
	s := newTestSection(t, floorLevel(2))
	sprite, err := s.AddSprite(rect(0, 0, 8, 8), false)
	require.NoError(t, err)
	other, err := s.AddSprite(rect(16, 0, 8, 8), false)
	require.NoError(t, err)

	nan := float32(math.NaN())
	require.NoError(t, s.SetVelocity(sprite, geometry.Vector2{Y: nan}))
	_, err = s.Step()
	require.ErrorIs(t, err, spatial.ErrInvalidBounds)

	require.Greater(t, stateOf(t, s, other).Bounds.Y, float32(0), "other sprites keep simulating")
}

func TestSection_SpawnSprites(t *testing.T) {
	level := floorLevel(4)
	level.SpawnPoints = []leveldata.SpawnPoint{{X: 0, Y: 0}, {X: 40, Y: 0, Index: 1}}
	s := newTestSection(t, level)

	spawned, err := s.SpawnSprites(2, geometry.Vector2{X: 8, Y: 8})
	require.NoError(t, err)
	require.Len(t, spawned, 4)
	require.Equal(t, rect(8, 0, 8, 8), stateOf(t, s, spawned[1]).Bounds)
	require.Equal(t, rect(40, 0, 8, 8), stateOf(t, s, spawned[2]).Bounds)
}
