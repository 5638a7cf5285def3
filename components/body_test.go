package components

import (
	"testing"

	"github.com/automoto/tilephys/shared/geometry"
	"github.com/automoto/tilephys/shared/spatial"
	"github.com/stretchr/testify/require"
)

var (
	_ spatial.Movable = (*SpriteBody)(nil)
	_ spatial.Tile    = (*TileBody)(nil)
	_ spatial.Movable = (*TileBody)(nil)
)

func TestSpriteBody(t *testing.T) {
	b := NewSpriteBody(4, 8, 16, 24)
	require.False(t, b.HasMoved())
	require.Equal(t, geometry.NewBoundingRectangle(4, 8, 16, 24), b.Bounds())

	b.MoveBy(geometry.Zero)
	require.False(t, b.HasMoved(), "zero moves are ignored")
	b.SetPosition(geometry.Vector2{X: 4, Y: 8})
	require.False(t, b.HasMoved())

	b.MoveBy(geometry.Vector2{X: 1, Y: -2})
	require.True(t, b.HasMoved())
	require.Equal(t, geometry.Vector2{X: 5, Y: 6}, b.Position())

	b.SetHasMoved(false)
	b.SetPosition(geometry.Vector2{X: 0, Y: 0})
	require.True(t, b.HasMoved())
	require.Equal(t, geometry.Vector2{X: 16, Y: 24}, b.Size())
}

func TestTileBody_MoveBy(t *testing.T) {
	t.Run("Rectangle", func(t *testing.T) {
		tile := NewTileBody(geometry.NewBoundingRectangle(0, 16, 16, 16))
		tile.MoveBy(geometry.Vector2{X: 0, Y: -4})
		require.True(t, tile.HasMoved())
		require.Equal(t, geometry.NewBoundingRectangle(0, 12, 16, 16), tile.Hitbox())
		require.Equal(t, geometry.Vector2{X: 0, Y: 12}, tile.Position())
	})

	t.Run("Triangle Keeps Sides", func(t *testing.T) {
		tri, err := geometry.NewRightTriangle(geometry.NewBoundingRectangle(0, 0, 16, 16), geometry.TopRight)
		require.NoError(t, err)
		tile := NewTileBody(tri)
		tile.MoveBy(geometry.Vector2{X: 16, Y: 0})

		moved, ok := tile.Hitbox().(geometry.RightTriangle)
		require.True(t, ok)
		require.Equal(t, geometry.TopRight, moved.SlopedSides)
		require.Equal(t, geometry.NewBoundingRectangle(16, 0, 16, 16), moved.Bounds)
		require.Equal(t, geometry.Vector2{X: 16, Y: 16}, tile.Size())
	})
}
