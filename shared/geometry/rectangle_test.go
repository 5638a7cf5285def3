package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomRect(rng *rand.Rand) BoundingRectangle {
	return NewBoundingRectangle(
		float32(rng.Intn(40)),
		float32(rng.Intn(40)),
		float32(1+rng.Intn(20)),
		float32(1+rng.Intn(20)),
	)
}

func TestBoundingRectangle_DerivedPoints(t *testing.T) {
	r := NewBoundingRectangle(2, 3, 10, 20)

	require.Equal(t, float32(2), r.Left())
	require.Equal(t, float32(3), r.Top())
	require.Equal(t, float32(12), r.Right())
	require.Equal(t, float32(23), r.Bottom())
	require.Equal(t, Vector2{7, 13}, r.Center())
	require.Equal(t, Vector2{7, 3}, r.TopCenter())
	require.Equal(t, Vector2{7, 23}, r.BottomCenter())
	require.Equal(t, Vector2{2, 13}, r.LeftCenter())
	require.Equal(t, Vector2{12, 13}, r.RightCenter())
	require.Equal(t, Vector2{12, 23}, r.BottomRight())
	require.Equal(t, r, RectFromVectors(r.Position(), r.Size()))
	require.Equal(t, NewBoundingRectangle(3, 1, 10, 20), r.Translate(Vector2{1, -2}))
}

func TestBoundingRectangle_Contains(t *testing.T) {
	r := NewBoundingRectangle(2, 3, 10, 20)

	tests := []struct {
		name      string
		point     Vector2
		strict    bool
		inclusive bool
	}{
		{"inside", Vector2{5, 5}, true, true},
		{"corner", Vector2{2, 3}, false, true},
		{"bottom edge", Vector2{6, 23}, false, true},
		{"outside", Vector2{13, 5}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.strict, r.Contains(tt.point))
			require.Equal(t, tt.inclusive, r.ContainsIncludingEdges(tt.point))
		})
	}
}

func TestBoundingRectangle_Intersects(t *testing.T) {
	t.Run("Touching Edges", func(t *testing.T) {
		a := NewBoundingRectangle(0, 0, 16, 16)
		require.False(t, a.Intersects(NewBoundingRectangle(16, 0, 16, 16)))
		require.False(t, a.Intersects(NewBoundingRectangle(0, 16, 16, 16)))
		require.False(t, a.Intersects(NewBoundingRectangle(16, 16, 16, 16)))
	})

	t.Run("Overlapping", func(t *testing.T) {
		a := NewBoundingRectangle(0, 0, 16, 16)
		require.True(t, a.Intersects(NewBoundingRectangle(8, 8, 16, 16)))
		require.True(t, a.Intersects(NewBoundingRectangle(4, 4, 2, 2)))
	})

	t.Run("Symmetry", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 2000; i++ {
			a, b := randomRect(rng), randomRect(rng)
			require.Equal(t, a.Intersects(b), b.Intersects(a), "a=%+v b=%+v", a, b)
		}
	})
}

func TestBoundingRectangle_GetIntersectionDepth(t *testing.T) {
	t.Run("No Overlap On One Axis", func(t *testing.T) {
		a := NewBoundingRectangle(0, 0, 16, 16)
		depth := a.GetIntersectionDepth(NewBoundingRectangle(8, 20, 16, 16))
		require.True(t, isNaN32(depth.X))
		require.True(t, isNaN32(depth.Y))
	})

	t.Run("Touching Is Not Overlap", func(t *testing.T) {
		a := NewBoundingRectangle(0, 0, 16, 16)
		require.True(t, a.GetIntersectionDepth(NewBoundingRectangle(16, 0, 16, 16)).IsNaN())
	})

	t.Run("Sign Follows Centers", func(t *testing.T) {
		a := NewBoundingRectangle(0, 0, 16, 16)
		require.Equal(t, Vector2{4, -16}, a.GetIntersectionDepth(NewBoundingRectangle(12, 0, 16, 16)))
		require.Equal(t, Vector2{-4, -16}, a.GetIntersectionDepth(NewBoundingRectangle(-12, 0, 16, 16)))
		require.Equal(t, Vector2{-16, 4}, a.GetIntersectionDepth(NewBoundingRectangle(0, 12, 16, 16)))
	})

	t.Run("NaN Whenever Disjoint", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		for i := 0; i < 2000; i++ {
			a, b := randomRect(rng), randomRect(rng)
			require.Equal(t, !a.Intersects(b), a.GetIntersectionDepth(b).IsNaN(), "a=%+v b=%+v", a, b)
		}
	})
}

func TestBoundingRectangle_GetCollisionResolution(t *testing.T) {
	t.Run("Disjoint", func(t *testing.T) {
		a := NewBoundingRectangle(0, 0, 16, 16)
		require.Equal(t, ZeroResolution, a.GetCollisionResolution(NewBoundingRectangle(40, 40, 4, 4)))
	})

	t.Run("Shallowest Edge", func(t *testing.T) {
		a := NewBoundingRectangle(0, 0, 16, 16)
		res := a.GetCollisionResolution(NewBoundingRectangle(12, 0, 16, 16))
		require.Equal(t, Resolution{Distance: Vector2{4, 0}, Type: ResolutionNormal}, res)
	})

	t.Run("Landing On Top", func(t *testing.T) {
		tile := NewBoundingRectangle(0, 16, 16, 16)
		falling := NewBoundingRectangle(2, 4, 16, 16)
		res := tile.GetCollisionResolution(falling)
		require.Equal(t, Vector2{0, -4}, res.Distance)
		require.False(t, tile.Intersects(falling.Translate(res.Distance)))
	})

	t.Run("Tie Resolves Vertically", func(t *testing.T) {
		a := NewBoundingRectangle(0, 0, 32, 32)
		b := NewBoundingRectangle(16, 16, 32, 32)
		require.Equal(t, Vector2{16, 16}, a.GetIntersectionDepth(b))

		res := a.GetCollisionResolution(b)
		require.Equal(t, Vector2{0, 16}, res.Distance)
		require.Equal(t, ResolutionNormal, res.Type)
		require.False(t, a.Intersects(b.Translate(res.Distance)))
	})

	t.Run("Resolution Separates", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		checked := 0
		for i := 0; i < 5000; i++ {
			a, b := randomRect(rng), randomRect(rng)
			if !a.Intersects(b) {
				continue
			}
			checked++
			res := a.GetCollisionResolution(b)
			require.Equal(t, ResolutionNormal, res.Type)
			require.True(t, res.Distance.X == 0 || res.Distance.Y == 0, "two-axis resolution %v", res.Distance)
			require.False(t, a.Intersects(b.Translate(res.Distance)), "a=%+v b=%+v res=%v", a, b, res.Distance)
		}
		require.Greater(t, checked, 100)
	})
}

func TestNewResolution(t *testing.T) {
	_, err := NewResolution(Zero, ResolutionNormal)
	require.ErrorIs(t, err, ErrResolutionMismatch)

	_, err = NewResolution(Vector2{1, 0}, ResolutionNone)
	require.ErrorIs(t, err, ErrResolutionMismatch)

	res, err := NewResolution(Vector2{0, -3}, ResolutionSlope)
	require.NoError(t, err)
	require.False(t, res.IsZero())
	require.True(t, ZeroResolution.IsZero())

	require.Panics(t, func() { MustResolution(Zero, ResolutionSlope) })
}

func TestVector2_IsFinite(t *testing.T) {
	inf := float32(math.Inf(1))
	require.True(t, Vector2{X: 1, Y: -3e38}.IsFinite())
	require.False(t, Vector2{X: inf, Y: 0}.IsFinite())
	require.False(t, Vector2{X: 0, Y: -inf}.IsFinite())
	require.False(t, Vector2{X: nan32, Y: 0}.IsFinite())
}
