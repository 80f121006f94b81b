package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDrawer_RejectsBadPool(t *testing.T) {
	tests := []struct {
		name    string
		poolMax int
	}{
		{name: "zero", poolMax: 0},
		{name: "negative", poolMax: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDrawer(tt.poolMax)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidPool))
		})
	}
}

func TestDrawer_DealsEveryNumberOnce(t *testing.T) {
	const poolMax = 20

	d, err := NewDrawer(poolMax, WithSeed(7))
	require.NoError(t, err)
	require.Equal(t, poolMax, d.Remaining())
	require.Equal(t, poolMax, d.PoolMax())

	seen := make(map[int]bool)
	for i := 0; i < poolMax; i++ {
		n, ok := d.Draw()
		require.True(t, ok)
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, poolMax)
		require.False(t, seen[n], "number %d drawn twice", n)
		seen[n] = true
	}

	require.Equal(t, 0, d.Remaining())
	_, ok := d.Draw()
	require.False(t, ok, "exhausted drawer should not deal")
}

func TestDrawer_SeededSequencesMatch(t *testing.T) {
	a, err := NewDrawer(30, WithSeed(42))
	require.NoError(t, err)
	b, err := NewDrawer(30, WithSeed(42))
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		na, oka := a.Draw()
		nb, okb := b.Draw()
		require.Equal(t, oka, okb)
		require.Equal(t, na, nb, "sequences diverged at draw %d", i)
	}
}

func TestDrawer_DifferentSeedsDiverge(t *testing.T) {
	a, err := NewDrawer(30, WithSeed(1))
	require.NoError(t, err)
	b, err := NewDrawer(30, WithSeed(2))
	require.NoError(t, err)

	require.NotEqual(t, drainDrawer(t, a), drainDrawer(t, b),
		"different seeds must shuffle differently")
}

func TestDrawer_ResetReplaysWithSeed(t *testing.T) {
	d, err := NewDrawer(15, WithSeed(9))
	require.NoError(t, err)

	first := drainDrawer(t, d)
	d.Reset(WithSeed(9))
	second := drainDrawer(t, d)

	require.Equal(t, first, second)
}

func TestDrawer_ResetWithoutSeedKeepsStreamsAligned(t *testing.T) {
	a, err := NewDrawer(15, WithSeed(3))
	require.NoError(t, err)
	b, err := NewDrawer(15, WithSeed(3))
	require.NoError(t, err)

	drainDrawer(t, a)
	drainDrawer(t, b)
	a.Reset()
	b.Reset()

	require.Equal(t, drainDrawer(t, a), drainDrawer(t, b))
}

func TestDrawer_DrawnReturnsHistoryCopy(t *testing.T) {
	d, err := NewDrawer(10, WithSeed(1))
	require.NoError(t, err)

	first, _ := d.Draw()
	second, _ := d.Draw()
	history := d.Drawn()
	require.Equal(t, []int{first, second}, history)

	history[0] = -1
	require.Equal(t, []int{first, second}, d.Drawn(), "mutating the copy must not touch the drawer")
}

// drainDrawer draws until the pool is empty and returns the sequence.
func drainDrawer(t *testing.T, d *Drawer) []int {
	t.Helper()
	var out []int
	for {
		n, ok := d.Draw()
		if !ok {
			return out
		}
		out = append(out, n)
	}
}
