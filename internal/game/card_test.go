package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCard_Validation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		poolMax int
		opts    []Option
		wantErr bool
	}{
		{name: "size too small", size: 2, poolMax: 30, wantErr: true},
		{name: "size too large", size: 6, poolMax: 75, wantErr: true},
		{name: "pool cannot fill grid", size: 3, poolMax: 8, wantErr: true},
		{name: "free center on even board", size: 4, poolMax: 60, opts: []Option{WithFreeCenter()}, wantErr: true},
		{name: "minimum legal pool", size: 3, poolMax: 9},
		{name: "classic five by five", size: 5, poolMax: 75, opts: []Option{WithFreeCenter()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := NewCard(tt.size, tt.poolMax, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidBoard))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.size, card.Size())
			require.Equal(t, tt.poolMax, card.PoolMax())
		})
	}
}

func TestDefaultPoolMax(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{size: 3, want: 30},
		{size: 4, want: 60},
		{size: 5, want: 75},
		{size: 6, want: 36},
	}

	for _, tt := range tests {
		if got := DefaultPoolMax(tt.size); got != tt.want {
			t.Errorf("DefaultPoolMax(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestNewCard_GridValuesUniqueAndInRange(t *testing.T) {
	card, err := NewCard(5, 75, WithSeed(11))
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, row := range card.Grid() {
		for _, cell := range row {
			require.False(t, cell.Free)
			require.GreaterOrEqual(t, cell.Value, 1)
			require.LessOrEqual(t, cell.Value, 75)
			require.False(t, seen[cell.Value], "value %d appears twice", cell.Value)
			seen[cell.Value] = true
		}
	}
	require.Len(t, seen, 25)
}

func TestCard_FreeCenter(t *testing.T) {
	card, err := NewCard(5, 75, WithSeed(4), WithFreeCenter())
	require.NoError(t, err)

	require.True(t, card.FreeCenter())
	require.True(t, card.IsMarked(2, 2), "free center starts marked")
	require.True(t, card.Grid()[2][2].Free)

	// The permanent mark survives toggle attempts.
	card.ToggleMark(2, 2)
	require.True(t, card.IsMarked(2, 2))

	// The free cell holds no number, so no draw can land on it.
	_, found := card.Find(0)
	require.False(t, found)
}

func TestCard_ToggleMark(t *testing.T) {
	card, err := NewCard(3, 30, WithSeed(2))
	require.NoError(t, err)

	card.ToggleMark(1, 2)
	require.True(t, card.IsMarked(1, 2))
	card.ToggleMark(1, 2)
	require.False(t, card.IsMarked(1, 2))

	// Out-of-range coordinates are ignored, not errors.
	card.ToggleMark(-1, 0)
	card.ToggleMark(0, 3)
	require.Empty(t, card.Marked())
}

func TestCard_AutoMark(t *testing.T) {
	card, err := NewCard(3, 9, WithSeed(8))
	require.NoError(t, err)

	target := card.Grid()[1][1].Value
	require.True(t, card.AutoMark(target))
	require.True(t, card.IsMarked(1, 1))

	// Marking again is a no-op, not an unmark.
	require.True(t, card.AutoMark(target))
	require.True(t, card.IsMarked(1, 1))

	require.False(t, card.AutoMark(999), "number off the card")
}

func TestCard_HasBingoAfterManualMarks(t *testing.T) {
	card, err := NewCard(3, 30, WithSeed(5))
	require.NoError(t, err)
	require.False(t, card.HasBingo())

	for col := 0; col < 3; col++ {
		card.ToggleMark(0, col)
	}
	require.True(t, card.HasBingo())
}

func TestCard_Regenerate(t *testing.T) {
	card, err := NewCard(4, 60, WithSeed(1))
	require.NoError(t, err)

	before := card.Grid()
	card.ToggleMark(0, 0)
	card.Regenerate(WithSeed(2))

	require.NotEqual(t, before, card.Grid(), "a different seed should reroll the grid")
	require.Empty(t, card.Marked(), "regenerating clears marks")
}

func TestCard_RegenerateKeepsFreeCenterMarked(t *testing.T) {
	card, err := NewCard(5, 75, WithSeed(6), WithFreeCenter())
	require.NoError(t, err)

	card.ToggleMark(0, 1)
	card.Regenerate()

	require.Equal(t, []Coord{{Row: 2, Col: 2}}, card.Marked())
}

func TestCard_Render(t *testing.T) {
	card, err := NewCard(5, 75, WithSeed(3), WithFreeCenter())
	require.NoError(t, err)

	text := card.Render()
	require.Contains(t, text, "FREE")
	require.Equal(t, 6, len(strings.Split(text, "\n")), "header plus five rows")
}

func TestCard_GridReturnsCopy(t *testing.T) {
	card, err := NewCard(3, 30, WithSeed(9))
	require.NoError(t, err)

	grid := card.Grid()
	grid[0][0] = Cell{Value: -1}
	require.NotEqual(t, -1, card.Grid()[0][0].Value)
}
