package hint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
)

func TestHintEmptyGridPrefersTopLeft(t *testing.T) {
	var g domain.Grid
	h, ok := NewPlacement().Hint(&g, domain.NewBlock(domain.Shape{{1, 1}}))

	require.True(t, ok)
	assert.Equal(t, 0, h.Rotations)
	assert.Equal(t, domain.CellCoord{Row: 0, Col: 0}, h.Cell)
}

func TestHintSuggestsRotationWhenNeeded(t *testing.T) {
	// Only a vertical slot in column 0 is open, so the horizontal trio
	// needs one quarter turn.
	var g domain.Grid
	for r := range g {
		for c := range g[r] {
			g[r][c] = 1
		}
	}
	g[0][0], g[1][0], g[2][0] = 0, 0, 0

	h, ok := NewPlacement().Hint(&g, domain.NewBlock(domain.Shape{{1, 1, 1}}))

	require.True(t, ok)
	assert.Equal(t, 1, h.Rotations)
	assert.Equal(t, domain.CellCoord{Row: 0, Col: 0}, h.Cell)
}

func TestHintSkipsOccupiedOrigins(t *testing.T) {
	var g domain.Grid
	g[0][0] = 1

	h, ok := NewPlacement().Hint(&g, domain.NewBlock(domain.Shape{{1}}))

	require.True(t, ok)
	assert.Equal(t, domain.CellCoord{Row: 0, Col: 1}, h.Cell)
}

func TestHintNoneWhenBlockCannotFit(t *testing.T) {
	var g domain.Grid
	for r := range g {
		for c := range g[r] {
			g[r][c] = 1
		}
	}
	g[9][9] = 0

	_, ok := NewPlacement().Hint(&g, domain.NewBlock(domain.Shape{{1, 1}}))
	assert.False(t, ok)
}

func TestHintNilBlock(t *testing.T) {
	var g domain.Grid
	_, ok := NewPlacement().Hint(&g, nil)
	assert.False(t, ok)
}
