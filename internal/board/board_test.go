package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
)

func TestCanPlaceBounds(t *testing.T) {
	var g domain.Grid
	duo := domain.Shape{{1, 1}}

	assert.True(t, CanPlace(&g, duo, 0, 0))
	assert.True(t, CanPlace(&g, duo, 9, 8))
	assert.False(t, CanPlace(&g, duo, 9, 9), "second cell out of bounds")
	assert.False(t, CanPlace(&g, duo, -1, 0))
	assert.False(t, CanPlace(&g, duo, 10, 0))
}

func TestCanPlaceOverlap(t *testing.T) {
	var g domain.Grid
	g[4][5] = 1

	dot := domain.Shape{{1}}
	assert.False(t, CanPlace(&g, dot, 4, 5))
	assert.True(t, CanPlace(&g, dot, 4, 6))

	// The empty corner of an L may hang over an occupied cell.
	smallL := domain.Shape{{1, 1}, {1, 0}}
	assert.True(t, CanPlace(&g, smallL, 3, 4))
}

// canPlaceNaive is an independent oracle for the placement predicate.
func canPlaceNaive(g *domain.Grid, s domain.Shape, or, oc int) bool {
	for rr := range s {
		for cc := range s[rr] {
			if s[rr][cc] == 0 {
				continue
			}
			r, c := or+rr, oc+cc
			if r < 0 || r >= 10 || c < 0 || c >= 10 || g[r][c] != 0 {
				return false
			}
		}
	}
	return true
}

func TestCanPlaceMatchesOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	shapes := []domain.Shape{
		{{1}},
		{{1, 1}},
		{{1, 1}, {1, 0}},
		{{0, 1, 0}, {1, 1, 1}, {0, 1, 0}},
		{{1, 1, 1, 1}},
	}
	for i := 0; i < 500; i++ {
		var g domain.Grid
		for r := range g {
			for c := range g[r] {
				if rng.Intn(3) == 0 {
					g[r][c] = 1
				}
			}
		}
		s := shapes[rng.Intn(len(shapes))]
		or, oc := rng.Intn(14)-2, rng.Intn(14)-2
		require.Equal(t, canPlaceNaive(&g, s, or, oc), CanPlace(&g, s, or, oc),
			"iteration %d shape %v origin (%d,%d)", i, s, or, oc)
	}
}

func TestCommitFillsShapeCells(t *testing.T) {
	var g domain.Grid
	tee := domain.Shape{{0, 1, 0}, {1, 1, 1}}

	filled := Commit(&g, tee, 2, 3)

	require.ElementsMatch(t, []domain.CellCoord{
		{Row: 2, Col: 4},
		{Row: 3, Col: 3}, {Row: 3, Col: 4}, {Row: 3, Col: 5},
	}, filled)
	assert.EqualValues(t, 0, g[2][3], "empty shape cell must stay empty")
	assert.EqualValues(t, 1, g[3][4])
}

func TestClearCompletedLinesNone(t *testing.T) {
	var g domain.Grid
	g[0][0] = 1

	n, cleared := ClearCompletedLines(&g)

	assert.Zero(t, n)
	assert.Empty(t, cleared)
	assert.EqualValues(t, 1, g[0][0])
}

func TestClearCompletedLinesSingleRow(t *testing.T) {
	var g domain.Grid
	for c := 0; c < domain.GridCols; c++ {
		g[3][c] = 1
	}
	g[5][5] = 1

	n, cleared := ClearCompletedLines(&g)

	assert.Equal(t, 1, n)
	assert.Len(t, cleared, 10)
	for c := 0; c < domain.GridCols; c++ {
		assert.EqualValues(t, 0, g[3][c])
	}
	assert.EqualValues(t, 1, g[5][5], "cells outside the cleared row survive")
}

func TestClearCompletedLinesRowAndColumnTogether(t *testing.T) {
	// Row 3 and column 4 are both complete; they share cell (3,4). Both must
	// count even though clearing either first would break the other.
	var g domain.Grid
	for c := 0; c < domain.GridCols; c++ {
		g[3][c] = 1
	}
	for r := 0; r < domain.GridRows; r++ {
		g[r][4] = 1
	}

	n, cleared := ClearCompletedLines(&g)

	assert.Equal(t, 2, n)
	assert.Len(t, cleared, 19, "intersection cell reported once")
	for c := 0; c < domain.GridCols; c++ {
		assert.EqualValues(t, 0, g[3][c])
	}
	for r := 0; r < domain.GridRows; r++ {
		assert.EqualValues(t, 0, g[r][4])
	}
}

func TestClearCompletedLinesIdempotent(t *testing.T) {
	var g domain.Grid
	for c := 0; c < domain.GridCols; c++ {
		g[0][c] = 1
	}

	n, _ := ClearCompletedLines(&g)
	require.Equal(t, 1, n)

	n, cleared := ClearCompletedLines(&g)
	assert.Zero(t, n)
	assert.Empty(t, cleared)
}
