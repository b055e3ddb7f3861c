package board

import "github.com/adeeba-codes/wood-block-puzzle/internal/domain"

// CanPlace reports whether every set cell of the shape, anchored at
// (originRow, originCol), lands on an in-bounds, unoccupied grid cell.
func CanPlace(g *domain.Grid, s domain.Shape, originRow, originCol int) bool {
	for rr, row := range s {
		for cc, v := range row {
			if v == 0 {
				continue
			}
			br, bc := originRow+rr, originCol+cc
			if br < 0 || br >= domain.GridRows || bc < 0 || bc >= domain.GridCols {
				return false
			}
			if g[br][bc] == 1 {
				return false
			}
		}
	}
	return true
}

// Commit writes the shape onto the grid and returns the newly filled cells.
// The caller must have established CanPlace first; committing an invalid
// placement is undefined.
func Commit(g *domain.Grid, s domain.Shape, originRow, originCol int) []domain.CellCoord {
	var filled []domain.CellCoord
	for rr, row := range s {
		for cc, v := range row {
			if v == 0 {
				continue
			}
			br, bc := originRow+rr, originCol+cc
			g[br][bc] = 1
			filled = append(filled, domain.CellCoord{Row: br, Col: bc})
		}
	}
	return filled
}

// ClearCompletedLines resets every cell belonging to a complete row or a
// complete column. Completeness of rows and columns is evaluated against the
// same pre-clear grid, so a row and a column can both clear off one placement
// even when clearing either alone would have broken the other. Returns the
// number of cleared lines (rows plus columns) and the deduplicated cleared
// cells.
func ClearCompletedLines(g *domain.Grid) (int, []domain.CellCoord) {
	var fullRows, fullCols []int

	for r := 0; r < domain.GridRows; r++ {
		full := true
		for c := 0; c < domain.GridCols; c++ {
			if g[r][c] == 0 {
				full = false
				break
			}
		}
		if full {
			fullRows = append(fullRows, r)
		}
	}
	for c := 0; c < domain.GridCols; c++ {
		full := true
		for r := 0; r < domain.GridRows; r++ {
			if g[r][c] == 0 {
				full = false
				break
			}
		}
		if full {
			fullCols = append(fullCols, c)
		}
	}

	if len(fullRows) == 0 && len(fullCols) == 0 {
		return 0, nil
	}

	var cleared []domain.CellCoord
	seen := make(map[domain.CellCoord]struct{})
	wipe := func(r, c int) {
		if g[r][c] == 0 {
			return
		}
		g[r][c] = 0
		cell := domain.CellCoord{Row: r, Col: c}
		if _, ok := seen[cell]; !ok {
			seen[cell] = struct{}{}
			cleared = append(cleared, cell)
		}
	}
	for _, r := range fullRows {
		for c := 0; c < domain.GridCols; c++ {
			wipe(r, c)
		}
	}
	for _, c := range fullCols {
		for r := 0; r < domain.GridRows; r++ {
			wipe(r, c)
		}
	}
	return len(fullRows) + len(fullCols), cleared
}
