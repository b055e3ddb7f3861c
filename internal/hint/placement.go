package hint

import (
	"github.com/adeeba-codes/wood-block-puzzle/internal/board"
	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
	"github.com/adeeba-codes/wood-block-puzzle/internal/rotation"
)

// Placement suggests a legal move for the active block.
type Placement struct{}

func NewPlacement() *Placement { return &Placement{} }

// Hint scans orientations in rotation order and origins top-left first, and
// returns the first legal placement found. The rotation count refers to
// quarter turns applied to the block's current orientation.
func (h *Placement) Hint(g *domain.Grid, b *domain.Block) (domain.PlacementHint, bool) {
	if b == nil {
		return domain.PlacementHint{}, false
	}
	cur := b.Shape
	for turns := 0; turns < 4; turns++ {
		hg, w := cur.Height(), cur.Width()
		for r := 0; r <= domain.GridRows-hg; r++ {
			for c := 0; c <= domain.GridCols-w; c++ {
				if board.CanPlace(g, cur, r, c) {
					return domain.PlacementHint{
						Rotations: turns,
						Cell:      domain.CellCoord{Row: r, Col: c},
					}, true
				}
			}
		}
		cur = rotation.Rotate90(cur)
	}
	return domain.PlacementHint{}, false
}
