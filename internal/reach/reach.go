package reach

import (
	"github.com/adeeba-codes/wood-block-puzzle/internal/board"
	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
	"github.com/adeeba-codes/wood-block-puzzle/internal/rotation"
)

// HasAnyValidMove reports whether the block, in any of its distinct
// rotations, has at least one legal placement on the grid. This is the
// game-over predicate: a session is terminal only when it returns false for
// both the active and the pending block.
func HasAnyValidMove(g *domain.Grid, b *domain.Block) bool {
	if b == nil {
		return false
	}
	for _, s := range rotation.UniqueRotations(b.Shape) {
		h, w := s.Height(), s.Width()
		for r := 0; r <= domain.GridRows-h; r++ {
			for c := 0; c <= domain.GridCols-w; c++ {
				if board.CanPlace(g, s, r, c) {
					return true
				}
			}
		}
	}
	return false
}
