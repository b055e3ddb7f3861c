package rotation

import (
	"strings"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
)

// Rotate90 returns the shape rotated 90° clockwise:
// result[c][h-1-r] = shape[r][c]. The input is not modified.
func Rotate90(s domain.Shape) domain.Shape {
	h, w := s.Height(), s.Width()
	out := make(domain.Shape, w)
	for c := 0; c < w; c++ {
		row := make([]uint8, h)
		for r := h - 1; r >= 0; r-- {
			row[h-1-r] = s[r][c]
		}
		out[c] = row
	}
	return out
}

// UniqueRotations returns the distinct orientations reachable by repeated
// clockwise quarter turns, in generation order. The input orientation is
// always first; symmetric shapes yield fewer than four entries.
func UniqueRotations(s domain.Shape) []domain.Shape {
	rotations := make([]domain.Shape, 0, 4)
	seen := make(map[string]struct{}, 4)
	cur := s
	for i := 0; i < 4; i++ {
		key := canonical(cur)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			rotations = append(rotations, cur)
		}
		cur = Rotate90(cur)
	}
	return rotations
}

func canonical(s domain.Shape) string {
	var b strings.Builder
	for _, row := range s {
		for _, v := range row {
			b.WriteByte('0' + v)
		}
		b.WriteByte('|')
	}
	return b.String()
}
