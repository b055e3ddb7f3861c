package domain

// Difficulty selects which slice of the shape catalog a session draws from.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// ParseDifficulty maps a user-supplied tier name to a known tier.
// Unknown or empty input falls back to Normal.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case Easy, Normal, Hard:
		return Difficulty(s)
	default:
		return Normal
	}
}
