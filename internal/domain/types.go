package domain

// Board dimensions are fixed for the whole game.
const (
	GridRows = 10
	GridCols = 10
)

// Grid is the board occupancy matrix. A cell is 1 iff it is covered by a
// previously placed, not-yet-cleared block cell.
type Grid [GridRows][GridCols]uint8

// CellCoord identifies a cell on the grid.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Shape is a binary matrix describing a block outline. Catalog shapes are
// treated as immutable; blocks always carry their own copy.
type Shape [][]uint8

// Height returns the number of rows in the shape.
func (s Shape) Height() int { return len(s) }

// Width returns the number of columns in the shape.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for i, row := range s {
		out[i] = append([]uint8(nil), row...)
	}
	return out
}

// Block is a placeable instance of a catalog shape. Height and Width are
// kept alongside the shape and refreshed whenever the shape is rotated.
type Block struct {
	Shape  Shape `json:"shape"`
	Height int   `json:"height"`
	Width  int   `json:"width"`
}

// NewBlock wraps a copy of the shape into a fresh block.
func NewBlock(s Shape) *Block {
	c := s.Clone()
	return &Block{Shape: c, Height: c.Height(), Width: c.Width()}
}

// SessionState is the persisted snapshot of a game session. The undo stack
// is deliberately absent: it does not survive a reload.
type SessionState struct {
	Grid       Grid       `json:"grid"`
	Score      int        `json:"score"`
	Level      int        `json:"level"`
	Difficulty Difficulty `json:"difficulty"`
	Active     *Block     `json:"active"`
	Pending    *Block     `json:"pending"`
}

// User is an account record in the leaderboard service. The password hash
// never leaves the server.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	HighScore    int    `json:"highScore"`
	CreatedAt    int64  `json:"createdAt"`
}

// LeaderboardEntry is one row of the public top-10 listing.
type LeaderboardEntry struct {
	Name      string `json:"name"`
	HighScore int    `json:"highScore"`
}

// PlacementHint suggests a legal move for the active block: rotate it
// Rotations times clockwise, then drop it at Cell.
type PlacementHint struct {
	Rotations int       `json:"rotations"`
	Cell      CellCoord `json:"cell"`
}
