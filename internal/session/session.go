package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/adeeba-codes/wood-block-puzzle/internal/board"
	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
	"github.com/adeeba-codes/wood-block-puzzle/internal/ports"
	"github.com/adeeba-codes/wood-block-puzzle/internal/reach"
	"github.com/adeeba-codes/wood-block-puzzle/internal/rotation"
)

const (
	basePlacementPoints = 10
	lineClearPoints     = 50
	pointsPerLevel      = 100
)

// ErrGameOver rejects mutations that are only valid while playing.
var ErrGameOver = errors.New("game is over")

// Session owns one game: grid, block pair, score, level and undo history.
// All transitions run under a single mutex so concurrent requests cannot
// interleave two placements.
type Session struct {
	mu       sync.Mutex
	id       string
	state    domain.SessionState
	undo     []domain.Grid
	gameOver bool

	blocks ports.BlockSource
	store  ports.SnapshotStore
	high   *HighScore
	logger *slog.Logger
}

// View is the read model handed to the HTTP layer and the UI.
type View struct {
	ID         string            `json:"id"`
	Grid       domain.Grid       `json:"grid"`
	Score      int               `json:"score"`
	Level      int               `json:"level"`
	HighScore  int               `json:"highScore"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Active     *domain.Block     `json:"active"`
	Pending    *domain.Block     `json:"pending"`
	GameOver   bool              `json:"gameOver"`
	CanUndo    bool              `json:"canUndo"`
}

// PlaceResult reports what a place transition did.
type PlaceResult struct {
	Placed       bool
	Filled       []domain.CellCoord
	Cleared      []domain.CellCoord
	LinesCleared int
	GameOver     bool
	FinalScore   int
}

// New starts a fresh session: empty grid, score 0, level 1, two drawn blocks.
func New(ctx context.Context, id string, tier domain.Difficulty, blocks ports.BlockSource, store ports.SnapshotStore, high *HighScore, logger *slog.Logger) *Session {
	s := &Session{
		id:     id,
		blocks: blocks,
		store:  store,
		high:   high,
		logger: logger,
	}
	s.resetLocked(tier)
	s.persistLocked(ctx)
	return s
}

// ID returns the session's opaque identifier.
func (s *Session) ID() string { return s.id }

// View returns a copy of the current state safe to hand out.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		ID:         s.id,
		Grid:       s.state.Grid,
		Score:      s.state.Score,
		Level:      s.state.Level,
		Difficulty: s.state.Difficulty,
		GameOver:   s.gameOver,
		CanUndo:    len(s.undo) > 0,
	}
	if s.high != nil {
		v.HighScore = s.high.Value()
	}
	if s.state.Active != nil {
		v.Active = domain.NewBlock(s.state.Active.Shape)
	}
	if s.state.Pending != nil {
		v.Pending = domain.NewBlock(s.state.Pending.Shape)
	}
	return v
}

// CanPlaceAt reports whether the active block fits at the origin. Read-only;
// used by drag-ghost previews at high frequency.
func (s *Session) CanPlaceAt(row, col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver || s.state.Active == nil {
		return false
	}
	return board.CanPlace(&s.state.Grid, s.state.Active.Shape, row, col)
}

// Place runs the full placement transition: validate, snapshot for undo,
// commit, score, clear lines, level up, advance blocks, evaluate game over,
// persist. An invalid target is silently rejected with Placed=false.
//
// Reachability is evaluated against the post-clear grid and the post-advance
// block pair; checking earlier would mis-detect game over.
func (s *Session) Place(ctx context.Context, row, col int) (PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return PlaceResult{}, ErrGameOver
	}
	active := s.state.Active
	if active == nil || !board.CanPlace(&s.state.Grid, active.Shape, row, col) {
		return PlaceResult{}, nil
	}

	s.undo = append(s.undo, s.state.Grid)

	res := PlaceResult{Placed: true}
	res.Filled = board.Commit(&s.state.Grid, active.Shape, row, col)
	s.state.Score += basePlacementPoints

	res.LinesCleared, res.Cleared = board.ClearCompletedLines(&s.state.Grid)
	if res.LinesCleared > 0 {
		s.state.Score += res.LinesCleared * lineClearPoints
	}

	s.state.Level = s.state.Score/pointsPerLevel + 1
	if s.high != nil {
		s.high.Observe(ctx, s.state.Score)
	}

	s.state.Active = s.state.Pending
	s.state.Pending = s.blocks.Draw(s.state.Difficulty)

	if !reach.HasAnyValidMove(&s.state.Grid, s.state.Active) &&
		!reach.HasAnyValidMove(&s.state.Grid, s.state.Pending) {
		s.gameOver = true
		res.GameOver = true
		res.FinalScore = s.state.Score
	}

	s.persistLocked(ctx)
	return res, nil
}

// RotateActive turns the active block 90° clockwise and persists.
func (s *Session) RotateActive(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return ErrGameOver
	}
	if s.state.Active == nil {
		return nil
	}
	rotated := rotation.Rotate90(s.state.Active.Shape)
	s.state.Active.Shape = rotated
	s.state.Active.Height = rotated.Height()
	s.state.Active.Width = rotated.Width()
	s.persistLocked(ctx)
	return nil
}

// Undo restores the most recent pre-placement grid. Score, level and the
// block pair are intentionally left as they are; only occupancy rolls back.
// Returns false when there is nothing to undo.
func (s *Session) Undo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return false
	}
	s.state.Grid = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.persistLocked(ctx)
	return true
}

// Restart wipes the session back to a fresh game. An empty tier keeps the
// current difficulty.
func (s *Session) Restart(ctx context.Context, tier domain.Difficulty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tier == "" {
		tier = s.state.Difficulty
	}
	s.resetLocked(tier)
	s.persistLocked(ctx)
}

// Hint asks the hinter for a legal move for the active block.
func (s *Session) Hint(hinter ports.Hinter) (domain.PlacementHint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return domain.PlacementHint{}, false
	}
	return hinter.Hint(&s.state.Grid, s.state.Active)
}

func (s *Session) resetLocked(tier domain.Difficulty) {
	s.state = domain.SessionState{
		Grid:       domain.Grid{},
		Score:      0,
		Level:      1,
		Difficulty: tier,
		Active:     s.blocks.Draw(tier),
		Pending:    s.blocks.Draw(tier),
	}
	s.undo = nil
	s.gameOver = false
}

// persistLocked snapshots the session. Failures are logged and swallowed;
// gameplay continues without persistence.
func (s *Session) persistLocked(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, snapshotKey(s.id), newSnapshot(&s.state)); err != nil {
		if s.logger != nil {
			s.logger.Warn("session snapshot failed", "id", s.id, "err", err)
		}
	}
}
