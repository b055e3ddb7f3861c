package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
	"github.com/adeeba-codes/wood-block-puzzle/internal/ports"
)

// snapshot is the on-disk form of a session. The grid is kept as nested
// slices so that dimension mismatches from older or foreign data surface at
// validation time instead of silently truncating into the fixed array.
type snapshot struct {
	Grid       [][]uint8     `json:"grid"`
	Score      int           `json:"score"`
	Level      int           `json:"level"`
	Difficulty string        `json:"difficulty"`
	Active     *domain.Block `json:"active"`
	Pending    *domain.Block `json:"pending"`
}

func snapshotKey(id string) string { return "sessions/" + id }

func newSnapshot(st *domain.SessionState) snapshot {
	grid := make([][]uint8, domain.GridRows)
	for r := 0; r < domain.GridRows; r++ {
		grid[r] = append([]uint8(nil), st.Grid[r][:]...)
	}
	return snapshot{
		Grid:       grid,
		Score:      st.Score,
		Level:      st.Level,
		Difficulty: string(st.Difficulty),
		Active:     st.Active,
		Pending:    st.Pending,
	}
}

// restore validates the snapshot and converts it into live session state.
// Any defect rejects the whole snapshot; a partially hydrated session is
// never produced.
func (sn *snapshot) restore() (domain.SessionState, error) {
	var st domain.SessionState
	if len(sn.Grid) != domain.GridRows {
		return st, fmt.Errorf("grid has %d rows, want %d", len(sn.Grid), domain.GridRows)
	}
	for r, row := range sn.Grid {
		if len(row) != domain.GridCols {
			return st, fmt.Errorf("grid row %d has %d cells, want %d", r, len(row), domain.GridCols)
		}
		for c, v := range row {
			if v > 1 {
				return st, fmt.Errorf("grid cell (%d,%d) holds %d", r, c, v)
			}
			st.Grid[r][c] = v
		}
	}
	if sn.Score < 0 {
		return st, fmt.Errorf("negative score %d", sn.Score)
	}
	if err := checkBlock("active", sn.Active); err != nil {
		return st, err
	}
	if err := checkBlock("pending", sn.Pending); err != nil {
		return st, err
	}
	st.Score = sn.Score
	st.Level = sn.Score/pointsPerLevel + 1
	st.Difficulty = domain.ParseDifficulty(sn.Difficulty)
	st.Active = domain.NewBlock(sn.Active.Shape)
	st.Pending = domain.NewBlock(sn.Pending.Shape)
	return st, nil
}

func checkBlock(name string, b *domain.Block) error {
	if b == nil {
		return fmt.Errorf("missing %s block", name)
	}
	h, w := b.Shape.Height(), b.Shape.Width()
	if h == 0 || w == 0 {
		return fmt.Errorf("%s block has empty shape", name)
	}
	for r, row := range b.Shape {
		if len(row) != w {
			return fmt.Errorf("%s block row %d is ragged", name, r)
		}
		for c, v := range row {
			if v > 1 {
				return fmt.Errorf("%s block cell (%d,%d) holds %d", name, r, c, v)
			}
		}
	}
	return nil
}

// Restore rebuilds a session from a stored snapshot. It returns
// ports.ErrNoSnapshot when nothing usable is stored under the id.
func Restore(ctx context.Context, id string, blocks ports.BlockSource, store ports.SnapshotStore, high *HighScore, logger *slog.Logger) (*Session, error) {
	if store == nil {
		return nil, ports.ErrNoSnapshot
	}
	var sn snapshot
	if err := store.Load(ctx, snapshotKey(id), &sn); err != nil {
		return nil, ports.ErrNoSnapshot
	}
	st, err := sn.restore()
	if err != nil {
		if logger != nil {
			logger.Warn("discarding malformed session snapshot", "id", id, "err", err)
		}
		return nil, ports.ErrNoSnapshot
	}
	return &Session{
		id:     id,
		state:  st,
		blocks: blocks,
		store:  store,
		high:   high,
		logger: logger,
	}, nil
}
