package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adeeba-codes/wood-block-puzzle/internal/ports"
)

const highScoreKey = "highscore"

// HighScore is the cross-session best result. Local scores only ever raise
// it; a value returned by the leaderboard service is authoritative and is
// adopted as-is.
type HighScore struct {
	mu     sync.Mutex
	value  int
	store  ports.SnapshotStore
	logger *slog.Logger
}

// NewHighScore loads the stored value, treating absence or malformed data
// as zero.
func NewHighScore(ctx context.Context, store ports.SnapshotStore, logger *slog.Logger) *HighScore {
	h := &HighScore{store: store, logger: logger}
	if store != nil {
		var v int
		if err := store.Load(ctx, highScoreKey, &v); err == nil && v > 0 {
			h.value = v
		}
	}
	return h
}

// Value returns the current high score.
func (h *HighScore) Value() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value
}

// Observe raises the high score if the local score beats it and returns the
// current value.
func (h *HighScore) Observe(ctx context.Context, score int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if score > h.value {
		h.value = score
		h.persistLocked(ctx)
	}
	return h.value
}

// Adopt replaces the high score with the server's stored value.
func (h *HighScore) Adopt(ctx context.Context, v int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v >= 0 && v != h.value {
		h.value = v
		h.persistLocked(ctx)
	}
	return h.value
}

func (h *HighScore) persistLocked(ctx context.Context) {
	if h.store == nil {
		return
	}
	if err := h.store.Save(ctx, highScoreKey, h.value); err != nil && h.logger != nil {
		h.logger.Warn("high score save failed", "err", err)
	}
}
