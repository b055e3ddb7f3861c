package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
	"github.com/adeeba-codes/wood-block-puzzle/internal/ports"
)

// ErrUnknownSession rejects operations on session ids nobody opened.
var ErrUnknownSession = errors.New("unknown session")

// Registry holds live sessions keyed by opaque ids.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	blocks ports.BlockSource
	store  ports.SnapshotStore
	high   *HighScore
	logger *slog.Logger
}

// NewRegistry creates an empty registry sharing one block source, snapshot
// store and high-score keeper across sessions.
func NewRegistry(blocks ports.BlockSource, store ports.SnapshotStore, high *HighScore, logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		blocks:   blocks,
		store:    store,
		high:     high,
		logger:   logger,
	}
}

// Open returns the session for id, resuming a persisted snapshot when one
// exists. With an empty or unusable id it starts a fresh session under a new
// id at the given tier.
func (reg *Registry) Open(ctx context.Context, id string, tier domain.Difficulty) *Session {
	if id != "" {
		reg.mu.RLock()
		s, ok := reg.sessions[id]
		reg.mu.RUnlock()
		if ok {
			return s
		}
		if s, err := Restore(ctx, id, reg.blocks, reg.store, reg.high, reg.logger); err == nil {
			reg.mu.Lock()
			// Another request may have restored it first.
			if prior, ok := reg.sessions[id]; ok {
				s = prior
			} else {
				reg.sessions[id] = s
			}
			reg.mu.Unlock()
			return s
		}
	}

	s := New(ctx, NewID(), tier, reg.blocks, reg.store, reg.high, reg.logger)
	reg.mu.Lock()
	reg.sessions[s.ID()] = s
	reg.mu.Unlock()
	return s
}

// Get looks up a live session without creating one.
func (reg *Registry) Get(id string) (*Session, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	s, ok := reg.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return s, nil
}

// NewID returns a fresh opaque identifier, also used for account ids.
func NewID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
