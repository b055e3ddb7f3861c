package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
	"github.com/adeeba-codes/wood-block-puzzle/internal/ports"
)

// userDoc is the on-disk account document. Unlike the wire form it carries
// the password hash.
type userDoc struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	HighScore    int    `json:"highScore"`
	CreatedAt    int64  `json:"createdAt"`
}

// UserFS keeps account documents as JSON files under <dir>/users, with an
// in-memory index rebuilt from disk at startup. Email uniqueness is enforced
// on the index.
type UserFS struct {
	mu      sync.RWMutex
	dir     string
	byID    map[string]*domain.User
	byEmail map[string]string
}

// NewUserFS opens the store, loading any existing account documents.
func NewUserFS(dir string) (*UserFS, error) {
	s := &UserFS{
		dir:     filepath.Join(dir, "users"),
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var doc userDoc
		if err := json.Unmarshal(data, &doc); err != nil || doc.ID == "" {
			continue
		}
		u := docToUser(&doc)
		s.byID[u.ID] = u
		s.byEmail[normalizeEmail(u.Email)] = u.ID
	}
	return s, nil
}

func docToUser(d *userDoc) *domain.User {
	return &domain.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		HighScore:    d.HighScore,
		CreatedAt:    d.CreatedAt,
	}
}

func userToDoc(u *domain.User) *userDoc {
	return &userDoc{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		HighScore:    u.HighScore,
		CreatedAt:    u.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserFS) writeDoc(u *domain.User) error {
	target := filepath.Join(s.dir, u.ID+".json")
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(userToDoc(u))
}

// Create stores a new account. Fails with ports.ErrEmailTaken when the email
// is already registered.
func (s *UserFS) Create(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(u.Email)
	if _, exists := s.byEmail[key]; exists {
		return ports.ErrEmailTaken
	}
	cp := *u
	if err := s.writeDoc(&cp); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	s.byID[cp.ID] = &cp
	s.byEmail[key] = cp.ID
	return nil
}

// ByEmail returns the account registered under email.
func (s *UserFS) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	u := *s.byID[id]
	return &u, nil
}

// ByID returns the account with the given id.
func (s *UserFS) ByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// SetHighScore overwrites the stored high score and returns the updated user.
func (s *UserFS) SetHighScore(ctx context.Context, id string, score int) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	u.HighScore = score
	if err := s.writeDoc(u); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	cp := *u
	return &cp, nil
}

// List returns all accounts, ordered by creation time.
func (s *UserFS) List(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.User, 0, len(s.byID))
	for _, u := range s.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

// Top returns up to n leaderboard rows: highScore descending, ties broken by
// earlier account creation, zero scores excluded.
func (s *UserFS) Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ranked := make([]*domain.User, 0, len(s.byID))
	for _, u := range s.byID {
		if u.HighScore > 0 {
			ranked = append(ranked, u)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].HighScore != ranked[j].HighScore {
			return ranked[i].HighScore > ranked[j].HighScore
		}
		return ranked[i].CreatedAt < ranked[j].CreatedAt
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]domain.LeaderboardEntry, len(ranked))
	for i, u := range ranked {
		out[i] = domain.LeaderboardEntry{Name: u.Name, HighScore: u.HighScore}
	}
	return out, nil
}

var _ ports.UserStore = (*UserFS)(nil)
