package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
	"github.com/adeeba-codes/wood-block-puzzle/internal/ports"
)

func newUser(id, name, email string, score int, createdAt int64) *domain.User {
	return &domain.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		HighScore:    score,
		CreatedAt:    createdAt,
	}
}

func TestUserFSCreateAndLookup(t *testing.T) {
	s, err := NewUserFS(t.TempDir())
	require.NoError(t, err)

	u := newUser("u1", "Ada", "ada@example.com", 0, 100)
	require.NoError(t, s.Create(context.Background(), u))

	got, err := s.ByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "Ada", got.Name)

	got, err = s.ByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)

	_, err = s.ByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = s.ByID(context.Background(), "u2")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUserFSDuplicateEmail(t *testing.T) {
	s, err := NewUserFS(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Create(context.Background(), newUser("u1", "Ada", "ada@example.com", 0, 100)))

	err = s.Create(context.Background(), newUser("u2", "Other", "ADA@Example.COM ", 0, 200))
	assert.ErrorIs(t, err, ports.ErrEmailTaken, "email uniqueness ignores case and padding")
}

func TestUserFSLookupsReturnCopies(t *testing.T) {
	s, err := NewUserFS(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), newUser("u1", "Ada", "ada@example.com", 0, 100)))

	got, err := s.ByID(context.Background(), "u1")
	require.NoError(t, err)
	got.Name = "Mallory"

	again, err := s.ByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.Name)
}

func TestUserFSSetHighScore(t *testing.T) {
	s, err := NewUserFS(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), newUser("u1", "Ada", "ada@example.com", 10, 100)))

	u, err := s.SetHighScore(context.Background(), "u1", 250)
	require.NoError(t, err)
	assert.Equal(t, 250, u.HighScore)

	_, err = s.SetHighScore(context.Background(), "ghost", 5)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUserFSSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewUserFS(dir)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), newUser("u1", "Ada", "ada@example.com", 0, 100)))
	_, err = s.SetHighScore(context.Background(), "u1", 77)
	require.NoError(t, err)

	reopened, err := NewUserFS(dir)
	require.NoError(t, err)

	got, err := reopened.ByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 77, got.HighScore)

	err = reopened.Create(context.Background(), newUser("u2", "Dup", "ada@example.com", 0, 200))
	assert.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestUserFSSkipsCorruptDocuments(t *testing.T) {
	dir := t.TempDir()
	usersDir := filepath.Join(dir, "users")
	require.NoError(t, os.MkdirAll(usersDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(usersDir, "junk.json"), []byte("not json"), 0o644))

	s, err := NewUserFS(dir)
	require.NoError(t, err)

	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserFSListOrdersByCreation(t *testing.T) {
	s, err := NewUserFS(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), newUser("u2", "Beth", "beth@example.com", 0, 300)))
	require.NoError(t, s.Create(context.Background(), newUser("u1", "Ada", "ada@example.com", 0, 100)))

	all, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ada", all[0].Name)
	assert.Equal(t, "Beth", all[1].Name)
}

func TestUserFSTopExcludesZeroScores(t *testing.T) {
	s, err := NewUserFS(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), newUser("u1", "Ada", "ada@example.com", 50, 100)))
	require.NoError(t, s.Create(context.Background(), newUser("u2", "Beth", "beth@example.com", 0, 200)))
	require.NoError(t, s.Create(context.Background(), newUser("u3", "Cory", "cory@example.com", 30, 300)))

	top, err := s.Top(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{
		{Name: "Ada", HighScore: 50},
		{Name: "Cory", HighScore: 30},
	}, top)
}

func TestUserFSTopTiesBreakByEarlierAccount(t *testing.T) {
	s, err := NewUserFS(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), newUser("u1", "Late", "late@example.com", 40, 900)))
	require.NoError(t, s.Create(context.Background(), newUser("u2", "Early", "early@example.com", 40, 100)))

	top, err := s.Top(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Early", top[0].Name)
	assert.Equal(t, "Late", top[1].Name)
}

func TestUserFSTopHonorsLimit(t *testing.T) {
	s, err := NewUserFS(t.TempDir())
	require.NoError(t, err)
	for i, name := range []string{"A", "B", "C"} {
		u := newUser(name, name, name+"@example.com", (i+1)*10, int64(i))
		require.NoError(t, s.Create(context.Background(), u))
	}

	top, err := s.Top(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 30, top[0].HighScore)
	assert.Equal(t, 20, top[1].HighScore)
}
