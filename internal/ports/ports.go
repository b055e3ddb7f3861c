package ports

import (
	"context"
	"errors"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
)

var (
	// ErrNoSnapshot means no usable snapshot exists under a key. Malformed
	// data loads as absent, never as a partial state.
	ErrNoSnapshot = errors.New("no snapshot")
	// ErrNotFound means the requested user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// BlockSource produces fresh blocks for a difficulty tier.
type BlockSource interface {
	Draw(tier domain.Difficulty) *domain.Block
}

// SnapshotStore persists whole-value snapshots under logical keys. Values
// are written and read as single blobs; there are no partial updates.
type SnapshotStore interface {
	Save(ctx context.Context, key string, v any) error
	Load(ctx context.Context, key string, v any) error
}

// UserStore persists account documents and answers leaderboard queries.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
	// SetHighScore overwrites the stored high score and returns the updated user.
	SetHighScore(ctx context.Context, id string, score int) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
}

// TokenCodec mints and verifies bearer tokens carrying a user identity.
type TokenCodec interface {
	Mint(userID string) (string, error)
	Verify(token string) (string, error)
}

// ScoreReporter pushes a final score to the leaderboard service and returns
// the authoritative stored high score.
type ScoreReporter interface {
	UpdateScore(ctx context.Context, token string, score int) (int, error)
}

// Hinter proposes a legal placement for a block, if one exists.
type Hinter interface {
	Hint(g *domain.Grid, b *domain.Block) (domain.PlacementHint, bool)
}

// LeaderboardFeed receives the refreshed top list after a score change.
type LeaderboardFeed interface {
	BroadcastLeaderboard(entries []domain.LeaderboardEntry)
}
