package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/adeeba-codes/wood-block-puzzle/internal/auth"
	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
	"github.com/adeeba-codes/wood-block-puzzle/internal/ports"
	"github.com/adeeba-codes/wood-block-puzzle/internal/session"
)

var (
	// ErrMissingFields rejects register/login payloads with empty fields.
	ErrMissingFields = errors.New("missing fields")
	// ErrInvalidCredentials covers unknown email and wrong password alike,
	// deliberately not distinguishing the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	leaderboardSize   = 10
	reportTimeout     = 5 * time.Second
	difficultyPrefKey = "prefs/difficulty"
	soundPrefKey      = "prefs/sound"
)

// Service wires the account store, token codec, session registry and score
// reporting into the operations the HTTP adapter exposes.
type Service struct {
	Users     ports.UserStore
	Tokens    ports.TokenCodec
	Sessions  *session.Registry
	Hinter    ports.Hinter
	Snapshots ports.SnapshotStore
	High      *session.HighScore

	// Reporter, when set, pushes final scores to a remote leaderboard
	// service; otherwise scores are applied to the local store directly.
	Reporter ports.ScoreReporter
	// Feed, when set, receives the refreshed top list after score changes.
	Feed ports.LeaderboardFeed

	Logger *slog.Logger

	newID func() string
	now   func() time.Time
}

// NewService builds a Service. Users, Tokens and Sessions are required.
func NewService(users ports.UserStore, tokens ports.TokenCodec, sessions *session.Registry, hinter ports.Hinter, snapshots ports.SnapshotStore, high *session.HighScore, logger *slog.Logger) *Service {
	return &Service{
		Users:     users,
		Tokens:    tokens,
		Sessions:  sessions,
		Hinter:    hinter,
		Snapshots: snapshots,
		High:      high,
		Logger:    logger,
		newID:     session.NewID,
		now:       time.Now,
	}
}

// ---- Accounts ----

// Credentials is what register and login hand back: the account plus a
// bearer token for it.
type Credentials struct {
	User  *domain.User
	Token string
}

// Register creates an account, hashes its password and signs it in.
func (s *Service) Register(ctx context.Context, name, email, password string) (Credentials, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return Credentials{}, ErrMissingFields
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return Credentials{}, err
	}
	u := &domain.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UnixNano(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return Credentials{}, err
	}
	token, err := s.Tokens.Mint(u.ID)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{User: u, Token: token}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (Credentials, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Credentials{}, ErrMissingFields
	}
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		return Credentials{}, ErrInvalidCredentials
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return Credentials{}, ErrInvalidCredentials
	}
	token, err := s.Tokens.Mint(u.ID)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{User: u, Token: token}, nil
}

// PushScore records a final score for the token's account. The stored high
// score only moves up; the returned value is always the stored one.
func (s *Service) PushScore(ctx context.Context, token string, score int) (int, error) {
	userID, err := s.Tokens.Verify(token)
	if err != nil {
		return 0, auth.ErrInvalidToken
	}
	u, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if score > u.HighScore {
		u, err = s.Users.SetHighScore(ctx, userID, score)
		if err != nil {
			return 0, err
		}
		s.refreshFeed(ctx)
	}
	return u.HighScore, nil
}

// Leaderboard returns the public top-10.
func (s *Service) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return s.Users.Top(ctx, leaderboardSize)
}

// ListUsers returns every account for the diagnostic listing.
func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.Users.List(ctx)
}

func (s *Service) refreshFeed(ctx context.Context) {
	if s.Feed == nil {
		return
	}
	top, err := s.Users.Top(ctx, leaderboardSize)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("leaderboard refresh failed", "err", err)
		}
		return
	}
	s.Feed.BroadcastLeaderboard(top)
}

// ---- Game sessions ----

// NewGame opens a session: resuming the snapshot for id when possible,
// otherwise starting fresh at the requested tier (or the persisted
// preference, or normal).
func (s *Service) NewGame(ctx context.Context, id, tier string) session.View {
	var d domain.Difficulty
	if tier != "" {
		d = domain.ParseDifficulty(tier)
	} else {
		d = s.preferredTier(ctx)
	}
	return s.Sessions.Open(ctx, id, d).View()
}

// Place drops the active block at the target origin. When the transition
// ends the game and the caller is authenticated, the final score is reported
// off the request path.
func (s *Service) Place(ctx context.Context, id string, row, col int, token string) (session.View, session.PlaceResult, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return session.View{}, session.PlaceResult{}, err
	}
	res, err := sess.Place(ctx, row, col)
	if err != nil {
		return sess.View(), res, err
	}
	if res.GameOver && token != "" {
		go s.reportFinalScore(token, res.FinalScore)
	}
	return sess.View(), res, nil
}

// reportFinalScore pushes a final score in the background. Failures are
// logged and never reach the gameplay path; a successful report's value is
// authoritative and adopted as the displayed high score.
func (s *Service) reportFinalScore(token string, score int) {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()
	var (
		high int
		err  error
	)
	if s.Reporter != nil {
		high, err = s.Reporter.UpdateScore(ctx, token, score)
	} else {
		high, err = s.PushScore(ctx, token, score)
	}
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("score report failed", "err", err)
		}
		return
	}
	if s.High != nil {
		s.High.Adopt(ctx, high)
	}
}

// Rotate turns the session's active block clockwise.
func (s *Service) Rotate(ctx context.Context, id string) (session.View, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return session.View{}, err
	}
	if err := sess.RotateActive(ctx); err != nil {
		return sess.View(), err
	}
	return sess.View(), nil
}

// Undo restores the previous grid occupancy.
func (s *Service) Undo(ctx context.Context, id string) (session.View, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return session.View{}, err
	}
	sess.Undo(ctx)
	return sess.View(), nil
}

// Restart resets the session, optionally switching difficulty. A supplied
// tier is also remembered as the preference.
func (s *Service) Restart(ctx context.Context, id, tier string) (session.View, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return session.View{}, err
	}
	var d domain.Difficulty
	if tier != "" {
		d = domain.ParseDifficulty(tier)
		s.savePref(ctx, difficultyPrefKey, string(d))
	}
	sess.Restart(ctx, d)
	return sess.View(), nil
}

// GameState returns the current view without mutating anything.
func (s *Service) GameState(id string) (session.View, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return session.View{}, err
	}
	return sess.View(), nil
}

// Hint suggests a legal placement for the session's active block.
func (s *Service) Hint(id string) (domain.PlacementHint, bool, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return domain.PlacementHint{}, false, err
	}
	h, ok := sess.Hint(s.Hinter)
	return h, ok, nil
}

// ---- Preferences ----

// Prefs are the UI settings persisted across reloads.
type Prefs struct {
	Difficulty string `json:"difficulty"`
	Sound      bool   `json:"sound"`
}

// GetPrefs loads the stored preferences, defaulting to normal difficulty
// with sound on.
func (s *Service) GetPrefs(ctx context.Context) Prefs {
	p := Prefs{Difficulty: string(domain.Normal), Sound: true}
	if s.Snapshots == nil {
		return p
	}
	var d string
	if err := s.Snapshots.Load(ctx, difficultyPrefKey, &d); err == nil {
		p.Difficulty = string(domain.ParseDifficulty(d))
	}
	var sound bool
	if err := s.Snapshots.Load(ctx, soundPrefKey, &sound); err == nil {
		p.Sound = sound
	}
	return p
}

// SetPrefs persists the preferences; failures are non-fatal.
func (s *Service) SetPrefs(ctx context.Context, p Prefs) Prefs {
	p.Difficulty = string(domain.ParseDifficulty(p.Difficulty))
	s.savePref(ctx, difficultyPrefKey, p.Difficulty)
	s.savePref(ctx, soundPrefKey, p.Sound)
	return p
}

func (s *Service) savePref(ctx context.Context, key string, v any) {
	if s.Snapshots == nil {
		return
	}
	if err := s.Snapshots.Save(ctx, key, v); err != nil && s.Logger != nil {
		s.Logger.Warn("preference save failed", "key", key, "err", err)
	}
}

func (s *Service) preferredTier(ctx context.Context) domain.Difficulty {
	if s.Snapshots != nil {
		var d string
		if err := s.Snapshots.Load(ctx, difficultyPrefKey, &d); err == nil && d != "" {
			return domain.ParseDifficulty(d)
		}
	}
	return domain.Normal
}
