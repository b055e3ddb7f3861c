package scoreclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
)

// Client talks to the account/leaderboard service over HTTP+JSON. It covers
// the service's whole API so a deployment can point at a remote instance for
// accounts as well as scores; the local server wires only UpdateScore. A nil
// Client is valid and means score sync is disabled.
type Client struct {
	baseURL string
	client  *http.Client
}

// New builds a client for the service at baseURL, or nil when baseURL is
// empty.
func New(baseURL string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 4 * time.Second,
		},
	}
}

// Enabled reports whether the client is configured.
func (c *Client) Enabled() bool { return c != nil }

// Credentials is the register/login response: the account plus its token.
type Credentials struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type statusError int

func (s statusError) Error() string {
	return "unexpected status: " + http.StatusText(int(s))
}

type apiError struct {
	Message string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Message != "" {
			return remoteError{status: resp.StatusCode, message: apiErr.Message}
		}
		return statusError(resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type remoteError struct {
	status  int
	message string
}

func (e remoteError) Error() string { return e.message }

// Register creates an account and returns its credentials.
func (c *Client) Register(ctx context.Context, name, email, password string) (Credentials, error) {
	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	}, &creds)
	return creds, err
}

// Login authenticates an existing account.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	}, &creds)
	return creds, err
}

// UpdateScore reports a final score and returns the authoritative stored
// high score, which callers always adopt.
func (c *Client) UpdateScore(ctx context.Context, token string, score int) (int, error) {
	var resp struct {
		HighScore int `json:"highScore"`
	}
	err := c.do(ctx, http.MethodPost, "/api/score/update", token, map[string]int{"score": score}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.HighScore, nil
}

// Leaderboard fetches the public top-10 listing.
func (c *Client) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	err := c.do(ctx, http.MethodGet, "/api/leaderboard", "", nil, &entries)
	return entries, err
}

// Users fetches the diagnostic account listing.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := c.do(ctx, http.MethodGet, "/api/users", "", nil, &users)
	return users, err
}
