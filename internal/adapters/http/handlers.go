package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/adeeba-codes/wood-block-puzzle/internal/auth"
	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
	"github.com/adeeba-codes/wood-block-puzzle/internal/ports"
	"github.com/adeeba-codes/wood-block-puzzle/internal/session"
	"github.com/adeeba-codes/wood-block-puzzle/internal/usecase"
)

type Handler struct {
	UC   *usecase.Service
	Live http.Handler
}

func New(uc *usecase.Service, live http.Handler) *Handler {
	return &Handler{UC: uc, Live: live}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", h.handleRegister)
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/score/update", h.handleScoreUpdate)
	mux.HandleFunc("/api/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/api/users", h.handleUsers)
	mux.HandleFunc("/api/game/new", h.handleGameNew)
	mux.HandleFunc("/api/game/place", h.handleGamePlace)
	mux.HandleFunc("/api/game/rotate", h.handleGameRotate)
	mux.HandleFunc("/api/game/undo", h.handleGameUndo)
	mux.HandleFunc("/api/game/restart", h.handleGameRestart)
	mux.HandleFunc("/api/game/state", h.handleGameState)
	mux.HandleFunc("/api/game/hint", h.handleGameHint)
	mux.HandleFunc("/api/prefs", h.handlePrefs)
	if h.Live != nil {
		mux.Handle("/api/leaderboard/live", h.Live)
	}
}

type errResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps service errors onto status codes with generic bodies;
// internals never leak to the client.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, errResp{Error: "Missing fields"})
	case errors.Is(err, ports.ErrEmailTaken):
		writeJSON(w, http.StatusBadRequest, errResp{Error: "Email already exists"})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, errResp{Error: "Invalid credentials"})
	case errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errResp{Error: "Invalid or expired token"})
	case errors.Is(err, ports.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errResp{Error: "User not found"})
	case errors.Is(err, session.ErrUnknownSession):
		writeJSON(w, http.StatusNotFound, errResp{Error: "Unknown session"})
	case errors.Is(err, session.ErrGameOver):
		writeJSON(w, http.StatusConflict, errResp{Error: "Game is over"})
	default:
		writeJSON(w, http.StatusInternalServerError, errResp{Error: "Server error"})
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "Method not allowed"})
}

func badJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errResp{Error: "Invalid JSON"})
}

// bearerToken extracts the Authorization bearer token, or "".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

// ---- Accounts ----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credsResp struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	creds, err := h.UC.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credsResp{User: creds.User, Token: creds.Token})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	creds, err := h.UC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credsResp{User: creds.User, Token: creds.Token})
}

type scoreUpdateReq struct {
	Score *int `json:"score"`
}

type scoreUpdateResp struct {
	HighScore int `json:"highScore"`
}

func (h *Handler) handleScoreUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errResp{Error: "No token provided"})
		return
	}
	var req scoreUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Score == nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "Score must be a valid number"})
		return
	}
	high, err := h.UC.PushScore(r.Context(), token, *req.Score)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreUpdateResp{HighScore: high})
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	entries, err := h.UC.Leaderboard(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	users, err := h.UC.ListUsers(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// ---- Game ----

type gameNewReq struct {
	ID         string `json:"id,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

func (h *Handler) handleGameNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req gameNewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		badJSON(w)
		return
	}
	writeJSON(w, http.StatusOK, h.UC.NewGame(r.Context(), req.ID, req.Difficulty))
}

type gamePlaceReq struct {
	ID  string `json:"id"`
	Row int    `json:"row"`
	Col int    `json:"col"`
}

type gamePlaceResp struct {
	session.View
	Placed       bool               `json:"placed"`
	LinesCleared int                `json:"linesCleared"`
	Filled       []domain.CellCoord `json:"filled,omitempty"`
	Cleared      []domain.CellCoord `json:"cleared,omitempty"`
}

func (h *Handler) handleGamePlace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req gamePlaceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	view, res, err := h.UC.Place(r.Context(), req.ID, req.Row, req.Col, bearerToken(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gamePlaceResp{
		View:         view,
		Placed:       res.Placed,
		LinesCleared: res.LinesCleared,
		Filled:       res.Filled,
		Cleared:      res.Cleared,
	})
}

type gameIDReq struct {
	ID         string `json:"id"`
	Difficulty string `json:"difficulty,omitempty"`
}

func (h *Handler) handleGameRotate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req gameIDReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	view, err := h.UC.Rotate(r.Context(), req.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleGameUndo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req gameIDReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	view, err := h.UC.Undo(r.Context(), req.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleGameRestart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req gameIDReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	view, err := h.UC.Restart(r.Context(), req.ID, req.Difficulty)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleGameState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	view, err := h.UC.GameState(r.URL.Query().Get("id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type gameHintResp struct {
	Found bool                 `json:"found"`
	Hint  domain.PlacementHint `json:"hint,omitempty"`
}

func (h *Handler) handleGameHint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	hint, ok, err := h.UC.Hint(r.URL.Query().Get("id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gameHintResp{Found: ok, Hint: hint})
}

// ---- Preferences ----

func (h *Handler) handlePrefs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.UC.GetPrefs(r.Context()))
	case http.MethodPost:
		var p usecase.Prefs
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			badJSON(w)
			return
		}
		writeJSON(w, http.StatusOK, h.UC.SetPrefs(r.Context(), p))
	default:
		methodNotAllowed(w)
	}
}
