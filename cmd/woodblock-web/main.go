package main

import (
	"context"
	"flag"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpadapter "github.com/adeeba-codes/wood-block-puzzle/internal/adapters/http"
	"github.com/adeeba-codes/wood-block-puzzle/internal/auth"
	"github.com/adeeba-codes/wood-block-puzzle/internal/catalog"
	"github.com/adeeba-codes/wood-block-puzzle/internal/hint"
	"github.com/adeeba-codes/wood-block-puzzle/internal/infrastructure/storage"
	"github.com/adeeba-codes/wood-block-puzzle/internal/live"
	"github.com/adeeba-codes/wood-block-puzzle/internal/scoreclient"
	"github.com/adeeba-codes/wood-block-puzzle/internal/session"
	"github.com/adeeba-codes/wood-block-puzzle/internal/usecase"
	"github.com/adeeba-codes/wood-block-puzzle/web"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

// envOr prefers the flag value, then the environment, then the fallback.
func envOr(flagVal, envKey, fallback string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	return fallback
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	persist := flag.String("persist-path", "./data", "save directory")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	jwtSecret := flag.String("jwt-secret", "", "token signing secret (or JWT_SECRET)")
	scoreAPI := flag.String("score-api-url", "", "remote leaderboard service base URL (or SCORE_API_URL); empty keeps scores local")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	_ = os.MkdirAll(*persist, 0o755)

	secret := envOr(*jwtSecret, "JWT_SECRET", "")
	if secret == "" {
		secret = "secret"
		logger.Warn("no jwt secret configured, using an insecure default")
	}

	ctx := context.Background()

	// Wire providers → use cases → HTTP adapter
	snapshots := storage.NewFS(*persist)
	users, err := storage.NewUserFS(*persist)
	if err != nil {
		logger.Error("user store init failed", "err", err)
		os.Exit(1)
	}
	blocks := catalog.New(nil)
	high := session.NewHighScore(ctx, snapshots, logger)
	sessions := session.NewRegistry(blocks, snapshots, high, logger)
	tokens := auth.NewTokens(secret, 0)
	hub := live.NewHub(logger)

	svc := usecase.NewService(users, tokens, sessions, hint.NewPlacement(), snapshots, high, logger)
	svc.Feed = hub
	if c := scoreclient.New(envOr(*scoreAPI, "SCORE_API_URL", "")); c.Enabled() {
		svc.Reporter = c
	}

	h := httpadapter.New(svc, hub)

	tmpl := web.Templates()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", map[string]any{}); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "persist", *persist)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
