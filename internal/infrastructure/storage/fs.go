package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adeeba-codes/wood-block-puzzle/internal/ports"
)

// FS stores one JSON document per logical key under a base directory.
// Keys may contain forward slashes to group related snapshots.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

var errBadKey = errors.New("invalid snapshot key")

func (s *FS) pathFor(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", errBadKey
	}
	return filepath.Join(s.dir, filepath.FromSlash(key)+".json"), nil
}

// Save writes v as an indented JSON document, replacing any prior value.
func (s *FS) Save(ctx context.Context, key string, v any) error {
	target, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Load reads the document under key into v. Absent or malformed documents
// both come back as ports.ErrNoSnapshot; a snapshot is never half-applied.
func (s *FS) Load(ctx context.Context, key string, v any) error {
	target, err := s.pathFor(key)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return ports.ErrNoSnapshot
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ports.ErrNoSnapshot
	}
	return nil
}

var _ ports.SnapshotStore = (*FS)(nil)
