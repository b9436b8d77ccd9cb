package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/shared/apperror"
)

// Store writes binary artifacts under a single sandboxed directory and
// hands back server-generated keys. Client-supplied names are never used
// as storage paths, only kept as display metadata.
type Store interface {
	// Save persists data under a fresh collision-resistant key derived
	// from originalName's extension and returns (key, url).
	Save(originalName string, data []byte) (string, string, error)
	// Open resolves a previously returned key inside the sandbox.
	Open(key string) (string, error)
}

type diskStore struct {
	dir       string
	publicURL string
}

func NewDiskStore(dir, publicURL string) (Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &diskStore{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (s *diskStore) Save(originalName string, data []byte) (string, string, error) {
	key, err := generateKey(originalName)
	if err != nil {
		return "", "", err
	}

	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write artifact: %w", err)
	}

	return key, s.publicURL + "/files/" + key, nil
}

func (s *diskStore) Open(key string) (string, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, clean)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", apperror.ErrNotFound
		}
		return "", err
	}
	return path, nil
}

// generateKey builds "<unix-nano>-<8 hex>-<sanitized base>". The timestamp
// plus random suffix is collision-resistant, not cryptographically unique;
// a collision costs at most a stray orphan file.
func generateKey(originalName string) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("random suffix: %w", err)
	}

	base := sanitizeBase(filepath.Base(originalName))
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), hex.EncodeToString(suffix), base), nil
}

func sanitizeBase(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		out = "document"
	}
	return out
}

// sanitizeKey rejects anything that could escape the sandbox directory.
func sanitizeKey(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", apperror.New(apperror.CodeInvalidInput, "invalid file name", 400)
	}
	clean := filepath.Clean(key)
	if clean != key {
		return "", apperror.New(apperror.CodeInvalidInput, "invalid file name", 400)
	}
	return clean, nil
}
