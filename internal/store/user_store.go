// Package store implements the three flat-file JSON stores backing the
// application: the user table, the read-only ticket table, and the prompt
// response cache. Each store owns a single file that is read fully and
// rewritten fully on every mutation; writes go through a temp-file rename
// so readers never observe a half-written file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
)

// bcryptCost is the adaptive work factor for password hashing.
const bcryptCost = 12

// ErrCorruptData wraps a parse failure of a store file that exists but does
// not contain valid JSON. Callers match it with errors.Is.
var ErrCorruptData = errors.New("store file is corrupt")

// UserStore persists the employee-id → account mapping as one pretty-printed
// JSON file. The whole file is rewritten on every mutation; a store-wide
// mutex serializes writers within the process.
type UserStore struct {
	path string
	mu   sync.Mutex
}

// NewUserStore returns a store backed by the given file path. The file does
// not have to exist yet.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Load reads the full user table. A missing file yields an empty map; a
// present but unparsable file yields an error wrapping ErrCorruptData.
func (s *UserStore) Load() (map[string]domain.UserAccount, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]domain.UserAccount{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	users := map[string]domain.UserAccount{}
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, s.path, err)
	}
	return users, nil
}

// Save atomically replaces the backing file with the full mapping,
// pretty-printed for human inspection. The temp file is created in the
// target directory so the rename stays on one filesystem.
func (s *UserStore) Save(users map[string]domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, users)
}

// HashPassword produces a salted bcrypt hash. Each call salts freshly, so
// hashing the same input twice yields different strings.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// bcrypt's comparison is used rather than any raw equality.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// writeJSONAtomic marshals v with indentation and renames a temp file over
// path, so a crash mid-write leaves the prior file untouched.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeBytesAtomic(path, append(data, '\n'))
}

// writeBytesAtomic writes data to a temp file in path's directory and
// renames it over path, so the rename stays on one filesystem.
func writeBytesAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s over %s: %w", tmpName, path, err)
	}
	return nil
}
