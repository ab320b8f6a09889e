// Package session stores sessions as .vmt.json files.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.SessionStore = (*FileStore)(nil)

// Extension is the session file suffix.
const Extension = ".vmt.json"

// FileStore reads and writes session files. Files written by older
// versions without id or timestamps load with those fields empty.
type FileStore struct{}

// NewFileStore creates a session file store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// PathFor returns base with the session extension added when missing.
func PathFor(base string) string {
	if strings.HasSuffix(base, Extension) {
		return base
	}
	return strings.TrimSuffix(base, ".json") + Extension
}

// Save writes session to path as indented JSON.
func (s *FileStore) Save(_ context.Context, path string, session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidInput
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(session); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads the session at path.
func (s *FileStore) Load(_ context.Context, path string) (*domain.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("session %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse session %s: %w: %v", path, domain.ErrInvalidInput, err)
	}
	if !hasAny(fields, "text", "queries") {
		return nil, fmt.Errorf("parse session %s: %w: neither text nor queries present", path, domain.ErrInvalidInput)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parse session %s: %w: %v", path, domain.ErrInvalidInput, err)
	}
	return &session, nil
}

func hasAny(fields map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := fields[k]; ok {
			return true
		}
	}
	return false
}
