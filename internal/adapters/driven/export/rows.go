package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// emptyHeader is written when a session has no selections.
var emptyHeader = []string{"query", "title", "provider", "url", "thumb"}

// Row is one selected item flattened to column values.
type Row map[string]string

// Rows flattens the session's export rows. Every row carries the core
// columns; video_files and extra appear only when the item has them.
func Rows(session *domain.Session) []Row {
	items := session.ExportRows()
	out := make([]Row, 0, len(items))
	for _, item := range items {
		out = append(out, flatten(item))
	}
	return out
}

func flatten(item domain.MediaResult) Row {
	row := Row{
		"query":      item.Query,
		"title":      item.Title,
		"provider":   item.Provider,
		"url":        item.URL,
		"thumb":      item.Thumb,
		"author":     item.Author,
		"license":    item.License,
		"media_type": string(item.MediaType),
		"duration":   formatDuration(item.Duration),
	}
	if item.MediaType == domain.MediaVideo && len(item.VideoFiles) > 0 {
		if b, err := json.Marshal(item.VideoFiles); err == nil {
			row["video_files"] = string(b)
		}
	}
	if len(item.Extra) > 0 {
		if b, err := json.Marshal(item.Extra); err == nil {
			row["extra"] = string(b)
		}
	}
	return row
}

func formatDuration(d float64) string {
	if d == 0 {
		return ""
	}
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// Header returns the sorted union of the rows' keys.
func Header(rows []Row) []string {
	if len(rows) == 0 {
		return append([]string(nil), emptyHeader...)
	}
	seen := make(map[string]bool)
	var keys []string
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// writeAtomic calls write with a temporary path next to path and renames
// the result into place once write succeeds.
func writeAtomic(path string, write func(tmp string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	f.Close()

	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename export: %w", err)
	}
	return nil
}

// writeFile writes the output of write to path atomically.
func writeFile(path string, write func(f *os.File) error) error {
	return writeAtomic(path, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("open temp file: %w", err)
		}
		if err := write(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}
