// Package migrations holds the schema of session bundles.
//
// Files are named NNN_name.up.sql with an optional NNN_name.down.sql.
// The version is the numeric prefix; applied versions are recorded by the
// store, not by the scripts.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

// Migration is one schema step.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// All returns the embedded migrations ordered by version.
func All() ([]Migration, error) {
	return Load(files)
}

// Load reads migrations from fsys. Two up scripts with the same version
// are an error.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		name := entry.Name()
		base, up := strings.CutSuffix(name, ".up.sql")
		if !up {
			var down bool
			if base, down = strings.CutSuffix(name, ".down.sql"); !down {
				continue
			}
		}

		var version int
		if _, err := fmt.Sscanf(base, "%d_", &version); err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: missing version prefix", name)
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", name, err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: base}
			byVersion[version] = m
		}
		switch {
		case !up:
			m.Down = string(content)
		case m.Up != "":
			return nil, fmt.Errorf("migration %s: version %d defined twice", name, version)
		default:
			m.Up = string(content)
		}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.Up == "" {
			return nil, fmt.Errorf("migration %s: no up script", m.Name)
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// After returns the migrations newer than version.
func After(all []Migration, version int) []Migration {
	i := sort.Search(len(all), func(i int) bool { return all[i].Version > version })
	return all[i:]
}
