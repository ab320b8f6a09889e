package lexicon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/logger"
)

// Verify interface compliance.
var _ driven.LexiconLoader = (*Loader)(nil)

// Format identifies a lexicon file encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor returns the format implied by the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: lexicon file %s", domain.ErrUnsupportedType, filepath.Base(path))
	}
}

// Loader implements driven.LexiconLoader on the local filesystem.
type Loader struct{}

// NewLoader creates a lexicon file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the lexicon file at path.
func (l *Loader) Load(ctx context.Context, path string) (*domain.LexiconFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("lexicon file %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read lexicon file: %w", err)
	}

	lf, err := Decode(format, data)
	if err != nil {
		return nil, err
	}
	logger.Debug("Lexicon file %s: %d stopwords, %d emotion labels, %d entities, %d actions",
		path, len(lf.Stopwords), len(lf.Emotions), len(lf.Entities), len(lf.Actions))
	return lf, nil
}

// Write encodes lf and stores it at path.
func (l *Loader) Write(ctx context.Context, path string, lf *domain.LexiconFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if lf == nil {
		return fmt.Errorf("%w: nil lexicon file", domain.ErrInvalidInput)
	}
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, lf)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create lexicon directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write lexicon file: %w", err)
	}
	return nil
}

// Decode parses data in the given format, rejecting unknown keys.
func Decode(format Format, data []byte) (*domain.LexiconFile, error) {
	var lf domain.LexiconFile
	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&lf)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&lf)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&lf)
	default:
		return nil, fmt.Errorf("%w: lexicon format %q", domain.ErrUnsupportedType, format)
	}
	if err != nil {
		return nil, domain.NewConfigError("lexicon_file", "%s: %v", format, err)
	}
	return &lf, nil
}

// Encode renders lf in the given format.
func Encode(format Format, lf *domain.LexiconFile) ([]byte, error) {
	switch format {
	case FormatTOML:
		data, err := toml.Marshal(lf)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return data, nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(lf); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(lf, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: lexicon format %q", domain.ErrUnsupportedType, format)
	}
}
