package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
	"github.com/custodia-labs/vmt/internal/logger"
)

// Ensure LoaderService implements the interface.
var _ driving.LoaderService = (*LoaderService)(nil)

// maxInputSize bounds how much of an input file is read.
const maxInputSize = 32 << 20

// extra MIME types not known to the mime package on every platform.
var mimeByExt = map[string]string{
	".txt":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".srt":      "application/x-subrip",
	".vtt":      "text/vtt",
	".otio":     "application/vnd.opentimelineio+json",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// LoaderService reads input files and normalises them to transcript text.
type LoaderService struct {
	registry driven.NormaliserRegistry
	pipeline driven.PostProcessorPipeline
}

// NewLoaderService creates a loader over a normaliser registry.
func NewLoaderService(registry driven.NormaliserRegistry) *LoaderService {
	return &LoaderService{registry: registry}
}

// SetPipeline sets the post-processors run over every loaded transcript.
// A nil pipeline leaves normalised text untouched.
func (s *LoaderService) SetPipeline(pipeline driven.PostProcessorPipeline) {
	s.pipeline = pipeline
}

// LoadFile reads and normalises the file at path.
func (s *LoaderService) LoadFile(ctx context.Context, path string) (*domain.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return s.LoadReader(ctx, path, f)
}

// LoadReader normalises r, using name to pick the format.
func (s *LoaderService) LoadReader(ctx context.Context, name string, r io.Reader) (*domain.Transcript, error) {
	content, err := io.ReadAll(io.LimitReader(r, maxInputSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	raw := &domain.RawDocument{
		URI:      name,
		MIMEType: DetectMIMEType(name),
		Content:  content,
		Metadata: map[string]any{"extension": strings.ToLower(filepath.Ext(name))},
	}
	logger.Debug("Loading %s as %s (%d bytes)", name, raw.MIMEType, len(content))

	result, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", name, err)
	}
	t := result.Transcript

	if s.pipeline != nil {
		lines, err := s.pipeline.Process(ctx, &t)
		if err != nil {
			return nil, fmt.Errorf("post-process %s: %w", name, err)
		}
		t.Text = strings.Join(lines, "\n")
		if t.Metadata == nil {
			t.Metadata = make(map[string]any)
		}
		t.Metadata["blocks"] = len(lines)
	}
	logger.Debug("Loaded %q: %d characters", t.Title, len(t.Text))
	return &t, nil
}

// DetectMIMEType guesses the MIME type of name from its extension.
// Unknown extensions yield text/plain.
func DetectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mt, ok := mimeByExt[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if base, _, err := mime.ParseMediaType(mt); err == nil {
			return base
		}
	}
	return "text/plain"
}
