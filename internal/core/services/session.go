package services

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
	"github.com/custodia-labs/vmt/internal/logger"
)

// Ensure the services implement the interfaces.
var (
	_ driving.SessionService = (*SessionService)(nil)
	_ driving.ExportService  = (*ExportService)(nil)
)

// AnalyzerName is recorded in sessions created by this build.
const AnalyzerName = "rake"

// SessionService manages working sessions.
type SessionService struct {
	store driven.SessionStore
}

// NewSessionService creates a session service.
func NewSessionService(store driven.SessionStore) *SessionService {
	return &SessionService{store: store}
}

// Create starts a session from text and its queries.
func (s *SessionService) Create(
	_ context.Context, text string, queries []string, mediaType domain.MediaType,
) (*domain.Session, error) {
	if mediaType == "" {
		mediaType = domain.MediaPhoto
	}
	if !mediaType.IsValid() {
		return nil, domain.ErrUnsupportedMediaType
	}
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New().String(),
		Text:      text,
		Queries:   dedupeQueries(queries),
		Selected:  make(map[string]domain.MediaResult),
		MediaType: mediaType,
		Analyzer:  AnalyzerName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	logger.Debug("Session %s created with %d queries", session.ID, len(session.Queries))
	return session, nil
}

// Load reads a session file.
func (s *SessionService) Load(ctx context.Context, path string) (*domain.Session, error) {
	session, err := s.store.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session.Selected == nil {
		session.Selected = make(map[string]domain.MediaResult)
	}
	if session.MediaType == "" {
		session.MediaType = domain.MediaPhoto
	}
	return session, nil
}

// Save writes a session file.
func (s *SessionService) Save(ctx context.Context, path string, session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidInput
	}
	if err := s.store.Save(ctx, path, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	logger.Debug("Session %s saved to %s", session.ID, path)
	return nil
}

// Select records item as the choice for query.
// The query is added to the session if it is not already listed.
func (s *SessionService) Select(
	_ context.Context, session *domain.Session, query string, item domain.MediaResult,
) error {
	query = strings.TrimSpace(query)
	if session == nil || query == "" {
		return domain.ErrInvalidInput
	}
	if item.Error {
		return fmt.Errorf("%w: cannot select an error result", domain.ErrInvalidInput)
	}
	if !slices.Contains(session.Queries, query) {
		session.Queries = append(session.Queries, query)
	}
	session.Select(query, item)
	return nil
}

func dedupeQueries(queries []string) []string {
	seen := make(map[string]bool, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}

// ExportService dispatches to the exporter registered for each format.
type ExportService struct {
	exporters map[domain.ExportFormat]driven.Exporter
	settings  driving.SettingsService
}

// NewExportService creates an export service.
// The settings service is optional; without it exports default to the
// current directory.
func NewExportService(settings driving.SettingsService, exporters ...driven.Exporter) *ExportService {
	m := make(map[domain.ExportFormat]driven.Exporter, len(exporters))
	for _, e := range exporters {
		m[e.Format()] = e
	}
	return &ExportService{exporters: m, settings: settings}
}

// Export writes session in format to path and returns the path written.
func (s *ExportService) Export(
	ctx context.Context, session *domain.Session, format domain.ExportFormat, path string,
) (string, error) {
	if session == nil {
		return "", domain.ErrInvalidInput
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}
	if path == "" {
		path = s.defaultPath(format)
	}

	done := logger.Timed("export " + string(format))
	defer done()
	if err := exporter.Export(ctx, path, session); err != nil {
		return "", fmt.Errorf("export %s: %w", format, err)
	}
	logger.Info("Exported %d selections to %s", len(session.Selected), path)
	return path, nil
}

// Formats lists the formats with a registered exporter in display order.
func (s *ExportService) Formats() []domain.ExportFormat {
	var out []domain.ExportFormat
	for _, f := range domain.AllExportFormats() {
		if _, ok := s.exporters[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

func (s *ExportService) defaultPath(format domain.ExportFormat) string {
	defaults := domain.DefaultAppSettings().Export
	dir, base := defaults.Dir, defaults.BaseName
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil {
			dir, base = settings.Export.Dir, settings.Export.BaseName
		}
	}
	return filepath.Join(dir, base+format.Extension())
}
