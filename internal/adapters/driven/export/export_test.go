package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

func testSession() *domain.Session {
	return &domain.Session{
		ID:        "sess-1",
		Queries:   []string{"deer forest", "golden light", "calm river"},
		MediaType: domain.MediaVideo,
		Selected: map[string]domain.MediaResult{
			"golden light": {
				Title: "Sunbeam <dawn>", Provider: "pexels", URL: "https://p/1", Thumb: "https://p/1.jpg",
				Author: "Ana", License: "Free", MediaType: domain.MediaVideo, Duration: 12.5,
				VideoFiles: []domain.VideoFile{{URL: "https://v/1.mp4", Width: 1920, Height: 1080, Quality: "hd"}},
				Extra:      map[string]string{"id": "1"},
			},
			"deer forest": {Title: "Deer, running", Provider: "pixabay", URL: "https://x/2", MediaType: domain.MediaPhoto},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestRows(t *testing.T) {
	rows := Rows(testSession())

	require.Len(t, rows, 2)
	assert.Equal(t, "deer forest", rows[0]["query"], "query order")
	assert.Equal(t, "golden light", rows[1]["query"])
	assert.Equal(t, "12.5", rows[1]["duration"])
	assert.Equal(t, `{"id":"1"}`, rows[1]["extra"])
	assert.Contains(t, rows[1]["video_files"], "https://v/1.mp4")
	_, hasExtra := rows[0]["extra"]
	assert.False(t, hasExtra)
}

func TestHeader(t *testing.T) {
	assert.Equal(t, []string{"query", "title", "provider", "url", "thumb"}, Header(nil))
	assert.Equal(t, []string{"a", "b", "c"}, Header([]Row{{"c": "", "a": ""}, {"b": "", "a": ""}}))
}

func TestCSVExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cues.csv")
	exporter := NewCSVExporter()

	require.NoError(t, exporter.Export(context.Background(), path, testSession()))

	assert.Equal(t, domain.ExportCSV, exporter.Format())
	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"author", "duration", "extra", "license", "media_type", "provider",
		"query", "thumb", "title", "url", "video_files",
	}, records[0])
	assert.Equal(t, "Deer, running", records[1][8])
	assert.Equal(t, "", records[1][2], "missing column is empty")
	assert.Equal(t, "golden light", records[2][6])
}

func TestCSVExporter_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	require.NoError(t, NewCSVExporter().Export(context.Background(), path, &domain.Session{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "query,title,provider,url,thumb\n", string(data))
}

func TestShotlistExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out_shotlist.csv")

	require.NoError(t, NewShotlistExporter().Export(context.Background(), path, testSession()))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, shotlistHeader, records[0])
	assert.Equal(t, []string{"1", "deer forest", "Deer, running", "pixabay", "photo", "", "", "", "https://x/2"}, records[1])
	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "12.5", records[2][5])
}

func TestJSONExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")

	require.NoError(t, NewJSONExporter().Export(context.Background(), path, testSession()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sunbeam <dawn>", "HTML is not escaped")
	var items []domain.MediaResult
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "deer forest", items[0].Query)
	assert.Equal(t, "golden light", items[1].Query)
	assert.Len(t, items[1].VideoFiles, 1)
}

func TestJSONExporter_EmptyIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")

	require.NoError(t, NewJSONExporter().Export(context.Background(), path, &domain.Session{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestDOCXExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.docx")
	exporter := NewDOCXExporter()
	exporter.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC) }

	require.NoError(t, exporter.Export(context.Background(), path, testSession()))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	var body string
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			b, err := io.ReadAll(rc)
			rc.Close()
			require.NoError(t, err)
			body = string(b)
		}
	}
	require.NotEmpty(t, body)
	assert.Contains(t, body, "Shot List")
	assert.Contains(t, body, "1. deer forest")
	assert.Contains(t, body, "2. golden light")
	assert.Contains(t, body, "Still to find")
	assert.Contains(t, body, "- calm river")
	assert.True(t, strings.Index(body, "deer forest") < strings.Index(body, "golden light"))
}

func TestExporters_NilSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x")
	for _, e := range []interface {
		Export(context.Context, string, *domain.Session) error
	}{NewCSVExporter(), NewShotlistExporter(), NewJSONExporter(), NewDOCXExporter()} {
		assert.ErrorIs(t, e.Export(context.Background(), path, nil), domain.ErrInvalidInput)
	}
}

func TestWriteAtomic_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	err := writeAtomic(path, func(string) error { return assert.AnError })

	assert.ErrorIs(t, err, assert.AnError)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
