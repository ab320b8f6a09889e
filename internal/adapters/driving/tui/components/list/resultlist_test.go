package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

func sampleResults() []domain.MediaResult {
	return []domain.MediaResult{
		{Title: "Deer at dawn", Provider: "pexels", URL: "https://pexels.test/1", Author: "Ana", License: "Pexels License"},
		{
			Title: "Forest clip", Provider: "pixabay", URL: "https://pixabay.test/2", Duration: 12, MediaType: domain.MediaVideo,
			VideoFiles: []domain.VideoFile{{Width: 640, Height: 360}, {Width: 1920, Height: 1080}, {Width: 1280, Height: 720}},
		},
		{Title: "[Unsplash error: timeout]", Provider: "unsplash", URL: "#", Error: true},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewResultList(t *testing.T) {
	r := NewResultList(nil)

	require.NotNil(t, r)
	assert.True(t, r.IsEmpty())
	assert.Nil(t, r.SelectedResult())
	assert.Nil(t, r.Init())
}

func TestResultList_View_Empty(t *testing.T) {
	r := NewResultList(nil)

	assert.Contains(t, r.View(), "No results")
}

func TestResultList_View_RendersResults(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(120, 30)
	r.SetResults(sampleResults())

	view := r.View()

	assert.Contains(t, view, "Results (3)")
	assert.Contains(t, view, "Deer at dawn")
	assert.Contains(t, view, "by Ana · Pexels License")
	assert.Contains(t, view, "12s · 1920x1080")
	assert.Contains(t, view, "https://pixabay.test/2")
	assert.Contains(t, view, "[Unsplash error: timeout]")
}

func TestResultList_View_MarksPicked(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(120, 30)
	r.SetResults(sampleResults())

	assert.NotContains(t, r.View(), "✓")

	r.SetPicked("https://pixabay.test/2")
	assert.Contains(t, r.View(), "✓")
}

func TestResultList_Navigation(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(sampleResults())

	tests := []struct {
		key  string
		want int
	}{
		{"down", 1},
		{"j", 2},
		{"j", 2},
		{"up", 1},
		{"k", 0},
		{"k", 0},
		{"G", 2},
		{"g", 0},
	}
	for _, tt := range tests {
		r.Update(keyMsg(tt.key))
		assert.Equal(t, tt.want, r.Selected(), "after %s", tt.key)
	}
}

func TestResultList_SetResultsResetsSelection(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(sampleResults())
	r.SetSelected(2)

	r.SetResults(sampleResults()[:1])

	assert.Equal(t, 0, r.Selected())
	assert.Equal(t, 1, r.Count())
}

func TestResultList_SetSelected_OutOfRange(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(sampleResults())

	r.SetSelected(10)
	assert.Equal(t, 0, r.Selected())

	r.SetSelected(1)
	require.NotNil(t, r.SelectedResult())
	assert.Equal(t, "Forest clip", r.SelectedResult().Title)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "café s...", clip("café society", 9))
	assert.Equal(t, "abc", clip("abc", 2))
}

func TestResultList_View_ScrollsToSelection(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(120, 7)
	r.SetResults(sampleResults())
	r.SetSelected(2)

	view := r.View()

	assert.NotContains(t, view, "Deer at dawn")
	assert.Contains(t, view, "[Unsplash error: timeout]")
}

func TestResultList_Filter(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(120, 30)
	r.SetResults(sampleResults())
	r.SetSelected(2)

	r.Update(keyMsg("f"))
	assert.Equal(t, "pexels", r.Filter())
	assert.Zero(t, r.Selected())
	view := r.View()
	assert.Contains(t, view, "Results (1 of 3, pexels)")
	assert.NotContains(t, view, "Forest clip")

	r.Update(keyMsg("f"))
	assert.Equal(t, "pixabay", r.Filter())
	require.NotNil(t, r.SelectedResult())
	assert.Equal(t, "Forest clip", r.SelectedResult().Title)
	assert.Equal(t, 1, r.Selected(), "index into all results")

	r.Update(keyMsg("f"))
	r.Update(keyMsg("f"))
	assert.Empty(t, r.Filter(), "wraps back to all")
	assert.Contains(t, r.View(), "Results (3)")
}

func TestResultList_Filter_NoMatches(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(sampleResults())

	r.SetFilter("shutterstock")

	assert.Nil(t, r.SelectedResult())
	assert.Contains(t, r.View(), "Nothing from shutterstock")
}

func TestResultList_SetResultsClearsFilter(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(sampleResults())
	r.SetFilter("pexels")

	r.SetResults(sampleResults())

	assert.Empty(t, r.Filter())
	assert.Equal(t, 3, r.Count())
}

func TestResultList_Paging(t *testing.T) {
	many := make([]domain.MediaResult, 10)
	for i := range many {
		many[i] = domain.MediaResult{Title: "clip", Provider: "pexels", URL: "u"}
	}
	r := NewResultList(nil)
	r.SetDimensions(80, 10) // two rows per page
	r.SetResults(many)

	r.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 2, r.Selected())
	r.Update(keyMsg("G"))
	r.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 9, r.Selected())
	r.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 7, r.Selected())
}
