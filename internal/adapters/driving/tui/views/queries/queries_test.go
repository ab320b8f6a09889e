package queries

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/vmt/internal/core/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func newSession() *domain.Session {
	return &domain.Session{
		Queries:   []string{"deer forest", "deer forest walking", "misty lake calm"},
		Selected:  map[string]domain.MediaResult{},
		MediaType: domain.MediaPhoto,
	}
}

func newView(t *testing.T) (*View, *domain.Session) {
	t.Helper()
	session := newSession()
	view := NewView(nil, nil)
	view.SetDimensions(120, 40)
	view.SetSession(session, &domain.Analysis{Queries: []domain.Query{
		{Text: "deer forest walking", Topic: "deer forest", Action: "walking", Score: 5.5},
		{Text: "misty lake calm", Topic: "misty lake", Emotion: domain.EmotionCalm, Score: 4.25},
	}})
	return view, session
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.Nil(t, view.Session())
	assert.Empty(t, view.SelectedQuery())
	assert.Nil(t, view.Init())
	assert.Equal(t, "Initialising...", view.View())
}

func TestView_View_NoSession(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 24)

	assert.Contains(t, view.View(), "Analyse a transcript first")
}

func TestView_View_ListsQueries(t *testing.T) {
	view, session := newView(t)
	session.Select("misty lake calm", domain.MediaResult{Title: "Lake at dawn", Provider: "pexels"})

	out := view.View()

	assert.Contains(t, out, "deer forest walking")
	assert.Contains(t, out, "deer forest · walking")
	assert.Contains(t, out, "misty lake · calm")
	assert.Contains(t, out, "4.25")
	assert.Contains(t, out, "Lake at dawn (pexels)")
	assert.Contains(t, out, "3 queries, 1 picked")
}

func TestView_Enter_RequestsSearch(t *testing.T) {
	view, _ := newView(t)
	view.Update(keyDown)

	_, cmd := view.Update(keyEnter)

	require.NotNil(t, cmd)
	assert.Equal(t, messages.SearchRequested{Query: "deer forest walking"}, cmd())
}

func TestView_Navigation_Bounds(t *testing.T) {
	view, _ := newView(t)

	view.Update(runes("k"))
	assert.Equal(t, 0, view.Selected())

	for i := 0; i < 5; i++ {
		view.Update(runes("j"))
	}
	assert.Equal(t, 2, view.Selected())
}

func TestView_AddQuery(t *testing.T) {
	view, session := newView(t)

	view.Update(runes("/"))
	require.True(t, view.Adding())
	view.Update(runes("  golden   hour  "))
	view.Update(keyEnter)

	assert.False(t, view.Adding())
	assert.Equal(t, "golden hour", session.Queries[3])
	assert.Equal(t, 3, view.Selected())
	assert.Contains(t, view.View(), "4 queries")
}

func TestView_AddQuery_CompletesTopics(t *testing.T) {
	session := newSession()
	view := NewView(nil, nil)
	view.SetDimensions(120, 40)
	view.SetSession(session, &domain.Analysis{
		Keywords: []domain.Keyword{{Words: []string{"golden", "hour"}}},
		Entities: []domain.Term{{Text: "Yosemite", Category: domain.TermEntity}},
	})

	view.Update(runes("/"))
	view.Update(runes("yo"))
	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	view.Update(keyEnter)

	assert.Contains(t, session.Queries, "yosemite")
}

func TestSuggestions(t *testing.T) {
	got := suggestions(&domain.Analysis{
		Keywords: []domain.Keyword{{Words: []string{"misty", "lake"}}, {Words: []string{"deer"}}},
		Entities: []domain.Term{{Text: "Deer"}, {Text: "Lake Tahoe"}},
	})

	assert.Equal(t, []string{"misty lake", "deer", "lake tahoe"}, got)
	assert.Nil(t, suggestions(nil))
}

func TestView_AddQuery_ExistingSelectsIt(t *testing.T) {
	view, session := newView(t)

	view.Update(runes("/"))
	view.Update(runes("Misty Lake Calm"))
	view.Update(keyEnter)

	assert.Len(t, session.Queries, 3)
	assert.Equal(t, 2, view.Selected())
}

func TestView_AddQuery_EscCancels(t *testing.T) {
	view, session := newView(t)

	view.Update(runes("/"))
	view.Update(runes("sky"))
	_, cmd := view.Update(keyEsc)

	assert.Nil(t, cmd, "esc while typing does not leave the view")
	assert.False(t, view.Adding())
	assert.Len(t, session.Queries, 3)
}

func TestView_Deselect(t *testing.T) {
	view, session := newView(t)
	session.Select("deer forest", domain.MediaResult{Title: "Deer"})

	view.Update(runes("x"))

	assert.Empty(t, session.Selected)
}

func TestView_ToggleMediaType(t *testing.T) {
	view, session := newView(t)

	view.Update(runes("t"))
	assert.Equal(t, domain.MediaVideo, session.MediaType)
	assert.Contains(t, view.View(), "Media type: video")

	view.Update(runes("t"))
	assert.Equal(t, domain.MediaPhoto, session.MediaType)
}

func TestView_Export_And_Back(t *testing.T) {
	view, _ := newView(t)

	_, cmd := view.Update(runes("e"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewExport}, cmd())

	_, cmd = view.Update(keyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_EmptySession(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 24)
	view.SetSession(&domain.Session{MediaType: domain.MediaPhoto}, nil)

	_, cmd := view.Update(keyEnter)

	assert.Nil(t, cmd)
	assert.Contains(t, view.View(), "No queries generated")
}

func TestTags(t *testing.T) {
	assert.Equal(t, "forest", tags(domain.Query{Topic: "forest"}))
	assert.Equal(t, "forest · running · fear",
		tags(domain.Query{Topic: "forest", Action: "running", Emotion: domain.EmotionFear}))
}

func TestView_Highlight(t *testing.T) {
	view, _ := newView(t)

	view.Highlight("misty lake calm")
	assert.Equal(t, 2, view.Selected())

	view.Highlight("not listed")
	assert.Equal(t, 2, view.Selected())
}
