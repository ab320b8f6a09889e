package domain

import (
	"sort"
	"time"
)

// Session is a working set: the transcript, its queries and the
// asset chosen for each query.
type Session struct {
	ID        string                 `json:"id"`
	Text      string                 `json:"text"`
	Queries   []string               `json:"queries"`
	Selected  map[string]MediaResult `json:"selected"`
	MediaType MediaType              `json:"media_type"`
	Analyzer  string                 `json:"analyzer,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Select records item as the choice for query.
func (s *Session) Select(query string, item MediaResult) {
	if s.Selected == nil {
		s.Selected = make(map[string]MediaResult)
	}
	item.Query = query
	s.Selected[query] = item
	s.UpdatedAt = time.Now()
}

// Deselect removes the selection for query.
func (s *Session) Deselect(query string) {
	delete(s.Selected, query)
	s.UpdatedAt = time.Now()
}

// ExportRows returns the selected items in query order.
// Selections for queries no longer in the session follow, sorted by query.
func (s *Session) ExportRows() []MediaResult {
	rows := make([]MediaResult, 0, len(s.Selected))
	seen := make(map[string]bool, len(s.Queries))
	for _, q := range s.Queries {
		if item, ok := s.Selected[q]; ok && !seen[q] {
			item.Query = q
			rows = append(rows, item)
		}
		seen[q] = true
	}
	var rest []string
	for q := range s.Selected {
		if !seen[q] {
			rest = append(rest, q)
		}
	}
	sort.Strings(rest)
	for _, q := range rest {
		item := s.Selected[q]
		item.Query = q
		rows = append(rows, item)
	}
	return rows
}
