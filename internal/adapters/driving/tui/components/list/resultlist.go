// Package list renders provider results as a scrollable, filterable list.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/vmt/internal/core/domain"
)

// rowHeight is the number of lines one result takes.
const rowHeight = 3

// ResultList shows results three lines each: title and provider, credits,
// and the asset URL. Pressing f cycles a filter over the providers present.
type ResultList struct {
	styles *styles.Styles

	results []domain.MediaResult
	shown   []int // indices into results passing the filter
	filter  string
	cursor  int // index into shown
	picked  string

	width  int
	height int
}

// NewResultList creates an empty list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 10}
}

func (r *ResultList) Init() tea.Cmd {
	return nil
}

func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch key.String() {
	case "up", "k":
		r.MoveUp()
	case "down", "j":
		r.MoveDown()
	case "pgup":
		r.cursor = max(r.cursor-r.pageSize(), 0)
	case "pgdown":
		r.cursor = max(min(r.cursor+r.pageSize(), len(r.shown)-1), 0)
	case "home", "g":
		r.cursor = 0
	case "end", "G":
		r.cursor = max(len(r.shown)-1, 0)
	case "f":
		r.cycleFilter()
	}
	return r, nil
}

func (r *ResultList) pageSize() int {
	return max((r.height-4)/rowHeight, 1)
}

// View renders the visible window of results around the cursor.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	header := fmt.Sprintf("Results (%d)", len(r.results))
	if r.filter != "" {
		header = fmt.Sprintf("Results (%d of %d, %s)", len(r.shown), len(r.results), r.filter)
	}
	lines := []string{r.styles.Subtitle.Render(header), ""}
	if len(r.shown) == 0 {
		return strings.Join(append(lines, r.styles.Muted.Render("Nothing from "+r.filter)), "\n")
	}

	page := r.pageSize()
	start := max(r.cursor-page+1, 0)
	end := min(start+page, len(r.shown))
	for i := start; i < end; i++ {
		lines = append(lines, r.renderRow(&r.results[r.shown[i]], i == r.cursor))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderRow(res *domain.MediaResult, current bool) string {
	cursor, mark := "  ", " "
	if current {
		cursor = "> "
	}
	picked := r.picked != "" && res.URL == r.picked
	if picked {
		mark = "✓"
	}

	titleWidth := max(r.width-20, 10)
	title := res.Title
	if title == "" {
		title = "(Untitled)"
	}
	title = clip(title, titleWidth)

	var top string
	switch {
	case res.Error:
		top = r.styles.Error.Render(cursor + mark + " " + title)
	case current:
		top = r.styles.Selected.Render(fmt.Sprintf("%s%s %-*s  %s", cursor, mark, titleWidth, title, res.Provider))
	case picked:
		top = r.styles.Picked.Render(fmt.Sprintf("%s%s %-*s  %s", cursor, mark, titleWidth, title, res.Provider))
	default:
		top = r.styles.Normal.Render(fmt.Sprintf("%s%s %-*s  ", cursor, mark, titleWidth, title)) +
			r.styles.Muted.Render(res.Provider)
	}

	var link string
	if res.URL != "" && res.URL != "#" {
		link = r.styles.Link.Render(clip(res.URL, r.width-6))
	}
	return top + "\n" + r.styles.Muted.Render("    "+credits(res)) + "\n    " + link
}

// credits describes author, length, best rendition and license.
func credits(res *domain.MediaResult) string {
	var parts []string
	if res.Author != "" {
		parts = append(parts, "by "+res.Author)
	}
	if res.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%.0fs", res.Duration))
	}
	if w, h := bestRendition(res.VideoFiles); w > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", w, h))
	}
	if res.License != "" {
		parts = append(parts, res.License)
	}
	return strings.Join(parts, " · ")
}

func bestRendition(files []domain.VideoFile) (width, height int) {
	for _, f := range files {
		if f.Width*f.Height > width*height {
			width, height = f.Width, f.Height
		}
	}
	return width, height
}

// clip shortens s to n runes, ending with an ellipsis.
func clip(s string, n int) string {
	runes := []rune(s)
	if n < 4 || len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// providers lists the providers present, in first-seen order.
func (r *ResultList) providers() []string {
	var out []string
	seen := map[string]bool{}
	for _, res := range r.results {
		if res.Provider != "" && !seen[res.Provider] {
			seen[res.Provider] = true
			out = append(out, res.Provider)
		}
	}
	return out
}

// cycleFilter steps through each provider, then back to all.
func (r *ResultList) cycleFilter() {
	names := r.providers()
	next := ""
	for i, name := range names {
		if r.filter == "" {
			next = names[0]
			break
		}
		if name == r.filter && i+1 < len(names) {
			next = names[i+1]
			break
		}
	}
	r.SetFilter(next)
}

// SetFilter shows only results from provider. Empty shows everything.
func (r *ResultList) SetFilter(provider string) {
	r.filter = provider
	r.shown = r.shown[:0]
	for i, res := range r.results {
		if provider == "" || res.Provider == provider {
			r.shown = append(r.shown, i)
		}
	}
	r.cursor = 0
}

func (r *ResultList) Filter() string { return r.filter }

// SetResults replaces the results and clears the filter.
func (r *ResultList) SetResults(results []domain.MediaResult) {
	r.results = results
	r.SetFilter("")
}

func (r *ResultList) Results() []domain.MediaResult { return r.results }

// SetPicked marks the result with this URL as the current choice.
func (r *ResultList) SetPicked(url string) { r.picked = url }

// Selected returns the index of the highlighted result in Results.
func (r *ResultList) Selected() int {
	if len(r.shown) == 0 {
		return 0
	}
	return r.shown[r.cursor]
}

// SetSelected highlights Results()[index] if it passes the filter.
func (r *ResultList) SetSelected(index int) {
	for i, idx := range r.shown {
		if idx == index {
			r.cursor = i
			return
		}
	}
}

// SelectedResult returns the highlighted result, or nil.
func (r *ResultList) SelectedResult() *domain.MediaResult {
	if len(r.shown) == 0 {
		return nil
	}
	return &r.results[r.shown[r.cursor]]
}

func (r *ResultList) MoveUp() {
	if r.cursor > 0 {
		r.cursor--
	}
}

func (r *ResultList) MoveDown() {
	if r.cursor < len(r.shown)-1 {
		r.cursor++
	}
}

func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

func (r *ResultList) Count() int    { return len(r.results) }
func (r *ResultList) IsEmpty() bool { return len(r.results) == 0 }
