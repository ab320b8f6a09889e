// Package keymap holds the TUI key bindings and renders their hints.
package keymap

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap groups every binding the views react to. Enter is shared by
// Select, Search and Pick; which one applies depends on the view.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Analyze submits the transcript typed in the analyse view.
	Analyze key.Binding

	// Queries view.
	Search    key.Binding
	AddQuery  key.Binding
	Deselect  key.Binding
	Export    key.Binding
	MediaType key.Binding

	// Results view. Pick chooses the highlighted result for the current
	// query; Filter cycles through the providers that answered.
	Pick    key.Binding
	Filter  key.Binding
	Refresh key.Binding
}

func bind(hint, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(hint, desc))
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: bind("q", "quit", "q", "ctrl+c"),
		Help: bind("?", "help", "?"),
		Back: bind("esc", "back", "esc"),

		Up:     bind("↑/k", "up", "up", "k"),
		Down:   bind("↓/j", "down", "down", "j"),
		Select: bind("enter", "select", "enter"),

		Analyze: bind("ctrl+s", "analyse", "ctrl+s"),

		Search:    bind("enter", "search", "enter"),
		AddQuery:  bind("/", "add query", "/"),
		Deselect:  bind("x", "clear pick", "x"),
		Export:    bind("e", "export", "e"),
		MediaType: bind("t", "photo/video", "t"),

		Pick:    bind("enter", "pick", "enter"),
		Filter:  bind("f", "filter", "f"),
		Refresh: bind("r", "search again", "r"),
	}
}

// ShortHelp is shown by views without their own hints.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

func (k *KeyMap) QueriesHelp() []key.Binding {
	return []key.Binding{k.Search, k.AddQuery, k.Deselect, k.MediaType, k.Export, k.Back}
}

func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Pick, k.Filter, k.Refresh, k.AddQuery, k.Back}
}

// FullHelp groups the bindings for the help screen.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Analyze, k.Search, k.AddQuery, k.Deselect},
		{k.Pick, k.Filter, k.Refresh, k.MediaType, k.Export, k.Back},
		{k.Help, k.Quit},
	}
}

// Matches reports whether keyStr triggers binding.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}

// Hints renders bindings as "key: desc | key: desc".
func Hints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, " | ")
}
