package search

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	submit           key.Binding
	nextSuggestion   key.Binding
	prevSuggestion   key.Binding
	applySuggestion  key.Binding
	acceptCorrection key.Binding
	weightUp         key.Binding
	weightDown       key.Binding
	resultUp         key.Binding
	resultDown       key.Binding
	copy             key.Binding
	quit             key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		nextSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next suggestion"),
		),
		prevSuggestion: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous suggestion"),
		),
		applySuggestion: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "apply suggestion"),
		),
		acceptCorrection: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "use correction"),
		),
		weightUp: key.NewBinding(
			key.WithKeys("ctrl+up", "alt+="),
			key.WithHelp("ctrl+↑", "alpha +"),
		),
		weightDown: key.NewBinding(
			key.WithKeys("ctrl+down", "alt+-"),
			key.WithHelp("ctrl+↓", "alpha -"),
		),
		resultUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous result"),
		),
		resultDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next result"),
		),
		copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy id"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.submit, k.nextSuggestion, k.applySuggestion, k.acceptCorrection, k.weightUp, k.weightDown, k.copy, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.quit},
		{k.nextSuggestion, k.prevSuggestion, k.applySuggestion},
		{k.acceptCorrection, k.weightUp, k.weightDown},
		{k.resultUp, k.resultDown, k.copy},
	}
}
