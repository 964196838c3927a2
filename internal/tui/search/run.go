package search

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/sift/internal/render"
	"github.com/Paintersrp/sift/internal/state"
)

// Run opens the search screen until the user quits.
func Run(st *state.State) error {
	renderer, err := render.New(st.Config.UI.Theme, render.DefaultWidth)
	if err != nil {
		return err
	}

	watcher, err := st.WatchConfig()
	if err != nil {
		st.Logger.Warn("config changes will not be picked up", "err", err)
	}

	ctrl := st.NewController()
	defer ctrl.Close()

	model := NewModel(ctrl, Options{
		Renderer:   renderer,
		Logger:     st.Logger,
		Watcher:    watcher,
		BackendURL: st.Backend.BaseURL(),
	})

	st.Logger.Info("search screen started", "backend", st.Backend.BaseURL())
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running search screen: %w", err)
	}
	return nil
}
