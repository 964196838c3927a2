package search

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/sift/internal/backend"
	"github.com/Paintersrp/sift/internal/backend/backendtest"
	"github.com/Paintersrp/sift/internal/config"
	"github.com/Paintersrp/sift/internal/controller"
	"github.com/Paintersrp/sift/internal/render"
	"github.com/Paintersrp/sift/internal/state"
)

type stubBackend struct {
	mu          sync.Mutex
	searchErr   error
	searchCalls []backend.SearchRequest
}

func (s *stubBackend) Suggestions(_ context.Context, q string) ([]string, error) {
	if q == "cat" {
		return []string{"category", "catalog"}, nil
	}
	return []string{}, nil
}

func (s *stubBackend) Search(_ context.Context, req backend.SearchRequest) (backend.SearchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCalls = append(s.searchCalls, req)
	if s.searchErr != nil {
		return backend.SearchResponse{}, s.searchErr
	}
	switch req.Query {
	case "cat food", "category", "xyz":
		return backend.SearchResponse{
			Docs:      []string{"d1", "d2"},
			Ranks:     []float64{0.9, 0.7},
			Summaries: []string{"**first** summary", "second summary"},
		}, nil
	}
	return backend.SearchResponse{Docs: []string{}}, nil
}

func (s *stubBackend) Correction(_ context.Context, q string) (string, error) {
	if q == "xyzzy" {
		return "xyz", nil
	}
	return "", nil
}

func immediateTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Time{}) }
}

func newTestModel(t *testing.T, be controller.Backend, copied *[]string) *Model {
	t.Helper()

	opts := controller.DefaultOptions()
	opts.Tick = immediateTick
	ctrl := controller.New(be, opts)
	return newModelFor(t, ctrl, nil, copied)
}

func newModelFor(t *testing.T, ctrl *controller.Controller, logger *log.Logger, copied *[]string) *Model {
	t.Helper()
	t.Cleanup(ctrl.Close)

	renderer, err := render.New("dark", 60, render.WithProfile(termenv.Ascii))
	require.NoError(t, err)

	model := NewModel(ctrl, Options{
		Renderer:   renderer,
		Logger:     logger,
		BackendURL: "http://127.0.0.1:5000",
		Copy: func(s string) error {
			if copied != nil {
				*copied = append(*copied, s)
			}
			return nil
		},
	})
	model.input.Cursor.SetMode(cursor.CursorStatic)
	return model
}

func adoptTestModel(model tea.Model) *Model {
	return model.(*Model)
}

// drive feeds cmd's messages back into the model until no work remains.
// Spinner ticks are dropped so the loop terminates.
func drive(t *testing.T, m *Model, cmd tea.Cmd) *Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.LessOrEqual(t, steps, 100, "command queue did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			updated, more := m.Update(msg)
			m = adoptTestModel(updated)
			queue = append(queue, more)
		}
	}
	return m
}

func typeText(t *testing.T, m *Model, text string) *Model {
	t.Helper()
	for _, r := range text {
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = drive(t, adoptTestModel(updated), cmd)
	}
	return m
}

func press(t *testing.T, m *Model, msg tea.KeyMsg) *Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	return drive(t, adoptTestModel(updated), cmd)
}

func TestTypingFetchesSuggestions(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, nil)

	m = typeText(t, m, "cat")

	st := m.ctrl.State()
	assert.Equal(t, "cat", st.Query)
	assert.Len(t, st.Suggestions, 2)
	assert.Contains(t, m.View(), "catalog")
}

func TestApplySuggestionUpdatesInput(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, nil)
	m = typeText(t, m, "cat")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.suggestionIdx, "tab highlights the second suggestion")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 0, m.suggestionIdx, "shift+tab moves back")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Equal(t, "category", m.input.Value())
	assert.Empty(t, m.ctrl.State().Suggestions)
}

func TestSubmitShowsResults(t *testing.T) {
	be := &stubBackend{}
	m := newTestModel(t, be, nil)
	m = typeText(t, m, "cat food")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = adoptTestModel(updated)
	require.True(t, m.ctrl.State().Loading)
	assert.Contains(t, m.View(), "Searching")

	updated, second := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = adoptTestModel(updated)
	assert.Nil(t, second, "enter is ignored while loading")

	m = drive(t, m, cmd)
	assert.Len(t, be.searchCalls, 1)

	view := m.View()
	for _, want := range []string{"2 results", "d1", "0.9000", "first summary"} {
		assert.Contains(t, view, want)
	}
}

func TestResultCursorAndCopy(t *testing.T) {
	var copied []string
	m := newTestModel(t, &stubBackend{}, &copied)
	m = typeText(t, m, "cat food")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.resultIdx, "cursor stops at the last result")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, []string{"d2"}, copied)
	assert.Contains(t, m.status, "Copied d2")
}

func TestCorrectionOfferedAndAccepted(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, nil)
	m = typeText(t, m, "xyzzy")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, m.View(), `Did you mean "xyz"?`)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, "xyz", m.input.Value())
}

func TestSearchFailureShowsError(t *testing.T) {
	be := &stubBackend{searchErr: errors.New("connection refused")}
	m := newTestModel(t, be, nil)
	m = typeText(t, m, "cat food")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.ctrl.State().Loading)
	assert.Contains(t, m.View(), "connection refused")
}

func TestBlendWeightKeys(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlUp})
	assert.Equal(t, 0.055, m.ctrl.State().BlendWeight)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlDown})
	assert.Equal(t, 0.045, m.ctrl.State().BlendWeight)
	assert.Empty(t, m.input.Value(), "weight keys do not type into the input")
	assert.Contains(t, m.View(), "alpha 0.045")
}

func TestConfigReloadAppliesSettings(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, nil)
	m.logger = log.New(&bytes.Buffer{})

	cfg := config.Default()
	hybrid := false
	alpha := 0.2
	cfg.Search.Hybrid = &hybrid
	cfg.Search.Alpha = &alpha

	updated, cmd := m.Update(state.ConfigReloadedMsg{Config: cfg})
	m = adoptTestModel(updated)
	assert.Nil(t, cmd, "no follow-up without a watcher")

	st := m.ctrl.State()
	assert.False(t, st.Hybrid)
	assert.Equal(t, 0.2, st.BlendWeight)
	assert.Contains(t, m.View(), "hybrid off")
}

func TestConfigReloadRaisesComponentLogLevels(t *testing.T) {
	srv := backendtest.New(t, backendtest.Fixture{
		Results: map[string]backend.SearchResponse{
			"cat food": {Docs: []string{"d1"}, Ranks: []float64{0.9}},
		},
	})

	cfg := config.Default()
	cfg.Backend.URL = srv.URL

	var buf bytes.Buffer
	root := log.New(&buf)
	opts := state.ControllerOptions(cfg, root)
	opts.Tick = immediateTick
	ctrl := controller.New(state.NewBackend(cfg, root), opts)
	m := newModelFor(t, ctrl, root, nil)

	m = typeText(t, m, "cat food")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.ctrl.State().Results, 1)
	assert.NotContains(t, buf.String(), "searching")
	assert.NotContains(t, buf.String(), "backend request")

	reloaded := config.Default()
	reloaded.Log.Level = "debug"
	updated, _ := m.Update(state.ConfigReloadedMsg{Config: reloaded})
	m = adoptTestModel(updated)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	out := buf.String()
	assert.Contains(t, out, "searching")
	assert.Contains(t, out, "backend request")
}

func TestQuitClosesController(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
