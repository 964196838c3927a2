// Package search is the interactive search screen. It renders the
// controller's state and translates key presses into controller handlers.
package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Paintersrp/sift/internal/config"
	"github.com/Paintersrp/sift/internal/controller"
	"github.com/Paintersrp/sift/internal/render"
	"github.com/Paintersrp/sift/internal/state"
)

const (
	defaultWidth    = 80
	maxVisible      = 10
	maxSuggestions  = 8
	minPreviewLines = 4
)

type Options struct {
	Renderer   *render.Renderer
	Logger     *log.Logger
	Watcher    *state.ConfigWatcher
	BackendURL string
	// Copy defaults to the system clipboard.
	Copy func(string) error
}

type Model struct {
	ctrl       *controller.Controller
	renderer   *render.Renderer
	logger     *log.Logger
	watcher    *state.ConfigWatcher
	backendURL string
	copy       func(string) error

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width         int
	height        int
	suggestionIdx int
	resultIdx     int
	searched      bool
	status        string
	statusErr     bool
	previews      map[string]string
}

func NewModel(ctrl *controller.Controller, opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Search documents"
	input.Prompt = "❯ "
	input.CharLimit = 256
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = statusStyle

	m := &Model{
		ctrl:       ctrl,
		renderer:   opts.Renderer,
		logger:     opts.Logger,
		watcher:    opts.Watcher,
		backendURL: opts.BackendURL,
		copy:       opts.Copy,
		input:      input,
		spinner:    spin,
		help:       help.New(),
		keys:       newKeyMap(),
		previews:   make(map[string]string),
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	if m.copy == nil {
		m.copy = clipboard.WriteAll
	}
	m.resize(defaultWidth, 0)
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.watcher.Next())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if handled, cmd := m.handleKeys(msg); handled {
			return m, cmd
		}
		return m, m.updateInput(msg)
	case spinner.TickMsg:
		if !m.ctrl.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case state.ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, m.watcher.Next()
	case state.ConfigWatcherErrMsg:
		m.logger.Warn("config reload failed", "err", msg.Err)
		m.setStatus(fmt.Sprintf("Config reload failed: %v", msg.Err), true)
		return m, m.watcher.Next()
	}

	before := m.ctrl.State()
	cmd := m.ctrl.Update(msg)
	m.reconcile(before)

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, tea.Batch(cmd, inputCmd)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.ctrl.Close()
		return true, tea.Quit
	case key.Matches(msg, m.keys.submit):
		cmd := m.ctrl.Submit()
		if cmd == nil {
			return true, nil
		}
		m.searched = true
		m.resultIdx = 0
		m.setStatus("", false)
		return true, tea.Batch(cmd, m.spinner.Tick)
	case key.Matches(msg, m.keys.nextSuggestion):
		m.moveSuggestion(1)
		return true, nil
	case key.Matches(msg, m.keys.prevSuggestion):
		m.moveSuggestion(-1)
		return true, nil
	case key.Matches(msg, m.keys.applySuggestion):
		suggestions := m.ctrl.State().Suggestions
		if len(suggestions) == 0 {
			return true, nil
		}
		cmd := m.ctrl.SelectSuggestion(suggestions[m.suggestionIdx])
		m.suggestionIdx = 0
		m.syncInput()
		return true, cmd
	case key.Matches(msg, m.keys.acceptCorrection):
		cmd := m.ctrl.AcceptCorrection()
		m.syncInput()
		if cmd == nil {
			return true, nil
		}
		m.searched = true
		m.resultIdx = 0
		return true, tea.Batch(cmd, m.spinner.Tick)
	case key.Matches(msg, m.keys.weightUp):
		return true, m.ctrl.NudgeBlendWeight(1)
	case key.Matches(msg, m.keys.weightDown):
		return true, m.ctrl.NudgeBlendWeight(-1)
	case key.Matches(msg, m.keys.resultUp):
		m.moveResult(-1)
		return true, nil
	case key.Matches(msg, m.keys.resultDown):
		m.moveResult(1)
		return true, nil
	case key.Matches(msg, m.keys.copy):
		m.copySelected()
		return true, nil
	}
	return false, nil
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	previous := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == previous {
		return cmd
	}

	m.suggestionIdx = 0
	return tea.Batch(cmd, m.ctrl.QueryChanged(m.input.Value()))
}

func (m *Model) syncInput() {
	m.input.SetValue(m.ctrl.State().Query)
	m.input.CursorEnd()
}

// reconcile keeps cursors in range after the controller replaced a list.
func (m *Model) reconcile(before controller.State) {
	after := m.ctrl.State()
	if m.suggestionIdx >= len(after.Suggestions) {
		m.suggestionIdx = 0
	}
	if !sameResults(before, after) {
		m.resultIdx = 0
	}
	if m.resultIdx >= len(after.Results) {
		m.resultIdx = 0
	}
}

func sameResults(a, b controller.State) bool {
	if len(a.Results) != len(b.Results) {
		return false
	}
	for i := range a.Results {
		if a.Results[i] != b.Results[i] {
			return false
		}
	}
	return true
}

func (m *Model) moveSuggestion(delta int) {
	n := len(m.ctrl.State().Suggestions)
	if n == 0 {
		return
	}
	m.suggestionIdx = (m.suggestionIdx + delta + n) % n
}

func (m *Model) moveResult(delta int) {
	n := len(m.ctrl.State().Results)
	if n == 0 {
		return
	}
	next := m.resultIdx + delta
	if next < 0 {
		next = 0
	}
	if next >= n {
		next = n - 1
	}
	m.resultIdx = next
}

func (m *Model) copySelected() {
	results := m.ctrl.State().Results
	if len(results) == 0 {
		return
	}
	id := results[m.resultIdx].DocumentID
	if err := m.copy(id); err != nil {
		m.logger.Error("copy to clipboard failed", "err", err)
		m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %s to clipboard", id), false)
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.ctrl.SetBlendWeight(cfg.BlendWeight())
	m.ctrl.SetHybrid(cfg.HybridEnabled())
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		m.logger.SetLevel(level)
		m.ctrl.SetLogLevel(level)
	}
	m.logger.Info("config reloaded", "alpha", cfg.BlendWeight(), "hybrid", cfg.HybridEnabled())
	m.setStatus("Config reloaded", false)
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = m.contentWidth() - lipgloss.Width(m.input.Prompt) - 1
	m.help.Width = m.contentWidth()
	m.previews = make(map[string]string)
}

func (m *Model) contentWidth() int {
	w := m.width - appStyle.GetHorizontalFrameSize()
	if w <= 0 {
		return defaultWidth
	}
	return w
}

func (m *Model) previewLines() int {
	if m.height <= 0 {
		return 12
	}
	lines := m.height / 3
	if lines < minPreviewLines {
		return minPreviewLines
	}
	return lines
}

func filterEmpty(sections []string) []string {
	out := sections[:0]
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
