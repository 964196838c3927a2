// Package controller holds the query interaction state machine. Handlers
// mutate state and return the asynchronous effect to run, if any; effects
// report back through Update.
package controller

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Paintersrp/sift/internal/backend"
	"github.com/Paintersrp/sift/internal/query"
)

// Backend is the subset of the search service the controller drives.
type Backend interface {
	Suggestions(ctx context.Context, q string) ([]string, error)
	Search(ctx context.Context, req backend.SearchRequest) (backend.SearchResponse, error)
	Correction(ctx context.Context, q string) (string, error)
}

// TickFunc schedules fn after d. tea.Tick satisfies it.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultMinQueryLength = 2
)

type Options struct {
	Debounce time.Duration
	// Queries at or below this many runes never fetch suggestions.
	MinQueryLength   int
	Hybrid           bool
	BlendWeight      float64
	ResubmitOnAccept bool
	Logger           *log.Logger
	Tick             TickFunc
}

// DefaultOptions matches the stock configuration.
func DefaultOptions() Options {
	return Options{
		Debounce:       DefaultDebounce,
		MinQueryLength: DefaultMinQueryLength,
		Hybrid:         true,
		BlendWeight:    query.DefaultBlendWeight,
	}
}

// State is a snapshot for renderers. Slices are copies.
type State struct {
	Query       string
	BlendWeight float64
	Hybrid      bool
	Loading     bool
	Suggestions []string
	Results     []backend.Result
	Correction  string
	// Err is the most recent search failure, cleared by the next submit.
	Err error
}

type Controller struct {
	backend Backend
	opts    Options
	logger  *log.Logger
	tick    TickFunc

	ctx  context.Context
	stop context.CancelFunc

	query       string
	weight      float64
	loading     bool
	suggestions []string
	results     []backend.Result
	correction  string
	err         error

	// editSeq advances on every query mutation and invalidates pending
	// debounce ticks and suggestion responses.
	editSeq       uint64
	cancelSuggest context.CancelFunc

	searchSeq uint64
}

func New(be Backend, opts Options) *Controller {
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.MinQueryLength < 0 {
		opts.MinQueryLength = 0
	}

	c := &Controller{
		backend: be,
		opts:    opts,
		logger:  opts.Logger,
		tick:    opts.Tick,
		weight:  query.ClampWeight(opts.BlendWeight),
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.tick == nil {
		c.tick = tea.Tick
	}
	c.ctx, c.stop = context.WithCancel(context.Background())
	return c
}

// Close cancels every outstanding request. The controller must not be used
// afterwards.
func (c *Controller) Close() {
	c.stop()
}

func (c *Controller) State() State {
	return State{
		Query:       c.query,
		BlendWeight: c.weight,
		Hybrid:      c.opts.Hybrid,
		Loading:     c.loading,
		Suggestions: append([]string(nil), c.suggestions...),
		Results:     append([]backend.Result(nil), c.results...),
		Correction:  c.correction,
		Err:         c.err,
	}
}

// SetBlendWeight clamps w into range and otherwise keeps it as given. It
// never triggers a search.
func (c *Controller) SetBlendWeight(w float64) tea.Cmd {
	c.weight = query.ClampWeight(w)
	return nil
}

// SetHybrid toggles whether searches carry the blend weight.
func (c *Controller) SetHybrid(enabled bool) tea.Cmd {
	c.opts.Hybrid = enabled
	return nil
}

// SetLogLevel changes the controller's log level and, when the backend
// supports it, the backend's.
func (c *Controller) SetLogLevel(level log.Level) {
	c.logger.SetLevel(level)
	if lv, ok := c.backend.(interface{ SetLogLevel(log.Level) }); ok {
		lv.SetLogLevel(level)
	}
}

// NudgeBlendWeight moves the weight by steps increments on the step grid.
func (c *Controller) NudgeBlendWeight(steps int) tea.Cmd {
	c.weight = query.StepWeight(c.weight, steps)
	return nil
}

// Update applies the result of an effect. Unknown messages are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounceMsg:
		return c.handleDebounce(msg)
	case suggestionsMsg:
		return c.handleSuggestions(msg)
	case searchMsg:
		return c.handleSearch(msg)
	case correctionMsg:
		return c.handleCorrection(msg)
	}
	return nil
}
