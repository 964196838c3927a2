package controller

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/sift/internal/query"
)

type debounceMsg struct {
	seq uint64
}

type suggestionsMsg struct {
	seq         uint64
	query       string
	suggestions []string
	err         error
}

// QueryChanged records an edit. Short queries clear suggestions at once;
// longer ones schedule a fetch once the query has been quiet for the
// debounce period.
func (c *Controller) QueryChanged(q string) tea.Cmd {
	if q == c.query {
		return nil
	}
	c.query = q
	c.invalidateSuggestions()

	if query.Length(q) <= c.opts.MinQueryLength {
		c.suggestions = nil
		return nil
	}

	seq := c.editSeq
	return c.tick(c.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// SelectSuggestion merges s into the query and closes the suggestion list.
func (c *Controller) SelectSuggestion(s string) tea.Cmd {
	c.query = query.ApplySuggestion(c.query, s)
	c.invalidateSuggestions()
	c.suggestions = nil
	return nil
}

func (c *Controller) invalidateSuggestions() {
	c.editSeq++
	if c.cancelSuggest != nil {
		c.cancelSuggest()
		c.cancelSuggest = nil
	}
}

func (c *Controller) handleDebounce(msg debounceMsg) tea.Cmd {
	if msg.seq != c.editSeq {
		return nil
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelSuggest = cancel

	be, seq, q := c.backend, c.editSeq, c.query
	c.logger.Debug("fetching suggestions", "query", q)
	return func() tea.Msg {
		defer cancel()
		suggestions, err := be.Suggestions(ctx, q)
		return suggestionsMsg{seq: seq, query: q, suggestions: suggestions, err: err}
	}
}

func (c *Controller) handleSuggestions(msg suggestionsMsg) tea.Cmd {
	if msg.seq != c.editSeq || msg.query != c.query {
		c.logger.Debug("discarding stale suggestions", "query", msg.query)
		return nil
	}
	c.cancelSuggest = nil

	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			c.logger.Error("suggestions failed", "query", msg.query, "err", msg.err)
		}
		c.suggestions = nil
		return nil
	}
	c.suggestions = append([]string(nil), msg.suggestions...)
	return nil
}
