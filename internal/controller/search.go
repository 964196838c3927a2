package controller

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/sift/internal/backend"
)

type searchMsg struct {
	seq   uint64
	query string
	resp  backend.SearchResponse
	err   error
}

type correctionMsg struct {
	seq       uint64
	query     string
	corrected string
	err       error
}

// Submit starts a search cycle for the current query. It is a no-op while a
// cycle is in flight or when the query is blank.
func (c *Controller) Submit() tea.Cmd {
	if c.loading {
		c.logger.Debug("submit ignored while loading")
		return nil
	}
	if strings.TrimSpace(c.query) == "" {
		return nil
	}

	c.loading = true
	c.err = nil
	c.searchSeq++

	req := backend.SearchRequest{Query: c.query}
	if c.opts.Hybrid {
		alpha := c.weight
		req.Alpha = &alpha
	}

	be, ctx, seq := c.backend, c.ctx, c.searchSeq
	c.logger.Debug("searching", "query", req.Query, "hybrid", c.opts.Hybrid, "alpha", c.weight)
	return func() tea.Msg {
		resp, err := be.Search(ctx, req)
		return searchMsg{seq: seq, query: req.Query, resp: resp, err: err}
	}
}

// AcceptCorrection replaces the query with the offered correction.
func (c *Controller) AcceptCorrection() tea.Cmd {
	if c.correction == "" {
		return nil
	}
	c.query = c.correction
	c.invalidateSuggestions()
	c.suggestions = nil

	if c.opts.ResubmitOnAccept {
		return c.Submit()
	}
	return nil
}

func (c *Controller) handleSearch(msg searchMsg) tea.Cmd {
	if msg.seq != c.searchSeq {
		c.logger.Debug("discarding stale search response", "query", msg.query)
		return nil
	}

	if msg.err != nil {
		c.logger.Error("search failed", "query", msg.query, "err", msg.err)
		c.results = nil
		c.err = msg.err
		c.loading = false
		return nil
	}

	results := msg.resp.Results()
	if len(results) > 0 {
		c.results = results
		c.correction = ""
		c.loading = false
		return nil
	}

	c.results = nil
	c.correction = ""

	be, ctx, seq, q := c.backend, c.ctx, msg.seq, msg.query
	c.logger.Debug("no results, fetching correction", "query", q)
	return func() tea.Msg {
		corrected, err := be.Correction(ctx, q)
		return correctionMsg{seq: seq, query: q, corrected: corrected, err: err}
	}
}

func (c *Controller) handleCorrection(msg correctionMsg) tea.Cmd {
	if msg.seq != c.searchSeq {
		c.logger.Debug("discarding stale correction", "query", msg.query)
		return nil
	}
	c.loading = false

	if msg.err != nil {
		c.logger.Error("correction failed", "query", msg.query, "err", msg.err)
		c.correction = ""
		return nil
	}
	if len(c.results) == 0 {
		c.correction = strings.TrimSpace(msg.corrected)
	}
	return nil
}
