package search

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/Paintersrp/sift/internal/controller"
	"github.com/Paintersrp/sift/internal/render"
)

func (m *Model) View() string {
	st := m.ctrl.State()

	sections := []string{
		m.renderHeader(st),
		m.input.View(),
		m.renderSuggestions(st),
		m.renderStatus(st),
		m.renderCorrection(st),
		m.renderResults(st),
		m.renderPreview(st),
		m.help.View(m.keys),
	}
	return appStyle.Render(strings.Join(filterEmpty(sections), "\n\n"))
}

func (m *Model) renderHeader(st controller.State) string {
	title := titleStyle.Render("sift")

	meta := []string{}
	if m.backendURL != "" {
		meta = append(meta, m.backendURL)
	}
	if st.Hybrid {
		meta = append(meta, fmt.Sprintf("alpha %.3f", st.BlendWeight))
	} else {
		meta = append(meta, "hybrid off")
	}
	return title + " " + metaStyle.Render(strings.Join(meta, " · "))
}

func (m *Model) renderSuggestions(st controller.State) string {
	if len(st.Suggestions) == 0 {
		return ""
	}

	limit := len(st.Suggestions)
	if limit > maxSuggestions {
		limit = maxSuggestions
	}
	start := 0
	if m.suggestionIdx >= limit {
		start = m.suggestionIdx - limit + 1
	}

	lines := make([]string, 0, limit)
	for i := start; i < start+limit && i < len(st.Suggestions); i++ {
		text := m.clip(st.Suggestions[i])
		if i == m.suggestionIdx {
			lines = append(lines, activeSuggestionStyle.Render(text))
			continue
		}
		lines = append(lines, suggestionStyle.Render(text))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus(st controller.State) string {
	switch {
	case st.Loading:
		return m.spinner.View() + " " + statusStyle.Render("Searching…")
	case m.status != "":
		if m.statusErr {
			return errorStyle.Render(m.status)
		}
		return statusStyle.Render(m.status)
	case st.Err != nil:
		return errorStyle.Render(m.clip(fmt.Sprintf("Search failed: %v", st.Err)))
	case m.searched && len(st.Results) == 0 && st.Correction == "":
		return metaStyle.Render("No results")
	}
	return ""
}

func (m *Model) renderCorrection(st controller.State) string {
	if st.Correction == "" {
		return ""
	}
	return correctionStyle.Render(m.clip(fmt.Sprintf("Did you mean %q? (ctrl+o)", st.Correction)))
}

func (m *Model) renderResults(st controller.State) string {
	if len(st.Results) == 0 {
		return ""
	}

	start := 0
	if m.resultIdx >= maxVisible {
		start = m.resultIdx - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(st.Results) {
		end = len(st.Results)
	}

	width := m.contentWidth()
	lines := []string{metaStyle.Render(fmt.Sprintf("%d results", len(st.Results)))}
	for i := start; i < end; i++ {
		res := st.Results[i]
		head := fmt.Sprintf("%2d. %s ", i+1, res.DocumentID)
		score := fmt.Sprintf("%.4f", res.Score)
		snippetWidth := width - len([]rune(head)) - len(score) - 4
		line := head + scoreStyle.Render(score)
		if snippet := render.Snippet(res.Summary, snippetWidth); snippet != "" && snippetWidth > 0 {
			line += "  " + snippet
		}
		line = truncate.StringWithTail(line, uint(width), "…")

		if i == m.resultIdx {
			lines = append(lines, selectedResultStyle.Render(line))
			continue
		}
		lines = append(lines, resultStyle.Render(line))
	}
	if end < len(st.Results) {
		lines = append(lines, metaStyle.Render(fmt.Sprintf("  … %d more", len(st.Results)-end)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderPreview(st controller.State) string {
	if m.renderer == nil || len(st.Results) == 0 {
		return ""
	}
	res := st.Results[m.resultIdx]

	cacheKey := res.DocumentID + "\x00" + res.Summary
	preview, ok := m.previews[cacheKey]
	if !ok {
		preview = m.renderer.Summary(res.Summary)
		m.previews[cacheKey] = preview
	}
	if preview == "" {
		return ""
	}

	lines := strings.Split(preview, "\n")
	for i := range lines {
		lines[i] = m.clip(lines[i])
	}
	if limit := m.previewLines(); len(lines) > limit {
		lines = append(lines[:limit], metaStyle.Render("…"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) clip(s string) string {
	return truncate.StringWithTail(s, uint(m.contentWidth()), "…")
}
