// Package render turns search results into terminal output. Summaries are
// treated as markdown and styled with glamour.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/sift/internal/backend"
)

const DefaultWidth = 100

type Renderer struct {
	term  *glamour.TermRenderer
	width int
}

type Option func(*settings)

type settings struct {
	profile    termenv.Profile
	profileSet bool
}

// WithProfile forces a color profile. termenv.Ascii strips all styling.
func WithProfile(p termenv.Profile) Option {
	return func(s *settings) {
		s.profile = p
		s.profileSet = true
	}
}

// New builds a renderer for theme ("auto", "dark" or "light") wrapping at
// width columns.
func New(theme string, width int, opts ...Option) (*Renderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	s := settings{profile: termenv.ANSI256}
	for _, opt := range opts {
		opt(&s)
	}

	termOpts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch strings.ToLower(theme) {
	case "dark", "light":
		termOpts = append(termOpts, glamour.WithStandardStyle(strings.ToLower(theme)))
	default:
		termOpts = append(termOpts, glamour.WithAutoStyle())
		if !s.profileSet {
			s.profile = termenv.EnvColorProfile()
		}
	}
	termOpts = append(termOpts, glamour.WithColorProfile(s.profile))

	term, err := glamour.NewTermRenderer(termOpts...)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &Renderer{term: term, width: width}, nil
}

// Summary renders md, falling back to its plain text when glamour fails.
func (r *Renderer) Summary(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := r.term.Render(md)
	if err != nil {
		return Plain(md)
	}
	return strings.Trim(out, "\n")
}

// Result renders one ranked document as a heading, its score and summary.
func (r *Renderer) Result(rank int, res backend.Result) string {
	return r.Summary(resultMarkdown(rank, res))
}

// Results renders every result in order, separated by blank lines.
func (r *Renderer) Results(results []backend.Result) string {
	parts := make([]string, 0, len(results))
	for i, res := range results {
		parts = append(parts, r.Result(i+1, res))
	}
	return strings.Join(parts, "\n\n")
}

func resultMarkdown(rank int, res backend.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %d. %s\n\n", rank, res.DocumentID)
	fmt.Fprintf(&b, "_score %.4f_\n\n", res.Score)
	if summary := strings.TrimSpace(res.Summary); summary != "" {
		b.WriteString(summary)
		b.WriteString("\n")
	}
	return b.String()
}
