// Package picker lets the user choose one search result in a fuzzy finder
// with the rendered summary as preview.
package picker

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/sift/internal/backend"
	"github.com/Paintersrp/sift/internal/render"
)

// ErrNoSelection is returned when the user aborts the finder.
var ErrNoSelection = errors.New("no result selected")

const labelSnippetWidth = 60

// FindFunc matches fuzzyfinder.Find.
type FindFunc func(slice interface{}, itemFunc func(i int) string, opts ...fuzzyfinder.Option) (int, error)

type Picker struct {
	Header   string
	results  []backend.Result
	renderer *render.Renderer
	find     FindFunc
}

func New(results []backend.Result, renderer *render.Renderer, header string) *Picker {
	return &Picker{
		Header:   header,
		results:  results,
		renderer: renderer,
		find:     fuzzyfinder.Find,
	}
}

// Pick opens the finder, prefilled with query when it is not empty.
func (p *Picker) Pick(query string) (backend.Result, error) {
	if len(p.results) == 0 {
		return backend.Result{}, ErrNoSelection
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(p.preview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if p.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(p.Header))
	}

	idx, err := p.find(p.results, p.label, options...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return backend.Result{}, ErrNoSelection
		}
		return backend.Result{}, fmt.Errorf("select result: %w", err)
	}
	if idx < 0 || idx >= len(p.results) {
		return backend.Result{}, ErrNoSelection
	}
	return p.results[idx], nil
}

func (p *Picker) label(i int) string {
	res := p.results[i]
	snippet := render.Snippet(res.Summary, labelSnippetWidth)
	if snippet == "" {
		return fmt.Sprintf("%s [%.4f]", res.DocumentID, res.Score)
	}
	return fmt.Sprintf("%s [%.4f] %s", res.DocumentID, res.Score, snippet)
}

func (p *Picker) preview(i, w, h int) string {
	if i < 0 || i >= len(p.results) {
		return ""
	}
	if p.renderer == nil {
		return render.Plain(p.results[i].Summary)
	}
	return p.renderer.Result(i+1, p.results[i])
}
