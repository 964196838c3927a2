package render

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/sift/internal/backend"
)

func TestPlainStripsMarkdown(t *testing.T) {
	md := "# Title\n\nSome *bold* text\nnext line\n\n- a\n- b\n"
	assert.Equal(t, "Title Some bold text next line a b", Plain(md))
}

func TestPlainKeepsCode(t *testing.T) {
	got := Plain("Use `fmt.Println` here\n\n```\nx := 1\n```\n")
	assert.Contains(t, got, "fmt.Println")
	assert.Contains(t, got, "x := 1")
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "hello w…", Snippet("hello world", 8))
	assert.Equal(t, "hello", Snippet("hello", 5))
	assert.Equal(t, "hello world", Snippet("**hello** world", 0))
}

func TestRendererResult(t *testing.T) {
	r, err := New("dark", 80, WithProfile(termenv.Ascii))
	require.NoError(t, err)

	out := r.Result(1, backend.Result{DocumentID: "d1", Score: 0.9, Summary: "first summary"})
	for _, want := range []string{"d1", "0.9000", "first summary"} {
		assert.Contains(t, out, want)
	}
}

func TestRendererResultsKeepsOrder(t *testing.T) {
	r, err := New("light", 80, WithProfile(termenv.Ascii))
	require.NoError(t, err)

	out := r.Results([]backend.Result{
		{DocumentID: "alpha", Score: 0.9},
		{DocumentID: "beta", Score: 0.5},
	})
	first, second := strings.Index(out, "alpha"), strings.Index(out, "beta")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second, "expected alpha before beta, got:\n%s", out)
}

func TestSummaryEmpty(t *testing.T) {
	r, err := New("auto", 0, WithProfile(termenv.Ascii))
	require.NoError(t, err)

	assert.Empty(t, r.Summary("  "))
	assert.Equal(t, DefaultWidth, r.width)
}
