package render

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Plain strips markdown from md and collapses whitespace to single spaces.
func Plain(md string) string {
	source := []byte(md)
	document := goldmark.DefaultParser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(
		document,
		func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			switch n := n.(type) {
			case *ast.Text:
				if entering {
					b.Write(n.Segment.Value(source))
					if n.SoftLineBreak() || n.HardLineBreak() {
						b.WriteByte(' ')
					}
				}
			case *ast.String:
				if entering {
					b.Write(n.Value)
				}
			case *ast.CodeBlock, *ast.FencedCodeBlock:
				if entering {
					lines := n.Lines()
					for i := 0; i < lines.Len(); i++ {
						segment := lines.At(i)
						b.Write(segment.Value(source))
					}
				}
			default:
				if !entering && n.Type() == ast.TypeBlock {
					b.WriteByte(' ')
				}
			}
			return ast.WalkContinue, nil
		},
	)

	return strings.Join(strings.Fields(b.String()), " ")
}

// Snippet is the plain text of md cut to width columns with an ellipsis.
func Snippet(md string, width int) string {
	plain := Plain(md)
	if width <= 0 || ansi.PrintableRuneWidth(plain) <= width {
		return plain
	}
	return truncate.StringWithTail(plain, uint(width), "…")
}
