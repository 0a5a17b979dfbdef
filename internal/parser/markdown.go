package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"paperpal/internal/paper"
)

// MarkdownParser handles Markdown files using goldmark. Headings become
// spans sized by level; every other block becomes a body-sized span.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]paper.TextSpan, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var spans []paper.TextSpan
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(nodeText(node, src))
			if title != "" {
				spans = append(spans, paper.TextSpan{
					Text:     title,
					FontSize: headingFontSize(node.Level),
				})
			}
		default:
			t := nodeText(n, src)
			if t != "" {
				spans = append(spans, paper.TextSpan{
					Text:     t,
					FontSize: SyntheticBodySize,
				})
			}
		}
	}
	return spans, nil
}

// nodeText gets the text content of a goldmark AST node. Blocks with raw
// source lines (paragraphs, headings, code) read those directly; container
// blocks like lists recurse into their children.
func nodeText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
			buf.WriteByte('\n')
		}
		return strings.TrimSpace(buf.String())
	}

	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			if s := strings.TrimSpace(string(t.Value(src))); s != "" {
				parts = append(parts, s)
			}
			continue
		}
		if s := nodeText(c, src); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
