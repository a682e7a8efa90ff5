package layout

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown renders a narrative field written in Markdown: headings,
// paragraphs, bullet lists and thematic breaks map onto the cursor
// primitives. Inline styling is flattened to plain text.
func (e *Engine) Markdown(source string) error {
	md := goldmark.New()
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))
	return e.walkMarkdown(doc, src)
}

func (e *Engine) walkMarkdown(node ast.Node, source []byte) error {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			size := e.Sizes.Body * headingScale(n.Level)
			e.Heading(inlineText(n, source), size, size*0.4)
		case *ast.Paragraph:
			e.Paragraph(inlineText(n, source))
			e.cursorY -= e.Sizes.Body * 0.5
		case *ast.List:
			var items []string
			for li := n.FirstChild(); li != nil; li = li.NextSibling() {
				items = append(items, listItemText(li, source))
			}
			e.BulletList(items)
		case *ast.ThematicBreak:
			e.Divider()
		}
	}
	return nil
}

func headingScale(level int) float64 {
	switch {
	case level == 1:
		return 2.0
	case level == 2:
		return 1.5
	default:
		return 1.25
	}
}

// inlineText flattens the inline children of a block node, turning soft and
// hard line breaks into single spaces.
func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.WriteString(string(child.Text(source)))
	}
	return strings.TrimSpace(sb.String())
}

// listItemText extracts the text of a list item's first block child, which
// goldmark wraps in a paragraph or text block depending on list tightness.
func listItemText(li ast.Node, source []byte) string {
	child := li.FirstChild()
	if child == nil {
		return ""
	}
	return inlineText(child, source)
}
