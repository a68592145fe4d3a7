package insights

import (
	"bytes"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

// Raw HTML in insight bodies is dropped: goldmark escapes it unless
// html.WithUnsafe is set.
func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.DefinitionList,
			),
		)
	})
	return markdownInstance
}

// RenderHTML converts an insight body from markdown to HTML.
func RenderHTML(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SplitTitle finds the first top-level level-1 heading and returns its text
// plus the source with the heading line removed. Headings inside code blocks
// or block quotes are not candidates. ok is false when there is none.
func SplitTitle(source string) (title, body string, ok bool) {
	src := []byte(source)
	doc := getMarkdown().Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, isHeading := n.(*ast.Heading)
		if !isHeading || heading.Level != 1 || heading.Lines().Len() == 0 {
			continue
		}

		title = headingText(heading, src)
		if title == "" {
			continue
		}

		lines := heading.Lines()
		start := bytes.LastIndexByte(src[:lines.At(0).Start], '\n') + 1
		stop := lines.At(lines.Len() - 1).Stop
		if stop > 0 && src[stop-1] == '\n' {
			stop--
		}
		end := lineEnd(src, stop)
		// Setext headings carry their "===" underline on the next line.
		if next := lineEnd(src, end); end < len(src) && isUnderline(src[end:next]) {
			end = next
		}

		body = strings.TrimSpace(string(src[:start]) + string(src[end:]))
		return title, body, true
	}
	return "", strings.TrimSpace(source), false
}

func headingText(heading *ast.Heading, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// lineEnd returns the offset just past the newline ending the line at pos.
func lineEnd(src []byte, pos int) int {
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

func isUnderline(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	return len(trimmed) > 0 && len(bytes.Trim(trimmed, "=")) == 0
}
