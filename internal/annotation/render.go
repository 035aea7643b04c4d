package annotation

import (
	"html"
	"strings"
)

// RenderHTML renders paragraphs as <p> blocks. Highlighted runs become
// <span class="term"> elements with the meaning in data-meaning and title.
func RenderHTML(paragraphs []Paragraph) string {
	var b strings.Builder
	for _, p := range paragraphs {
		b.WriteString("<p>")
		for _, r := range p.Runs {
			if !r.Highlighted {
				b.WriteString(html.EscapeString(r.Text))
				continue
			}
			meaning := html.EscapeString(r.Meaning)
			b.WriteString(`<span class="term" data-meaning="`)
			b.WriteString(meaning)
			b.WriteString(`" title="`)
			b.WriteString(meaning)
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(r.Text))
			b.WriteString("</span>")
		}
		b.WriteString("</p>")
	}
	return b.String()
}

// RenderText renders paragraphs as plain text separated by blank lines, with
// each highlight followed by its meaning in brackets.
func RenderText(paragraphs []Paragraph) string {
	blocks := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		var b strings.Builder
		for _, r := range p.Runs {
			b.WriteString(r.Text)
			if r.Highlighted {
				b.WriteString(" [")
				b.WriteString(r.Meaning)
				b.WriteString("]")
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
