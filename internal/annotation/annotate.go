package annotation

import (
	"sort"
	"strings"
)

// Run is a piece of paragraph text. Highlighted runs carry the dictionary
// term they matched and its meaning; Text keeps the casing found in the
// source.
type Run struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
	Term        string `json:"term,omitempty"`
	Meaning     string `json:"meaning,omitempty"`
}

// Paragraph is one block of annotated text.
type Paragraph struct {
	Runs []Run `json:"runs"`
}

// Text returns the paragraph text without decorations.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Highlights returns only the highlighted runs.
func (p Paragraph) Highlights() []Run {
	var out []Run
	for _, r := range p.Runs {
		if r.Highlighted {
			out = append(out, r)
		}
	}
	return out
}

type termMatcher struct {
	entry   Entry
	matcher *Matcher
}

type span struct {
	start, end int
	entry      Entry
}

// Annotate splits rawText into paragraphs and marks every occurrence of every
// dictionary term. Longer terms claim text first; a shorter term never
// matches inside a span already claimed. Terms or meanings that are blank,
// and terms that cannot be compiled, are skipped.
func Annotate(rawText string, dict *Dictionary) []Paragraph {
	paragraphs := SplitParagraphs(rawText)
	out := make([]Paragraph, 0, len(paragraphs))
	if len(paragraphs) == 0 {
		return out
	}

	matchers := compileMatchers(dict)
	for _, p := range paragraphs {
		out = append(out, annotateParagraph(collapseSoftBreaks(p), matchers))
	}
	return out
}

func compileMatchers(dict *Dictionary) []termMatcher {
	entries := dict.LongestFirst()
	matchers := make([]termMatcher, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Meaning) == "" {
			continue
		}
		m, ok := TryBuildMatcher(e.Term)
		if !ok {
			continue
		}
		matchers = append(matchers, termMatcher{entry: e, matcher: m})
	}
	return matchers
}

func annotateParagraph(text string, matchers []termMatcher) Paragraph {
	var spans []span
	for _, tm := range matchers {
		for _, loc := range tm.matcher.FindAll(text) {
			if overlapsAny(spans, loc[0], loc[1]) {
				continue
			}
			spans = append(spans, span{start: loc[0], end: loc[1], entry: tm.entry})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	runs := make([]Run, 0, 2*len(spans)+1)
	pos := 0
	for _, s := range spans {
		if s.start > pos {
			runs = append(runs, Run{Text: text[pos:s.start]})
		}
		runs = append(runs, Run{
			Text:        text[s.start:s.end],
			Highlighted: true,
			Term:        s.entry.Term,
			Meaning:     s.entry.Meaning,
		})
		pos = s.end
	}
	if pos < len(text) {
		runs = append(runs, Run{Text: text[pos:]})
	}
	return Paragraph{Runs: runs}
}

func overlapsAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && s.start < end {
			return true
		}
	}
	return false
}
