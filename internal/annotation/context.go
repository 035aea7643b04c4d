package annotation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContextRadius is the number of runes kept on each side of a match when a
// context falls back to a window instead of a sentence.
const ContextRadius = 60

// NoOffset marks a Context whose Start/End cannot be trusted.
const NoOffset = -1

// Context is a snippet of text that shows a term in use. Start and End are
// rune offsets of the term inside Sentence, or NoOffset.
type Context struct {
	Sentence string `json:"sentence"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// HasOffsets reports whether Start and End describe a valid range of
// Sentence.
func (c Context) HasOffsets() bool {
	return c.Start >= 0 && c.End > c.Start && c.End <= utf8.RuneCountInString(c.Sentence)
}

// ExtractContext returns the first sentence of fullText that contains term,
// compared case-insensitively. When no sentence holds the term, or the
// sentence is longer than a window, a window of ContextRadius runes around
// the first occurrence is returned instead. It returns false when the term
// does not occur at all.
func ExtractContext(fullText, term string) (Context, bool) {
	term = strings.TrimSpace(term)
	if strings.TrimSpace(fullText) == "" || term == "" {
		return Context{}, false
	}
	m, ok := substringMatcher(term)
	if !ok {
		return Context{}, false
	}

	text := normalizeNewlines(fullText)
	maxRunes := 2*ContextRadius + utf8.RuneCountInString(term)

	for _, p := range SplitParagraphs(text) {
		for _, s := range SplitSentences(p) {
			start, end, found := m.FindFirst(s)
			if !found {
				continue
			}
			if utf8.RuneCountInString(s) > maxRunes {
				return window(s, start, end), true
			}
			rs := utf8.RuneCountInString(s[:start])
			return Context{
				Sentence: s,
				Start:    rs,
				End:      rs + utf8.RuneCountInString(s[start:end]),
			}, true
		}
	}

	start, end, found := m.FindFirst(text)
	if !found {
		return Context{}, false
	}
	return window(text, start, end), true
}

// window cuts up to ContextRadius runes on both sides of the byte range
// [start, end) of src. Line breaks become spaces and the result is trimmed;
// offsets are relative to the trimmed window.
func window(src string, start, end int) Context {
	runes := []rune(src)
	mStart := utf8.RuneCountInString(src[:start])
	mEnd := mStart + utf8.RuneCountInString(src[start:end])

	wStart := max(0, mStart-ContextRadius)
	wEnd := min(len(runes), mEnd+ContextRadius)

	snippet := make([]rune, 0, wEnd-wStart)
	for _, r := range runes[wStart:wEnd] {
		if r == '\n' || r == '\t' {
			r = ' '
		}
		snippet = append(snippet, r)
	}

	lead := 0
	for lead < len(snippet) && unicode.IsSpace(snippet[lead]) {
		lead++
	}
	sentence := strings.TrimRightFunc(string(snippet[lead:]), unicode.IsSpace)

	return Context{
		Sentence: sentence,
		Start:    mStart - wStart - lead,
		End:      mEnd - wStart - lead,
	}
}

// SameSentence compares two context sentences after trimming and case
// folding.
func SameSentence(a, b string) bool {
	return Key(a) == Key(b)
}

// AppendContext appends c unless contexts already hold an equal sentence (see
// SameSentence) or c is blank. It reports whether c was appended.
func AppendContext(contexts []Context, c Context) ([]Context, bool) {
	if strings.TrimSpace(c.Sentence) == "" {
		return contexts, false
	}
	for _, existing := range contexts {
		if SameSentence(existing.Sentence, c.Sentence) {
			return contexts, false
		}
	}
	return append(contexts, c), true
}

// LocateTerm returns the rune range of term inside c.Sentence. Stored offsets
// are used when valid; otherwise the sentence is searched again,
// case-insensitively.
func LocateTerm(c Context, term string) (int, int, bool) {
	if c.HasOffsets() {
		return c.Start, c.End, true
	}
	m, ok := substringMatcher(term)
	if !ok {
		return 0, 0, false
	}
	start, end, found := m.FindFirst(c.Sentence)
	if !found {
		return 0, 0, false
	}
	rs := utf8.RuneCountInString(c.Sentence[:start])
	return rs, rs + utf8.RuneCountInString(c.Sentence[start:end]), true
}

// SplitHighlight cuts c.Sentence around the located term. When the term
// cannot be located the whole sentence is returned as before.
func SplitHighlight(c Context, term string) (before, match, after string) {
	start, end, ok := LocateTerm(c, term)
	if !ok {
		return c.Sentence, "", ""
	}
	runes := []rune(c.Sentence)
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}
