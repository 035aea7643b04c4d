package annotation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// One or more blank lines separate paragraphs.
var paragraphSeparator = regexp.MustCompile(`\n\s*\n+`)

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// SplitParagraphs splits text on blank-line boundaries. Paragraphs are
// trimmed and empty ones are dropped.
func SplitParagraphs(text string) []string {
	text = strings.TrimSpace(normalizeNewlines(text))
	if text == "" {
		return nil
	}
	parts := paragraphSeparator.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// collapseSoftBreaks turns the single newlines inside a paragraph into spaces.
func collapseSoftBreaks(paragraph string) string {
	return strings.ReplaceAll(paragraph, "\n", " ")
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '?', '!', ':', ';':
		return true
	}
	return false
}

// SplitSentences splits a paragraph after sentence punctuation (. ? ! : ;)
// that is followed by whitespace, and at every run of newlines. Sentences are
// trimmed and empty ones are dropped. Abbreviations such as "z.B." are not
// special-cased.
func SplitSentences(paragraph string) []string {
	paragraph = normalizeNewlines(paragraph)

	var out []string
	emit := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	start := 0
	for i := 0; i < len(paragraph); {
		r, size := utf8.DecodeRuneInString(paragraph[i:])
		next := i + size

		switch {
		case r == '\n':
			emit(paragraph[start:i])
			for next < len(paragraph) && paragraph[next] == '\n' {
				next++
			}
			start = next
		case isSentenceEnd(r):
			ws := next
			for ws < len(paragraph) {
				wr, wsize := utf8.DecodeRuneInString(paragraph[ws:])
				if !unicode.IsSpace(wr) {
					break
				}
				ws += wsize
			}
			if ws > next {
				emit(paragraph[start:next])
				start = ws
				next = ws
			}
		}
		i = next
	}
	emit(paragraph[start:])
	return out
}
