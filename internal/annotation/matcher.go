package annotation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher finds case-insensitive occurrences of a single term.
type Matcher struct {
	term     string
	re       *regexp.Regexp
	wordOnly bool
}

// TryBuildMatcher compiles a matcher for term. It returns false for blank or
// malformed terms; callers skip those.
//
// Terms made only of letters, digits, marks and underscores match at word
// boundaries. Any other term matches as a plain substring.
func TryBuildMatcher(term string) (*Matcher, bool) {
	term = strings.TrimSpace(term)
	if term == "" || !utf8.ValidString(term) {
		return nil, false
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return nil, false
	}
	return &Matcher{term: term, re: re, wordOnly: isWordTerm(term)}, true
}

// Term returns the trimmed term the matcher was built for.
func (m *Matcher) Term() string {
	return m.term
}

// WordBounded reports whether matches must sit on word boundaries.
func (m *Matcher) WordBounded() bool {
	return m.wordOnly
}

// FindAll returns the byte ranges of all non-overlapping matches in s, left
// to right.
func (m *Matcher) FindAll(s string) [][2]int {
	var out [][2]int
	pos := 0
	for pos < len(s) {
		loc := m.re.FindStringIndex(s[pos:])
		if loc == nil || loc[1] == loc[0] {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !m.wordOnly || onWordBoundary(s, start, end) {
			out = append(out, [2]int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}
	return out
}

// FindFirst returns the byte range of the first match in s.
func (m *Matcher) FindFirst(s string) (int, int, bool) {
	if !m.wordOnly {
		loc := m.re.FindStringIndex(s)
		if loc == nil {
			return 0, 0, false
		}
		return loc[0], loc[1], true
	}
	matches := m.FindAll(s)
	if len(matches) == 0 {
		return 0, 0, false
	}
	return matches[0][0], matches[0][1], true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

func isWordTerm(term string) bool {
	for _, r := range term {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

func onWordBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// substringMatcher builds a matcher that ignores word boundaries. The
// context extractor locates terms this way.
func substringMatcher(term string) (*Matcher, bool) {
	m, ok := TryBuildMatcher(term)
	if !ok {
		return nil, false
	}
	m.wordOnly = false
	return m, true
}
