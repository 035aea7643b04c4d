package annotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func highlights(paragraphs []Paragraph) []Run {
	var out []Run
	for _, p := range paragraphs {
		out = append(out, p.Highlights()...)
	}
	return out
}

func TestAnnotate_EmptyDictionaryPreservesText(t *testing.T) {
	text := "Erste Zeile\nzweite Zeile.\n\n\nZweiter Absatz."

	paragraphs := Annotate(text, nil)

	require.Len(t, paragraphs, 2)
	assert.Equal(t, "Erste Zeile zweite Zeile.", paragraphs[0].Text())
	assert.Equal(t, "Zweiter Absatz.", paragraphs[1].Text())
	assert.Empty(t, highlights(paragraphs))

	for _, p := range paragraphs {
		require.Len(t, p.Runs, 1)
		assert.False(t, p.Runs[0].Highlighted)
	}
}

func TestAnnotate_EmptyText(t *testing.T) {
	dict := NewDictionary(Entry{Term: "Haus", Meaning: "house"})

	assert.Empty(t, Annotate("", dict))
	assert.Empty(t, Annotate(" \n\n \n", dict))
	assert.NotNil(t, Annotate("", dict))
}

func TestAnnotate_LongestMatchWins(t *testing.T) {
	dict := FromMap(map[string]string{
		"Haus":    "house",
		"Haustür": "front door",
	})

	paragraphs := Annotate("Die Haustür ist rot.", dict)

	require.Len(t, paragraphs, 1)
	assert.Equal(t, []Run{
		{Text: "Die "},
		{Text: "Haustür", Highlighted: true, Term: "Haustür", Meaning: "front door"},
		{Text: " ist rot."},
	}, paragraphs[0].Runs)
}

func TestAnnotate_ShorterSubstringTermNeverSplitsLonger(t *testing.T) {
	dict := FromMap(map[string]string{
		"zum Beispiel": "for example",
		"Beispiel":     "example",
	})

	paragraphs := Annotate("Das ist zum Beispiel ein Beispiel.", dict)

	hs := highlights(paragraphs)
	require.Len(t, hs, 2)
	assert.Equal(t, "zum Beispiel", hs[0].Text)
	assert.Equal(t, "for example", hs[0].Meaning)
	assert.Equal(t, "Beispiel", hs[1].Text)
	assert.Equal(t, "example", hs[1].Meaning)
}

func TestAnnotate_WordBoundaries(t *testing.T) {
	dict := FromMap(map[string]string{"Art": "kind"})

	t.Run("embedded occurrence is not matched", func(t *testing.T) {
		paragraphs := Annotate("Partei", dict)
		require.Len(t, paragraphs, 1)
		assert.Empty(t, paragraphs[0].Highlights())
		assert.Equal(t, "Partei", paragraphs[0].Text())
	})

	t.Run("standalone word is matched once", func(t *testing.T) {
		paragraphs := Annotate("Art und Weise", dict)
		hs := highlights(paragraphs)
		require.Len(t, hs, 1)
		assert.Equal(t, "Art", hs[0].Text)
		assert.Equal(t, "kind", hs[0].Meaning)
	})

	t.Run("non-ASCII letters count as word characters", func(t *testing.T) {
		d := FromMap(map[string]string{"über": "over"})

		assert.Len(t, highlights(Annotate("Er sprang über den Zaun.", d)), 1)
		assert.Empty(t, highlights(Annotate("Er wohnt gegenüber.", d)))
	})

	t.Run("punctuation terms match as substrings", func(t *testing.T) {
		d := FromMap(map[string]string{"z.B.": "e.g."})

		hs := highlights(Annotate("Obst, z.B. Äpfel", d))
		require.Len(t, hs, 1)
		assert.Equal(t, "z.B.", hs[0].Text)
	})
}

func TestAnnotate_CaseInsensitiveKeepsSurface(t *testing.T) {
	dict := FromMap(map[string]string{"haus": "house"})

	hs := highlights(Annotate("Das Haus ist groß.", dict))

	require.Len(t, hs, 1)
	assert.Equal(t, "Haus", hs[0].Text)
	assert.Equal(t, "house", hs[0].Meaning)
	assert.Equal(t, "haus", hs[0].Term)
}

func TestAnnotate_AllOccurrences(t *testing.T) {
	dict := FromMap(map[string]string{"ist": "is"})

	hs := highlights(Annotate("Es ist, was es IST.", dict))

	require.Len(t, hs, 2)
	assert.Equal(t, "ist", hs[0].Text)
	assert.Equal(t, "IST", hs[1].Text)
}

func TestAnnotate_PhraseAcrossSoftBreak(t *testing.T) {
	dict := FromMap(map[string]string{"zum Beispiel": "for example"})

	paragraphs := Annotate("Das ist zum\nBeispiel gut.", dict)

	require.Len(t, paragraphs, 1)
	assert.Equal(t, "Das ist zum Beispiel gut.", paragraphs[0].Text())
	assert.Len(t, paragraphs[0].Highlights(), 1)
}

func TestAnnotate_SkipsBlankAndMalformedTerms(t *testing.T) {
	dict := NewDictionary(
		Entry{Term: "Haus", Meaning: "house"},
		Entry{Term: "Tür", Meaning: "  "},
		Entry{Term: "\xffkaputt", Meaning: "broken"},
	)

	paragraphs := Annotate("Das Haus hat eine Tür.", dict)

	hs := highlights(paragraphs)
	require.Len(t, hs, 1)
	assert.Equal(t, "Haus", hs[0].Text)
	assert.Equal(t, "Das Haus hat eine Tür.", paragraphs[0].Text())
}

func TestAnnotate_Deterministic(t *testing.T) {
	dict := FromMap(map[string]string{
		"ab": "1",
		"bc": "2",
		"cd": "3",
		"de": "4",
	})
	text := strings.Repeat("abcde ", 20)

	first := Annotate(text, dict)
	for range 10 {
		assert.Equal(t, first, Annotate(text, dict))
	}
}

func TestTryBuildMatcher(t *testing.T) {
	t.Run("blank term", func(t *testing.T) {
		_, ok := TryBuildMatcher("   ")
		assert.False(t, ok)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		_, ok := TryBuildMatcher("\xff\xfe")
		assert.False(t, ok)
	})

	t.Run("regexp metacharacters are literal", func(t *testing.T) {
		m, ok := TryBuildMatcher("(a+b)?")
		require.True(t, ok)
		assert.False(t, m.WordBounded())
		assert.Equal(t, [][2]int{{2, 8}}, m.FindAll("x (A+B)? y"))
	})

	t.Run("rejected candidate does not hide a later match", func(t *testing.T) {
		m, ok := TryBuildMatcher("Art")
		require.True(t, ok)
		assert.True(t, m.WordBounded())
		assert.Equal(t, [][2]int{{7, 10}}, m.FindAll("Partei Art"))
	})
}
