package exporters

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mrlokans/vokabel/internal/annotation"
	"github.com/mrlokans/vokabel/internal/entities"
)

func uintPtr(v uint) *uint { return &v }

func testLesson(t *testing.T) entities.Lesson {
	t.Helper()
	lesson := entities.Lesson{ID: 7, Title: "Am Bahnhof: Teil 1", Content: "Der Zug kommt.", SourceURL: "https://example.com/zug"}
	require.NoError(t, lesson.SetDictionary(annotation.NewDictionary(annotation.Entry{Term: "Zug", Meaning: "train"})))
	return lesson
}

func testCards() []entities.Flashcard {
	return []entities.Flashcard{
		{
			ID: 1, Term: "Zug", Meaning: "train", LessonID: uintPtr(7),
			Contexts: []entities.FlashcardContext{{Sentence: "Der Zug kommt.", Start: 4, End: 7}},
		},
		{ID: 2, Term: "Baum", Meaning: "tree"},
		{ID: 3, Term: "Tür", Meaning: "door", LessonID: uintPtr(99)},
	}
}

type stubReader struct {
	lessons []entities.Lesson
	cards   []entities.Flashcard
}

func (s stubReader) ListLessons(context.Context) ([]entities.Lesson, error) { return s.lessons, nil }

func (s stubReader) ListFlashcards(context.Context, *uint) ([]entities.Flashcard, error) {
	return s.cards, nil
}

func TestBuildDecks(t *testing.T) {
	lesson := testLesson(t)
	empty := entities.Lesson{ID: 8, Title: "Leer"}

	decks := BuildDecks([]entities.Lesson{lesson, empty}, testCards())

	require.Len(t, decks, 3)
	assert.Equal(t, "Am Bahnhof: Teil 1", decks[0].Title)
	require.Len(t, decks[0].Cards, 1)
	assert.Equal(t, "Zug", decks[0].Cards[0].Term)
	assert.Empty(t, decks[1].Cards)
	assert.Equal(t, LooseDeckTitle, decks[2].Title)
	assert.Nil(t, decks[2].Lesson)
	assert.Len(t, decks[2].Cards, 2, "cards of unknown lessons join the loose deck")
}

func TestCollectDecks(t *testing.T) {
	decks, err := CollectDecks(context.Background(), stubReader{
		lessons: []entities.Lesson{testLesson(t)},
		cards:   testCards()[:1],
	})

	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Len(t, decks[0].Cards, 1)
}

func parseFrontmatter(t *testing.T, md string) (frontmatter, string) {
	t.Helper()
	require.True(t, strings.HasPrefix(md, "---\n"))
	head, body, found := strings.Cut(strings.TrimPrefix(md, "---\n"), "---\n")
	require.True(t, found, "frontmatter is not closed")

	var fm frontmatter
	require.NoError(t, yaml.Unmarshal([]byte(head), &fm))
	return fm, body
}

func TestGenerateMarkdown(t *testing.T) {
	lesson := testLesson(t)
	deck := Deck{Lesson: &lesson, Title: lesson.Title, Cards: testCards()[:1]}

	md, err := GenerateMarkdown(deck, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	fm, body := parseFrontmatter(t, md)
	assert.Equal(t, frontmatter{
		ContentType: "flashcards",
		CreatedAt:   "2024-03-01",
		Title:       "Am Bahnhof: Teil 1",
		LessonID:    7,
		SourceURL:   "https://example.com/zug",
		Cards:       1,
		Tags:        []string{"vocabulary", "flashcards"},
	}, fm)
	assert.Contains(t, body, "### Zug\n\n**Meaning:** train\n\n")
	assert.Contains(t, body, "> Der **Zug** kommt.\n")
}

func TestGenerateMarkdown_TitlesNeedingQuotes(t *testing.T) {
	titles := []string{
		`C:\Users\Texte`,
		`Er sagte: "Hallo"`,
		"- Liste",
		"#1 # Kommentar",
		"yes",
	}

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			md, err := GenerateMarkdown(Deck{Title: title}, time.Now())
			require.NoError(t, err)

			fm, _ := parseFrontmatter(t, md)
			assert.Equal(t, title, fm.Title)
			assert.Zero(t, fm.LessonID)
			assert.Empty(t, fm.SourceURL)
		})
	}
}

func TestMarkdownExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "decks")
	lesson := testLesson(t)
	decks := BuildDecks([]entities.Lesson{lesson}, testCards())

	result, err := NewMarkdownExporter(dir).Export(decks)

	require.NoError(t, err)
	assert.Equal(t, ExportResult{DecksProcessed: 2, CardsProcessed: 3}, result)

	data, err := os.ReadFile(filepath.Join(dir, "Am Bahnhof Teil 1.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "### Zug")

	_, err = os.Stat(filepath.Join(dir, LooseDeckTitle+".md"))
	assert.NoError(t, err)
}

func TestYAMLExporter_Export(t *testing.T) {
	lesson := testLesson(t)
	var buf bytes.Buffer

	result, err := NewYAMLExporter(&buf).Export(BuildDecks([]entities.Lesson{lesson}, testCards()[:2]))
	require.NoError(t, err)
	assert.Equal(t, 2, result.DecksProcessed)
	assert.Equal(t, 2, result.CardsProcessed)

	var doc struct {
		Decks []yamlDeck `yaml:"decks"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Decks, 2)
	assert.Equal(t, uint(7), doc.Decks[0].LessonID)
	assert.Equal(t, map[string]string{"Zug": "train"}, doc.Decks[0].Dict)
	assert.Equal(t, []yamlContext{{Sentence: "Der Zug kommt.", Start: 4, End: 7}}, doc.Decks[0].Cards[0].Contexts)
	assert.Equal(t, "Baum", doc.Decks[1].Cards[0].Term)
}

func TestLoadDictionary(t *testing.T) {
	t.Run("keeps file order", func(t *testing.T) {
		dict, err := LoadDictionary(strings.NewReader("Zug: train\nHaus: house\nzum Beispiel: for example\n"))

		require.NoError(t, err)
		assert.Equal(t, []annotation.Entry{
			{Term: "Zug", Meaning: "train"},
			{Term: "Haus", Meaning: "house"},
			{Term: "zum Beispiel", Meaning: "for example"},
		}, dict.Entries())
	})

	t.Run("empty file", func(t *testing.T) {
		dict, err := LoadDictionary(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, 0, dict.Len())
	})

	t.Run("not a mapping", func(t *testing.T) {
		_, err := LoadDictionary(strings.NewReader("- Zug\n- Haus\n"))
		assert.Error(t, err)
	})

	t.Run("nested meaning", func(t *testing.T) {
		_, err := LoadDictionary(strings.NewReader("Zug:\n  en: train\n"))
		assert.Error(t, err)
	})
}
