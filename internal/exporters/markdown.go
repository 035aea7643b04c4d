package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/vokabel/internal/annotation"
	"github.com/mrlokans/vokabel/internal/utils"
)

// MarkdownExporter writes one markdown file per deck into OutputDir.
type MarkdownExporter struct {
	OutputDir string
	Result    ExportResult
	now       func() time.Time
}

func NewMarkdownExporter(outputDir string) *MarkdownExporter {
	return &MarkdownExporter{OutputDir: outputDir, now: time.Now}
}

func (exporter *MarkdownExporter) exportDeck(deck Deck) (string, error) {
	outputPath := filepath.Join(exporter.OutputDir, utils.SanitizeFilename(deck.Title)+".md")
	content, err := GenerateMarkdown(deck, exporter.now())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

type frontmatter struct {
	ContentType string   `yaml:"content_type"`
	CreatedAt   string   `yaml:"created_at"`
	Title       string   `yaml:"title"`
	LessonID    uint     `yaml:"lesson_id,omitempty"`
	SourceURL   string   `yaml:"source_url,omitempty"`
	Cards       int      `yaml:"cards"`
	Tags        []string `yaml:"tags"`
}

func deckFrontmatter(deck Deck, createdAt time.Time) frontmatter {
	fm := frontmatter{
		ContentType: "flashcards",
		CreatedAt:   createdAt.Format("2006-01-02"),
		Title:       deck.Title,
		Cards:       len(deck.Cards),
		Tags:        []string{"vocabulary", "flashcards"},
	}
	if deck.Lesson != nil {
		fm.LessonID = deck.Lesson.ID
		fm.SourceURL = deck.Lesson.SourceURL
	}
	return fm
}

// GenerateMarkdown renders a deck with YAML frontmatter. Each card lists its
// meaning and the captured contexts with the term in bold.
func GenerateMarkdown(deck Deck, createdAt time.Time) (string, error) {
	var builder strings.Builder

	builder.WriteString("---\n")
	encoder := yaml.NewEncoder(&builder)
	encoder.SetIndent(2)
	if err := encoder.Encode(deckFrontmatter(deck, createdAt)); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	builder.WriteString("---\n\n")
	fmt.Fprintf(&builder, "## Cards\n\n")

	for _, card := range deck.Cards {
		fmt.Fprintf(&builder, "### %s\n\n", card.Term)
		fmt.Fprintf(&builder, "**Meaning:** %s\n\n", card.Meaning)
		for _, c := range card.ContextList() {
			before, match, after := annotation.SplitHighlight(c, card.Term)
			if match != "" {
				match = "**" + match + "**"
			}
			fmt.Fprintf(&builder, "> %s%s%s\n\n", before, match, after)
		}
	}

	return builder.String(), nil
}

func (exporter *MarkdownExporter) Export(decks []Deck) (ExportResult, error) {
	exporter.Result = ExportResult{}

	if err := os.MkdirAll(exporter.OutputDir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	for _, deck := range decks {
		if _, err := exporter.exportDeck(deck); err != nil {
			exporter.Result.DecksFailed++
			continue
		}
		exporter.Result.DecksProcessed++
		exporter.Result.CardsProcessed += len(deck.Cards)
	}

	return exporter.Result, nil
}

var _ DeckExporter = (*MarkdownExporter)(nil)
