package exporters

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/vokabel/internal/annotation"
)

type yamlContext struct {
	Sentence string `yaml:"sentence"`
	Start    int    `yaml:"start"`
	End      int    `yaml:"end"`
}

type yamlCard struct {
	Term     string        `yaml:"term"`
	Meaning  string        `yaml:"meaning"`
	Contexts []yamlContext `yaml:"contexts,omitempty"`
}

type yamlDeck struct {
	Title     string            `yaml:"title"`
	LessonID  uint              `yaml:"lesson_id,omitempty"`
	SourceURL string            `yaml:"source_url,omitempty"`
	Dict      map[string]string `yaml:"dict,omitempty"`
	Cards     []yamlCard        `yaml:"cards"`
}

// YAMLExporter writes all decks as one YAML document.
type YAMLExporter struct {
	w io.Writer
}

func NewYAMLExporter(w io.Writer) *YAMLExporter {
	return &YAMLExporter{w: w}
}

func (exporter *YAMLExporter) Export(decks []Deck) (ExportResult, error) {
	var result ExportResult
	out := make([]yamlDeck, 0, len(decks))

	for _, deck := range decks {
		yd := yamlDeck{Title: deck.Title, Cards: make([]yamlCard, 0, len(deck.Cards))}
		if deck.Lesson != nil {
			yd.LessonID = deck.Lesson.ID
			yd.SourceURL = deck.Lesson.SourceURL
			dict, err := deck.Lesson.Dictionary()
			if err != nil {
				result.DecksFailed++
				continue
			}
			if dict.Len() > 0 {
				yd.Dict = dict.ToMap()
			}
		}
		for _, card := range deck.Cards {
			yc := yamlCard{Term: card.Term, Meaning: card.Meaning}
			for _, c := range card.ContextList() {
				yc.Contexts = append(yc.Contexts, yamlContext{Sentence: c.Sentence, Start: c.Start, End: c.End})
			}
			yd.Cards = append(yd.Cards, yc)
		}
		out = append(out, yd)
		result.DecksProcessed++
		result.CardsProcessed += len(deck.Cards)
	}

	enc := yaml.NewEncoder(exporter.w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]interface{}{"decks": out}); err != nil {
		return result, fmt.Errorf("failed to encode decks: %w", err)
	}
	return result, enc.Close()
}

var _ DeckExporter = (*YAMLExporter)(nil)

// LoadDictionary reads a YAML mapping of term to meaning, keeping the file
// order.
func LoadDictionary(r io.Reader) (*annotation.Dictionary, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &annotation.Dictionary{}, nil
		}
		return nil, fmt.Errorf("failed to parse dictionary: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("dictionary must be a mapping of term to meaning (line %d)", root.Line)
	}

	dict := &annotation.Dictionary{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("meaning of %q must be a string (line %d)", key.Value, value.Line)
		}
		dict.Set(key.Value, value.Value)
	}
	return dict, nil
}
