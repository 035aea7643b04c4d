package dictionary

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("term not found in dictionary")

// Definition is one sense of a looked-up term.
type Definition struct {
	PartOfSpeech string `json:"part_of_speech,omitempty"`
	Definition   string `json:"definition"`
	Example      string `json:"example,omitempty"`
}

// LookupResult contains the result of a dictionary lookup.
type LookupResult struct {
	Term          string       `json:"term"`
	Definitions   []Definition `json:"definitions"`
	Pronunciation string       `json:"pronunciation,omitempty"`
	AudioURL      string       `json:"audio_url,omitempty"`
	Source        string       `json:"source"`
}

// Suggestions returns the distinct definitions, usable as flashcard meanings.
func (r *LookupResult) Suggestions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.Definitions {
		if d.Definition == "" || seen[d.Definition] {
			continue
		}
		seen[d.Definition] = true
		out = append(out, d.Definition)
	}
	return out
}

// Client defines the interface for dictionary API providers.
type Client interface {
	Lookup(ctx context.Context, term string) (*LookupResult, error)
	Name() string
}
