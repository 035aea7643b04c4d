package annotation

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Entry is a single term/meaning pair of a Dictionary.
type Entry struct {
	Term    string `json:"term"`
	Meaning string `json:"meaning"`
}

// Dictionary is an insertion-ordered mapping from term to meaning.
//
// Terms are identified by their canonical key (see Key), so "Haus" and
// "haus" address the same entry. The display spelling of an entry is the one
// most recently passed to Set. The zero value is an empty dictionary ready
// for use; read methods are safe on a nil *Dictionary.
type Dictionary struct {
	entries []Entry
	index   map[string]int
}

// Key returns the canonical identity of a term: surrounding whitespace
// removed, NFC-composed and Unicode case-folded.
func Key(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	// A Caser carries state and must not be shared between goroutines.
	return cases.Fold().String(norm.NFC.String(term))
}

// NewDictionary builds a dictionary from entries, applied in order.
func NewDictionary(entries ...Entry) *Dictionary {
	d := &Dictionary{}
	for _, e := range entries {
		d.Set(e.Term, e.Meaning)
	}
	return d
}

// FromMap converts the persisted map form into a Dictionary.
// Keys are applied in sorted order so case variants of one term resolve the
// same way on every call.
func FromMap(m map[string]string) *Dictionary {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := &Dictionary{}
	for _, k := range keys {
		d.Set(k, m[k])
	}
	return d
}

// Set adds or replaces the entry for term. It reports false when the term is
// blank.
func (d *Dictionary) Set(term, meaning string) bool {
	term = strings.TrimSpace(term)
	key := Key(term)
	if key == "" {
		return false
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[key]; ok {
		d.entries[i] = Entry{Term: term, Meaning: meaning}
		return true
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, Entry{Term: term, Meaning: meaning})
	return true
}

// Get returns the entry for term, matched by canonical key.
func (d *Dictionary) Get(term string) (Entry, bool) {
	if d == nil || d.index == nil {
		return Entry{}, false
	}
	i, ok := d.index[Key(term)]
	if !ok {
		return Entry{}, false
	}
	return d.entries[i], true
}

// Delete removes the entry for term and reports whether it existed.
func (d *Dictionary) Delete(term string) bool {
	if d == nil || d.index == nil {
		return false
	}
	key := Key(term)
	i, ok := d.index[key]
	if !ok {
		return false
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, key)
	for j := i; j < len(d.entries); j++ {
		d.index[Key(d.entries[j].Term)] = j
	}
	return true
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns a copy of the entries in insertion order.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// LongestFirst returns the entries ordered by descending term length in
// runes. Equal lengths are ordered by canonical key.
func (d *Dictionary) LongestFirst() []Entry {
	out := d.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(out[i].Term), utf8.RuneCountInString(out[j].Term)
		if li != lj {
			return li > lj
		}
		return Key(out[i].Term) < Key(out[j].Term)
	})
	return out
}

// ToMap returns the persisted map form, keyed by display spelling.
func (d *Dictionary) ToMap() map[string]string {
	m := make(map[string]string, d.Len())
	if d == nil {
		return m
	}
	for _, e := range d.entries {
		m[e.Term] = e.Meaning
	}
	return m
}

// MarshalJSON encodes the dictionary as a JSON object of term to meaning.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToMap())
}

// UnmarshalJSON decodes a JSON object of term to meaning.
func (d *Dictionary) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*d = *FromMap(m)
	return nil
}
