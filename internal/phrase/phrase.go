// Package phrase defines the factoid data model: phrases, their tidbits,
// the persisted record shape, and the edit permission rules.
package phrase

import (
	"math/rand"
	"strings"
)

// Tidbit is one response belonging to a phrase.
type Tidbit struct {
	Tidbit  string `json:"tidbit"`
	Verb    string `json:"verb"`
	Creator string `json:"creator,omitempty"`
	Room    string `json:"room,omitempty"`
}

// Phrase is the in-memory form of one factoid. It is a transient
// projection of the stored record; the store owns the durable state.
type Phrase struct {
	Name     string   // normalized key
	Fact     string   // display form, original casing and punctuation
	Tidbits  []Tidbit // insertion order, never re-sorted
	Alias    string   // non-empty means pure redirect, no tidbits
	ReadOnly bool
	Creator  string
	Room     string
}

// Record is the persisted wire shape, compatible with hubot brain dumps.
// Alias phrases serialize only alias/fact/readonly; normal phrases
// serialize fact/readonly/tidbits.
type Record struct {
	Fact     string   `json:"fact,omitempty"`
	Alias    string   `json:"alias,omitempty"`
	ReadOnly bool     `json:"readonly"`
	Tidbits  []Tidbit `json:"tidbits,omitempty"`
	Creator  string   `json:"creator,omitempty"`
	Room     string   `json:"room,omitempty"`
}

// New creates an empty, editable phrase. The display form defaults to
// the raw name it was taught under.
func New(name, fact string) *Phrase {
	if fact == "" {
		fact = name
	}
	return &Phrase{Name: name, Fact: fact}
}

// FromRecord rebuilds a phrase from its stored record.
func FromRecord(name string, rec Record) *Phrase {
	p := &Phrase{
		Name:     name,
		Fact:     rec.Fact,
		ReadOnly: rec.ReadOnly,
		Creator:  rec.Creator,
		Room:     rec.Room,
	}
	if rec.Alias != "" {
		p.Alias = rec.Alias
		return p
	}
	p.Tidbits = append(p.Tidbits, rec.Tidbits...)
	return p
}

// ToRecord serializes the phrase to its persisted shape.
func (p *Phrase) ToRecord() Record {
	if p.Alias != "" {
		return Record{Alias: p.Alias, Fact: p.Fact, ReadOnly: p.ReadOnly, Creator: p.Creator, Room: p.Room}
	}
	return Record{Fact: p.Fact, ReadOnly: p.ReadOnly, Tidbits: p.Tidbits, Creator: p.Creator, Room: p.Room}
}

// DisplayName returns the human-readable form of the name.
func (p *Phrase) DisplayName() string {
	if p.Fact != "" {
		return p.Fact
	}
	return p.Name
}

// CanEdit reports whether a user with the given roles may modify this
// phrase: the edit_phrases role grants blanket access, the
// edit_phrase_<name> role grants per-phrase access, and anything else
// falls back to the readonly flag.
func (p *Phrase) CanEdit(roles []string) bool {
	for _, role := range roles {
		if role == "edit_phrases" || role == "edit_phrase_"+p.Name {
			return true
		}
	}
	return !p.ReadOnly
}

// CanAlias reports whether a user may alias onto this phrase. Same
// rules as CanEdit for now.
func (p *Phrase) CanAlias(roles []string) bool {
	return p.CanEdit(roles)
}

// Pick returns a uniformly random tidbit, or false when the phrase has
// none (alias phrases, mid-mutation states).
func (p *Phrase) Pick(rng *rand.Rand) (Tidbit, bool) {
	if len(p.Tidbits) == 0 {
		return Tidbit{}, false
	}
	return p.Tidbits[rng.Intn(len(p.Tidbits))], true
}

// HasTidbit reports whether the phrase already holds a tidbit with the
// same text, ignoring case.
func (p *Phrase) HasTidbit(text string) bool {
	for _, t := range p.Tidbits {
		if strings.EqualFold(t.Tidbit, text) {
			return true
		}
	}
	return false
}

// AddTidbit appends a response. Ordering is significant: tidbit indices
// shown to users are positions in this slice.
func (p *Phrase) AddTidbit(t Tidbit) {
	p.Tidbits = append(p.Tidbits, t)
}
