package phrase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kodekoan/phrasebot/internal/brain"
)

// BrainKey is the single logical brain key holding the phrase mapping.
const BrainKey = "phrases"

// Store persists the phrase mapping in the brain. Every read rebuilds
// the mapping from the stored blob; in-memory phrases are throwaway
// projections, never a cache.
type Store struct {
	brain brain.Brain
}

// NewStore wraps a brain.
func NewStore(b brain.Brain) *Store {
	return &Store{brain: b}
}

// Load returns the full phrase mapping, keyed by normalized name. A
// brain with no phrases yet yields an empty mapping.
func (s *Store) Load(ctx context.Context) (map[string]Record, error) {
	value, ok, err := s.brain.Get(ctx, BrainKey)
	if err != nil {
		return nil, fmt.Errorf("load phrases: %w", err)
	}
	if !ok {
		return map[string]Record{}, nil
	}
	var m map[string]Record
	if err := json.Unmarshal(value, &m); err != nil {
		return nil, fmt.Errorf("decode phrases: %w", err)
	}
	if m == nil {
		m = map[string]Record{}
	}
	return m, nil
}

// Save replaces the stored mapping. Non-alias records with no tidbits
// are pruned here so a phrase that lost its last tidbit disappears from
// the store rather than lingering empty.
func (s *Store) Save(ctx context.Context, m map[string]Record) error {
	for name, rec := range m {
		if rec.Alias == "" && len(rec.Tidbits) == 0 {
			delete(m, name)
		}
	}
	value, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode phrases: %w", err)
	}
	if err := s.brain.Set(ctx, BrainKey, value); err != nil {
		return fmt.Errorf("save phrases: %w", err)
	}
	return nil
}

// SavePhrase writes one phrase's record into the mapping under its
// normalized name and persists the whole mapping. Save's pruning
// applies, so persisting a tidbit-less phrase deletes it.
func (s *Store) SavePhrase(ctx context.Context, p *Phrase) error {
	m, err := s.Load(ctx)
	if err != nil {
		return err
	}
	m[p.Name] = p.ToRecord()
	return s.Save(ctx, m)
}
