package phrase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kodekoan/phrasebot/internal/brain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	b, err := brain.NewSQLiteBrain(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create brain: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return NewStore(b)
}

func TestLoadEmptyBrain(t *testing.T) {
	s := newTestStore(t)

	m, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty mapping, got %d entries", len(m))
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := map[string]Record{
		"dammit": {
			Fact:    "dammit",
			Tidbits: []Tidbit{{Tidbit: "swear jar", Verb: "<action>", Creator: "halkeye"}},
		},
		"lolalias": {Alias: "rofl", Fact: "lolalias"},
		"rofl": {
			Fact:    "rofl",
			Tidbits: []Tidbit{{Tidbit: "I am also amused", Verb: "<reply>"}},
		},
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	m, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(m) != 3 {
		t.Fatalf("expected 3 phrases, got %d", len(m))
	}
	if m["lolalias"].Alias != "rofl" {
		t.Errorf("alias = %q", m["lolalias"].Alias)
	}
	if got := m["dammit"].Tidbits[0].Creator; got != "halkeye" {
		t.Errorf("creator = %q", got)
	}
}

func TestSavePrunesEmptyPhrases(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := map[string]Record{
		"kept":  {Fact: "kept", Tidbits: []Tidbit{{Tidbit: "x", Verb: "is"}}},
		"empty": {Fact: "empty"},
		"alias": {Alias: "kept", Fact: "alias"},
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	m, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := m["empty"]; ok {
		t.Error("tidbit-less phrase survived save")
	}
	if _, ok := m["alias"]; !ok {
		t.Error("alias phrase was pruned")
	}
	if _, ok := m["kept"]; !ok {
		t.Error("phrase with tidbits was pruned")
	}
}

func TestSavePhraseDeletesWhenEmptied(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := New("dammit", "dammit")
	p.AddTidbit(Tidbit{Tidbit: "swear jar", Verb: "<action>"})
	if err := s.SavePhrase(ctx, p); err != nil {
		t.Fatalf("save phrase: %v", err)
	}

	p.Tidbits = nil
	if err := s.SavePhrase(ctx, p); err != nil {
		t.Fatalf("save emptied phrase: %v", err)
	}

	m, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := m["dammit"]; ok {
		t.Error("emptied phrase should have been deleted")
	}
}
