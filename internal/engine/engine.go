// Package engine implements the phrase handler: lookup with alias
// resolution, random selection, response rendering, the teach/forget/
// alias/protect mutations, and the per-room "what was that" history.
package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kodekoan/phrasebot/internal/phrase"
	"github.com/kodekoan/phrasebot/internal/robot"
	"github.com/kodekoan/phrasebot/internal/vars"
)

// maxAliasHops bounds alias chains so a loop resolves to an error
// instead of recursing forever.
const maxAliasHops = 10

// ErrAliasLoop is returned when alias resolution exceeds maxAliasHops.
var ErrAliasLoop = errors.New("alias loop detected")

// HistoryEntry is one step of a lookup: either an alias hop (Tidbit
// nil) or the final output (phrase plus the tidbit that was spoken).
type HistoryEntry struct {
	Phrase *phrase.Phrase
	Tidbit *phrase.Tidbit
	Vars   map[string][]string
}

// Options configures an Engine.
type Options struct {
	BotName string
	BaseURL string // base for literal-dump links, no trailing slash
	Vars    vars.Processor
	Logger  *zap.Logger
	Rand    *rand.Rand
}

// Engine orchestrates all phrase operations against the store.
type Engine struct {
	mu      sync.Mutex // serializes load-modify-save mutations
	store   *phrase.Store
	log     *zap.Logger
	rng     *rand.Rand
	botName string
	baseURL string
	vars    vars.Processor

	histMu  sync.Mutex
	history map[string][]HistoryEntry // last lookup, keyed by room
}

// New creates an engine over the store.
func New(st *phrase.Store, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.BotName == "" {
		opts.BotName = "phrasebot"
	}
	return &Engine{
		store:   st,
		log:     opts.Logger,
		rng:     opts.Rand,
		botName: opts.BotName,
		baseURL: opts.BaseURL,
		vars:    opts.Vars,
		history: map[string][]HistoryEntry{},
	}
}

// Resolve normalizes name, looks it up, and chases alias redirects to
// the terminal phrase. Each visited phrase is appended to hist when
// supplied. Returns (nil, nil) when the name, or a link of its alias
// chain, is unknown.
func (e *Engine) Resolve(ctx context.Context, name string, hist *[]HistoryEntry) (*phrase.Phrase, error) {
	m, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return resolve(m, name, hist)
}

func resolve(m map[string]phrase.Record, name string, hist *[]HistoryEntry) (*phrase.Phrase, error) {
	for hops := 0; hops <= maxAliasHops; hops++ {
		clean := phrase.CleanName(name)
		rec, ok := m[clean]
		if !ok {
			return nil, nil
		}
		p := phrase.FromRecord(clean, rec)
		if hist != nil {
			*hist = append(*hist, HistoryEntry{Phrase: p})
		}
		if p.Alias == "" {
			return p, nil
		}
		name = p.Alias
	}
	return nil, ErrAliasLoop
}

// Random picks a uniformly random phrase name and resolves it, so a
// pick landing on an alias still chains. Returns (nil, nil) when the
// store is empty.
func (e *Engine) Random(ctx context.Context, hist *[]HistoryEntry) (*phrase.Phrase, error) {
	m, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return resolve(m, names[e.rng.Intn(len(names))], hist)
}

// RespondWith picks a tidbit from p, substitutes variables, records the
// output on hist, and sends the rendered text through r.
func (e *Engine) RespondWith(r *robot.Response, p *phrase.Phrase, hist *[]HistoryEntry) {
	t, ok := p.Pick(e.rng)
	if !ok {
		return
	}
	out := t.Tidbit
	var used map[string][]string
	if e.vars != nil {
		out, used = e.vars.Process(out, r.Msg.User)
	}
	if hist != nil {
		*hist = append(*hist, HistoryEntry{Phrase: p, Tidbit: &t, Vars: used})
	}

	switch {
	case t.Verb == "<reply>":
		r.Send(out)
	case t.Verb == "<action>":
		r.Emote(out)
	case t.Verb == "is" && p.Name == phrase.CleanName(e.botName):
		r.Send("I am " + out)
	default:
		r.Send(p.DisplayName() + " " + t.Verb + " " + out)
	}
}

// setLastLookup replaces the room's lookup history wholesale.
func (e *Engine) setLastLookup(room string, hist []HistoryEntry) {
	if len(hist) == 0 {
		return
	}
	e.histMu.Lock()
	e.history[room] = hist
	e.histMu.Unlock()
}

// lastLookup returns the room's most recent lookup history, or nil.
func (e *Engine) lastLookup(room string) []HistoryEntry {
	e.histMu.Lock()
	defer e.histMu.Unlock()
	return e.history[room]
}
