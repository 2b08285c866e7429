package engine

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kodekoan/phrasebot/internal/phrase"
	"github.com/kodekoan/phrasebot/internal/robot"
)

func (e *Engine) handleRandom(r *robot.Response) {
	// Registered as both respond and hear; finish so an addressed
	// command doesn't match twice.
	r.Finish()
	var hist []HistoryEntry
	p, err := e.Random(r.Context(), &hist)
	if err != nil {
		e.log.Error("random", zap.Error(err))
		return
	}
	if p == nil {
		return
	}
	e.RespondWith(r, p, &hist)
	e.setLastLookup(r.Msg.User.Room, hist)
}

func (e *Engine) handleLookup(r *robot.Response) {
	name := strings.TrimSpace(r.Match[1])
	if len(phrase.CleanName(name)) < 3 {
		return
	}
	var hist []HistoryEntry
	p, err := e.Resolve(r.Context(), name, &hist)
	if err != nil {
		e.log.Error("lookup", zap.Error(err), zap.String("name", name))
		return
	}
	if p == nil {
		return
	}
	e.RespondWith(r, p, &hist)
	e.setLastLookup(r.Msg.User.Room, hist)
}

func (e *Engine) handleProtect(r *robot.Response) {
	protect := r.Match[1] == ""
	name := strings.TrimSpace(r.Match[2])

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.Resolve(r.Context(), name, nil)
	if err != nil {
		e.log.Error("protect", zap.Error(err))
		return
	}
	if p == nil {
		r.Reply("No such phrase.")
		return
	}
	r.Finish()
	if p.ReadOnly == protect {
		r.Reply("I already had it that way.")
		return
	}
	p.ReadOnly = protect
	if err := e.store.SavePhrase(r.Context(), p); err != nil {
		e.log.Error("protect: save", zap.Error(err))
		return
	}
	r.Reply("Okay.")
}

func (e *Engine) handleAlias(r *robot.Response) {
	srcName := strings.TrimSpace(r.Match[1])
	targetName := strings.TrimSpace(r.Match[2])
	user := r.Msg.User

	e.mu.Lock()
	defer e.mu.Unlock()

	src, err := e.Resolve(r.Context(), srcName, nil)
	if err != nil {
		e.log.Error("alias", zap.Error(err))
		return
	}
	if src != nil {
		r.Reply(fmt.Sprintf("Sorry, there is already a phrase for '%s'.", srcName))
		return
	}
	target, err := e.Resolve(r.Context(), targetName, nil)
	if err != nil {
		e.log.Error("alias", zap.Error(err))
		return
	}
	if target == nil {
		r.Reply(fmt.Sprintf("Sorry, there is no phrase for the target '%s'.", targetName))
		return
	}
	if !target.CanAlias(user.Roles) {
		e.log.Debug("phrase is protected", zap.String("phrase", target.Name))
		r.Reply("Sorry, that phrase is protected")
		return
	}
	r.Finish()
	e.log.Info("aliased",
		zap.String("user", user.Name),
		zap.String("src", srcName),
		zap.String("target", targetName),
	)
	p := phrase.New(phrase.CleanName(srcName), srcName)
	p.Alias = target.Name
	p.Creator = user.Name
	p.Room = user.Room
	if err := e.store.SavePhrase(r.Context(), p); err != nil {
		e.log.Error("alias: save", zap.Error(err))
		return
	}
	r.Reply("Okay.")
}

func (e *Engine) handleForgetLegacy(r *robot.Response) {
	r.Reply(`Sorry, syntax is now "forget <phrase>#<index from 0>" or "forget that"`)
}

func (e *Engine) handleForgetThat(r *robot.Response) {
	r.Reply("Sorry, 'forget that' is not implemented yet")
}

func (e *Engine) handleForget(r *robot.Response) {
	name := strings.TrimSpace(r.Match[1])
	n, _ := strconv.Atoi(r.Match[2])
	user := r.Msg.User

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.Resolve(r.Context(), name, nil)
	if err != nil {
		e.log.Error("forget", zap.Error(err))
		return
	}
	if p == nil {
		r.Reply("No such phrase")
		return
	}
	if !p.CanEdit(user.Roles) {
		r.Reply(fmt.Sprintf("Sorry, you don't have permissions to edit '%s'.", p.Name))
		return
	}
	if n <= 0 {
		r.Reply("Sorry, you must provide a number greater than 0 (as this is 1 based)")
		return
	}
	if n > len(p.Tidbits) {
		r.Reply(fmt.Sprintf("Can't find tidbit #%d", n))
		return
	}
	t := p.Tidbits[n-1]
	p.Tidbits = append(p.Tidbits[:n-1], p.Tidbits[n:]...)
	if err := e.store.SavePhrase(r.Context(), p); err != nil {
		e.log.Error("forget: save", zap.Error(err))
		return
	}
	r.Reply(fmt.Sprintf("Deleted tidbit: %s|%s", t.Verb, t.Tidbit))
}

// Literal renders a phrase's full tidbit list inline, or a link to the
// HTTP dump when the list is longer than ten entries.
func (e *Engine) handleLiteral(r *robot.Response) {
	// Registered as both respond and hear; finish so an addressed
	// command doesn't match twice.
	r.Finish()
	name := strings.TrimSpace(r.Match[2])
	p, err := e.Resolve(r.Context(), name, nil)
	if err != nil {
		e.log.Error("literal", zap.Error(err))
		return
	}
	if p == nil {
		r.Reply("No such phrase")
		return
	}
	if len(p.Tidbits) > 10 {
		r.Reply(e.baseURL + "/" + e.botName + "/phrase/" + url.PathEscape(name))
		return
	}
	parts := make([]string, 0, len(p.Tidbits))
	for _, t := range p.Tidbits {
		parts = append(parts, t.Verb+" "+t.Tidbit)
	}
	r.Reply(fmt.Sprintf("%s (%d): %s", p.DisplayName(), len(p.Tidbits), strings.Join(parts, "|")))
}

func (e *Engine) handleWhatWasThat(r *robot.Response) {
	hist := e.lastLookup(r.Msg.User.Room)
	if len(hist) == 0 {
		return
	}
	r.Finish()
	r.Reply(formatTrace(hist))
}

// formatTrace renders a lookup history:
//
//	That was 'dammit' (#0): <action> takes a quarter from $who ...
//	That was 'lolalias' => 'rofl' (#0): <reply> I am also amused
//
// The index is the tidbit's 0-based position in its phrase, located by
// first text match.
func formatTrace(hist []HistoryEntry) string {
	last := hist[len(hist)-1]
	idx := -1
	for i, t := range last.Phrase.Tidbits {
		if t.Tidbit == last.Tidbit.Tidbit {
			idx = i
			break
		}
	}

	parts := []string{"That was"}
	if len(hist) > 2 {
		for _, hop := range hist[:len(hist)-2] {
			parts = append(parts, fmt.Sprintf("'%s' =>", hop.Phrase.Name))
		}
	}
	parts = append(parts,
		fmt.Sprintf("'%s'", last.Phrase.Name),
		fmt.Sprintf("(#%d):", idx),
		last.Tidbit.Verb,
		last.Tidbit.Tidbit,
	)
	if len(last.Vars) > 0 {
		parts = append(parts, ";", "vars used:", formatVars(last.Vars))
	}
	return strings.Join(parts, " ")
}

func formatVars(used map[string][]string) string {
	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, fmt.Sprintf("'%s' => [ '%s' ]", name, strings.Join(used[name], "', '")))
	}
	return "{ " + strings.Join(entries, ", ") + " }"
}
