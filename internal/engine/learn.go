package engine

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/kodekoan/phrasebot/internal/phrase"
	"github.com/kodekoan/phrasebot/internal/robot"
)

var (
	quoteRE   = regexp.MustCompile(`^[^a-zA-Z]*<.?\S+>`)
	verbTagRE = regexp.MustCompile(`^<(action|reply)>\s*(.*)`)
)

// learn is the teach path shared by the free-form "X is Y" listeners
// and the explicit "<verb>" tag listeners (forced). It always finishes
// the message: a teach attempt, even a rejected one, is not a lookup.
func (e *Engine) learn(r *robot.Response, forced bool) {
	r.Finish()
	fact := strings.TrimSpace(r.Match[1])
	verb := strings.TrimSpace(r.Match[2])
	tidbit := strings.TrimSpace(r.Match[3])
	user := r.Msg.User

	if !r.Msg.Addressed && quoteRE.MatchString(fact) {
		e.log.Debug("not learning from what seems to be a chat quote", zap.String("fact", fact))
		return
	}
	if !r.Msg.Addressed && !forced && strings.Contains(fact, "=~") {
		e.log.Debug("not learning what looks like a botched =~ query", zap.String("fact", fact))
		r.Reply("Fix your =~ command.")
		return
	}

	if fact == "you" && verb == "are" {
		fact = e.botName
		verb = "is"
	} else if fact == "I" && verb == "am" {
		fact = user.Name
		verb = "is"
	}

	if strings.EqualFold(verb, "<alias>") {
		r.Reply("please use the 'alias' command.")
		return
	}

	if m := verbTagRE.FindStringSubmatch(tidbit); m != nil {
		verb = "<" + m[1] + ">"
		tidbit = m[2]
	} else if strings.EqualFold(verb, "is also") {
		verb = "is"
	} else if forced && verb != "<action>" && verb != "<reply>" {
		verb = strings.TrimSuffix(strings.TrimPrefix(verb, "<"), ">")
	}

	clean := phrase.CleanName(fact)
	if clean == "" {
		return
	}
	if clean == phrase.CleanName(user.Name) || clean == phrase.CleanName(user.Name+" quotes") {
		e.log.Debug("not allowing a user to edit their own phrase", zap.String("user", user.Name))
		r.Reply("Please don't edit your own phrases.")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ctx := r.Context()
	p, err := e.Resolve(ctx, fact, nil)
	if err != nil {
		e.log.Error("learn: resolve", zap.Error(err))
		return
	}
	if p == nil {
		p = phrase.New(clean, fact)
		p.Creator = user.Name
		p.Room = user.Room
	} else if !p.CanEdit(user.Roles) {
		e.log.Debug("phrase is protected", zap.String("phrase", p.Name))
		r.Reply("Sorry, that phrase is protected")
		return
	}

	if p.HasTidbit(tidbit) {
		r.Reply("I already had it that way")
		return
	}

	p.AddTidbit(phrase.Tidbit{Tidbit: tidbit, Verb: verb, Creator: user.Name, Room: user.Room})
	if err := e.store.SavePhrase(ctx, p); err != nil {
		e.log.Error("learn: save", zap.Error(err))
		return
	}
	e.log.Debug("taught",
		zap.String("user", user.Name),
		zap.String("room", user.Room),
		zap.String("phrase", p.Name),
		zap.String("verb", verb),
		zap.Int("tidbits", len(p.Tidbits)),
	)
	if r.Msg.Addressed {
		r.Reply("Okay.")
	}
}
