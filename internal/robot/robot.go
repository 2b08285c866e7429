// Package robot is a minimal hubot-shaped message dispatcher: regexp
// listeners registered as "hear" (any message) or "respond" (addressed
// to the bot), matched in registration order until a handler finishes
// the message.
package robot

import (
	"context"
	"math/rand"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// User is the speaker of a message.
type User struct {
	Name  string
	Room  string
	Roles []string
}

// Message is one inbound line of chat.
type Message struct {
	ID        string
	User      User
	Raw       string // line as received
	Text      string // body with any bot-address prefix stripped
	Addressed bool
	done      bool
}

// Adapter delivers outbound text to the transport.
type Adapter interface {
	// Send emits text with no speaker mention.
	Send(msg *Message, text string)
	// Reply emits text prefixed with a mention of the speaker.
	Reply(msg *Message, text string)
}

// Emoter is an optional adapter capability for third-person actions.
// Adapters without it get a conventional "/me" fallback.
type Emoter interface {
	Emote(msg *Message, text string)
}

// Handler processes one matched message.
type Handler func(*Response)

// Response is the handler's view of a matched message.
type Response struct {
	bot   *Robot
	ctx   context.Context
	Msg   *Message
	Match []string // capture groups, Match[0] is the whole match
}

// Context returns the context of the receive that produced this response.
func (r *Response) Context() context.Context { return r.ctx }

// Send emits text with no mention prefix.
func (r *Response) Send(text string) { r.bot.adapter.Send(r.Msg, text) }

// Reply emits text addressed back at the speaker.
func (r *Response) Reply(text string) { r.bot.adapter.Reply(r.Msg, text) }

// Emote emits a third-person action, falling back to "/me <text>" when
// the adapter has no emote channel.
func (r *Response) Emote(text string) {
	if e, ok := r.bot.adapter.(Emoter); ok {
		e.Emote(r.Msg, text)
		return
	}
	r.bot.adapter.Send(r.Msg, "/me "+text)
}

// Finish stops any further listeners from seeing this message.
func (r *Response) Finish() { r.Msg.done = true }

type listener struct {
	re      *regexp.Regexp
	respond bool
	fn      Handler
}

// Robot routes incoming lines to listeners.
type Robot struct {
	name      string
	adapter   Adapter
	log       *zap.Logger
	entropy   *rand.Rand
	addressRE *regexp.Regexp
	listeners []listener
}

// New creates a robot named name sending through adapter. A nil logger
// disables logging.
func New(name string, adapter Adapter, log *zap.Logger) *Robot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Robot{
		name:      name,
		adapter:   adapter,
		log:       log,
		entropy:   rand.New(rand.NewSource(time.Now().UnixNano())),
		addressRE: regexp.MustCompile(`(?i)^\s*@?` + regexp.QuoteMeta(name) + `[:,]?\s+`),
	}
}

// Name returns the bot's name.
func (b *Robot) Name() string { return b.name }

// Hear registers a listener matched against every message body.
func (b *Robot) Hear(pattern string, fn Handler) {
	b.listeners = append(b.listeners, listener{
		re: regexp.MustCompile(`(?i)` + pattern),
		fn: fn,
	})
}

// Respond registers a listener matched only when the message was
// addressed to the bot. The pattern is anchored at the start of the
// body, after the address prefix.
func (b *Robot) Respond(pattern string, fn Handler) {
	b.listeners = append(b.listeners, listener{
		re:      regexp.MustCompile(`(?i)^\s*(?:` + pattern + `)`),
		respond: true,
		fn:      fn,
	})
}

// Receive dispatches one line. Listeners run in registration order;
// each whose pattern matches gets a Response, until one calls Finish.
func (b *Robot) Receive(ctx context.Context, user User, text string) {
	msg := &Message{
		ID:   ulid.MustNew(ulid.Timestamp(time.Now()), b.entropy).String(),
		User: user,
		Raw:  text,
		Text: text,
	}
	if loc := b.addressRE.FindStringIndex(text); loc != nil {
		msg.Text = text[loc[1]:]
		msg.Addressed = true
	}

	b.log.Debug("message received",
		zap.String("message_id", msg.ID),
		zap.String("user", user.Name),
		zap.String("room", user.Room),
		zap.Bool("addressed", msg.Addressed),
	)

	for _, l := range b.listeners {
		if msg.done {
			return
		}
		if l.respond && !msg.Addressed {
			continue
		}
		m := l.re.FindStringSubmatch(msg.Text)
		if m == nil {
			continue
		}
		l.fn(&Response{bot: b, ctx: ctx, Msg: msg, Match: m})
	}
}
