package engine

import "github.com/kodekoan/phrasebot/internal/robot"

// Register wires the engine's command surface onto the robot. Order
// matters: commands come before the teach listeners, and the wildcard
// lookup listener goes last so anything unmatched falls through to it.
func (e *Engine) Register(bot *robot.Robot) {
	bot.Respond(`(?:do something|something random)$`, e.handleRandom)
	bot.Hear(`^(?:do something|something random)$`, e.handleRandom)

	bot.Respond(`(un)?protect\s*(.*)$`, e.handleProtect)
	bot.Respond(`alias (.*?) => (.*?)$`, e.handleAlias)

	bot.Respond(`literal(?:\[([*\d]+)\])?\s+(.*)$`, e.handleLiteral)
	bot.Hear(`^literal(?:\[([*\d]+)\])?\s+(.*)$`, e.handleLiteral)

	bot.Respond(`forget #(\d+)$`, e.handleForgetLegacy)
	bot.Respond(`forget that$`, e.handleForgetThat)
	bot.Respond(`forget (.+)#(\d+)$`, e.handleForget)

	bot.Respond(`what was that\??$`, e.handleWhatWasThat)

	// Teach listeners. The bracketed-verb forms are explicit triggers
	// (forced); the free-form is/are forms are incidental sentences.
	bot.Respond(`(.*?)\s+(<\w+(?:'t)?>)\s*(.*)`, func(r *robot.Response) { e.learn(r, true) })
	bot.Respond(`(.*?)(<'s>)\s+(.*)`, func(r *robot.Response) { e.learn(r, true) })
	bot.Respond(`(.*?)\s+(is(?: also)?|are)\s+(.*)`, func(r *robot.Response) { e.learn(r, false) })
	bot.Hear(`^(.*?)\s+(<\w+(?:'t)?>)\s*(.*)`, func(r *robot.Response) { e.learn(r, true) })
	bot.Hear(`^(.*?)(<'s>)\s+(.*)`, func(r *robot.Response) { e.learn(r, true) })
	bot.Hear(`^(.*?)\s+(is(?: also)?|are)\s+(.*)`, func(r *robot.Response) { e.learn(r, false) })

	bot.Hear(`^(.*?)\??$`, e.handleLookup)
}
