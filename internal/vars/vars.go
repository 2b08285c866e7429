// Package vars substitutes variables in tidbit text before rendering.
package vars

import (
	"strings"

	"github.com/kodekoan/phrasebot/internal/robot"
)

// Processor rewrites tidbit text for output. used maps each variable
// name to the values substituted for it, for "what was that" traces.
type Processor interface {
	Process(text string, user robot.User) (out string, used map[string][]string)
}

// Who replaces $who with the speaking user's name.
type Who struct{}

func (Who) Process(text string, user robot.User) (string, map[string][]string) {
	if !strings.Contains(text, "$who") {
		return text, nil
	}
	return strings.ReplaceAll(text, "$who", user.Name),
		map[string][]string{"who": {user.Name}}
}
