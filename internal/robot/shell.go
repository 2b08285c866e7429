package robot

import (
	"fmt"
	"io"
)

// ShellAdapter writes outbound messages to a writer, one per line.
// Replies carry an @mention of the speaker the way chat networks do,
// so transcripts read the same as in-channel output.
type ShellAdapter struct {
	Out io.Writer
}

func (a *ShellAdapter) Send(msg *Message, text string) {
	fmt.Fprintln(a.Out, text)
}

func (a *ShellAdapter) Reply(msg *Message, text string) {
	fmt.Fprintf(a.Out, "@%s %s\n", msg.User.Name, text)
}
