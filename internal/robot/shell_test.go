package robot

import (
	"bytes"
	"testing"
)

func TestShellAdapterOutput(t *testing.T) {
	var buf bytes.Buffer
	a := &ShellAdapter{Out: &buf}
	msg := &Message{User: User{Name: "halkeye"}}

	a.Send(msg, "CAPITALS ARE YELLING")
	a.Reply(msg, "Okay.")

	want := "CAPITALS ARE YELLING\n@halkeye Okay.\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
