package prompt

import (
	"io"

	"golang.org/x/term"
)

// terminalReader puts the terminal in raw mode only while a line is being
// read, so output between questions behaves normally.
type terminalReader struct {
	fd   int
	term *term.Terminal
}

func newTerminalReader(fd int, in io.Reader, out io.Writer) *terminalReader {
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	return &terminalReader{fd: fd, term: term.NewTerminal(rw, "")}
}

func (r *terminalReader) readLine(prompt string, candidates []string) (string, error) {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(r.fd, state)

	c := &completer{candidates: candidates, out: r.term}
	r.term.SetPrompt(prompt)
	r.term.AutoCompleteCallback = c.complete
	defer func() { r.term.AutoCompleteCallback = nil }()

	return r.term.ReadLine()
}
