// Package prompt asks the user for one line at a time, with tab completion
// when stdin is a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dkarlovi/papr/file"
	"github.com/mattn/go-isatty"
)

// ErrCancelled is returned when input ends (Ctrl-D, closed pipe) before an
// answer was given.
var ErrCancelled = errors.New("input cancelled")

const DefaultRetries = 3

// InputRequiredError is returned when a question without default was
// answered with empty lines too many times.
type InputRequiredError struct {
	Label    string
	Attempts int
}

func (e *InputRequiredError) Error() string {
	return fmt.Sprintf("%s is required (no answer after %d attempts)", e.Label, e.Attempts)
}

// Question is one prompt. An empty Default makes the answer required.
// Candidates feed tab completion.
type Question struct {
	Label      string
	Default    string
	Candidates []string
}

func (q Question) prompt() string {
	if q.Default != "" {
		return fmt.Sprintf("%s [%s]: ", q.Label, q.Default)
	}
	return q.Label + ": "
}

type lineReader interface {
	readLine(prompt string, candidates []string) (string, error)
}

type Prompter struct {
	lines   lineReader
	out     io.Writer
	Retries int
}

// New returns a Prompter reading plain lines from in, without completion.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		lines:   &scanReader{scanner: bufio.NewScanner(in), out: out},
		out:     out,
		Retries: DefaultRetries,
	}
}

// Stdio returns a terminal Prompter with completion when stdin is a
// terminal, and a plain one otherwise.
func Stdio() *Prompter {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) {
		return New(os.Stdin, os.Stdout)
	}
	return &Prompter{
		lines:   newTerminalReader(int(fd), os.Stdin, os.Stdout),
		out:     os.Stdout,
		Retries: DefaultRetries,
	}
}

// Out is where the prompter writes; callers use it for messages that
// belong between questions.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Ask shows q and returns the trimmed answer, the default for an empty
// answer, ErrCancelled at end of input, or an InputRequiredError once
// Retries empty answers were given to a required question.
func (p *Prompter) Ask(q Question) (string, error) {
	retries := p.Retries
	if retries < 1 {
		retries = 1
	}

	for attempt := 1; attempt <= retries; attempt++ {
		line, err := p.lines.readLine(q.prompt(), q.Candidates)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", ErrCancelled
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", q.Label, err)
		}

		if answer := file.Trim(line); answer != "" {
			return answer, nil
		}
		if q.Default != "" {
			return q.Default, nil
		}
		if attempt < retries {
			fmt.Fprintf(p.out, "%s is required.\n", q.Label)
		}
	}

	return "", &InputRequiredError{Label: q.Label, Attempts: retries}
}

type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *scanReader) readLine(prompt string, _ []string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}
