// Package console implements the interactive menu: the Display collaborator
// and the InteractionLoop state machine driving the conversion flow.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Display is everything the loop needs from the user's console.
type Display interface {
	// Show writes a formatted line.
	Show(format string, args ...any)
	// Heading writes a highlighted line.
	Heading(msg string)
	// Notice writes an informational line that is not an error.
	Notice(msg string)
	// Error writes a failure line.
	Error(msg string)
	// Prompt writes label and reads one line of input with the line ending
	// removed. It returns io.EOF once input is exhausted.
	Prompt(label string) (string, error)
	// WaitForKey writes msg and blocks until the user acknowledges it.
	WaitForKey(msg string) error
}

// Terminal is a Display over a reader and writer. When the reader is an
// interactive terminal, WaitForKey returns on a single keypress; otherwise it
// consumes one line.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	fd    int
	isTTY bool

	heading *color.Color
	notice  *color.Color
	failure *color.Color
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		in:      bufio.NewReader(in),
		out:     out,
		fd:      -1,
		heading: color.New(color.FgCyan, color.Bold),
		notice:  color.New(color.FgYellow),
		failure: color.New(color.FgRed),
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		t.isTTY = true
	}
	return t
}

func (t *Terminal) Show(format string, args ...any) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *Terminal) Heading(msg string) {
	t.heading.Fprintln(t.out, msg)
}

func (t *Terminal) Notice(msg string) {
	t.notice.Fprintln(t.out, msg)
}

func (t *Terminal) Error(msg string) {
	t.failure.Fprintln(t.out, "Error: "+msg)
}

func (t *Terminal) Prompt(label string) (string, error) {
	fmt.Fprintf(t.out, "%s\n> ", label)
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) WaitForKey(msg string) error {
	fmt.Fprintln(t.out, msg)
	if !t.isTTY {
		_, err := t.in.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("failed to switch terminal to raw mode: %w", err)
	}
	defer term.Restore(t.fd, state)

	_, err = t.in.ReadByte()
	return err
}
