package main

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

// terminal bundles the streams a command talks to.
type terminal struct {
	in  *bufio.Reader
	out io.Writer
	// readSecret reads a line without echo. Nil reads from in.
	readSecret func() (string, error)
}

func newTerminal() *terminal {
	t := &terminal{
		in:  bufio.NewReader(os.Stdin),
		out: color.Output,
	}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		t.readSecret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(t.out)
			return string(b), err
		}
	}
	return t
}

var (
	errorStyle   = color.New(color.FgRed)
	successStyle = color.New(color.FgGreen)
	warningStyle = color.New(color.FgYellow)
	idStyle      = color.New(color.FgCyan)
)

func (t *terminal) println(a ...interface{}) {
	fmt.Fprintln(t.out, a...)
}

func (t *terminal) printf(format string, a ...interface{}) {
	fmt.Fprintf(t.out, format, a...)
}

func (t *terminal) failure(msg string) {
	errorStyle.Fprintln(t.out, msg)
}

func (t *terminal) success(msg string) {
	successStyle.Fprintln(t.out, msg)
}

func (t *terminal) warning(msg string) {
	warningStyle.Fprintln(t.out, msg)
}

func (t *terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// prompt asks for a value until a non-empty one is entered.
func (t *terminal) prompt(label string) (string, error) {
	for {
		t.printf("%s: ", label)
		value, err := t.readLine()
		if err != nil {
			return "", err
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, nil
		}
	}
}

// promptSecret asks for a value without echoing it when attached to a terminal.
func (t *terminal) promptSecret(label string) (string, error) {
	for {
		t.printf("%s: ", label)
		var (
			value string
			err   error
		)
		if t.readSecret != nil {
			value, err = t.readSecret()
		} else {
			value, err = t.readLine()
		}
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
	}
}

// promptConfirmedSecret asks for a secret twice until both entries match.
func (t *terminal) promptConfirmedSecret(label string) (string, error) {
	for {
		first, err := t.promptSecret(label)
		if err != nil {
			return "", err
		}
		second, err := t.promptSecret("Repeat for confirmation")
		if err != nil {
			return "", err
		}
		if first == second {
			return first, nil
		}
		t.failure("Error: The two entered values do not match.")
	}
}

// confirm asks a yes/no question defaulting to no.
func (t *terminal) confirm(question string) (bool, error) {
	t.printf("%s [y/N]: ", question)
	answer, err := t.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			t.println()
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
