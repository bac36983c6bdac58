// Package console reads line-oriented answers and drives numbered menus.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on out and reads one line of answer from in
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Ask writes prompt and returns the next input line with surrounding whitespace removed.
// It returns io.EOF once the input is exhausted.
func (p *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Command is one entry of a Menu
type Command struct {
	Key   string
	Label string
	// Run is called when Key is chosen. Exit commands may leave it nil.
	Run  func(ctx context.Context) error
	Exit bool
}

// Menu is a command table driven by a read-evaluate loop
type Menu struct {
	Header   string // printed above the options
	Indent   string // prefix of every option line
	Prompt   string
	Invalid  string // printed for unknown choices
	Goodbye  string // printed when an exit command is chosen
	Commands []Command
}

// Run shows the menu and dispatches choices until an exit command is chosen,
// the input ends or ctx is cancelled. A command error is reported and the loop goes on;
// io.EOF from a command ends the menu quietly.
func (m *Menu) Run(ctx context.Context, p *Prompter) error {
	dispatch := make(map[string]Command, len(m.Commands))
	for _, c := range m.Commands {
		dispatch[c.Key] = c
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(p.out, "\n%s\n", m.Header)
		for _, c := range m.Commands {
			fmt.Fprintf(p.out, "%s%s. %s\n", m.Indent, c.Key, c.Label)
		}

		choice, err := p.Ask(m.Prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		cmd, ok := dispatch[choice]
		if !ok {
			fmt.Fprintln(p.out, m.Invalid)
			continue
		}
		if cmd.Exit {
			fmt.Fprintln(p.out, m.Goodbye)
			return nil
		}
		if cmd.Run == nil {
			continue
		}

		if err := cmd.Run(ctx); err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, context.Canceled):
				return err
			default:
				fmt.Fprintf(p.out, "Error: %v\n", err)
			}
		}
	}
}
