// Package prompt asks the user to pick an asset or confirm a compile.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/Norgate-AV/scssc/internal/ui"
	"github.com/Norgate-AV/scssc/internal/utils"
)

// ErrCancelled is returned when input ends or the user cancels a prompt
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks questions on behalf of the compile command
type Prompter interface {
	// Choose returns one of choices; def is preselected
	Choose(question string, choices []string, def string) (string, error)

	// Confirm asks a yes/no question
	Confirm(question string, def bool) (bool, error)
}

// IsTerminal reports whether f is attached to a terminal. Character devices
// such as /dev/null are not terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// LinePrompter reads answers line by line, for pipes and dumb terminals
type LinePrompter struct {
	in     *bufio.Reader
	out    io.Writer
	styles ui.Styles
}

// NewLinePrompter creates a prompter reading from in and writing to out
func NewLinePrompter(in io.Reader, out io.Writer, styles ui.Styles) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out, styles: styles}
}

// Choose accepts a choice by index or by value. Invalid answers are reported
// and the question is asked again.
func (p *LinePrompter) Choose(question string, choices []string, def string) (string, error) {
	for {
		fmt.Fprintf(p.out, " %s [%s]:\n", p.styles.Question.Render(question), p.styles.Comment.Render(def))
		for i, c := range choices {
			fmt.Fprintf(p.out, "  [%s] %s\n", p.styles.Comment.Render(fmt.Sprint(i)), c)
		}
		fmt.Fprint(p.out, " > ")

		answer, err := p.readLine()
		if err != nil {
			return "", err
		}

		if answer == "" {
			return def, nil
		}

		if chosen, ok := matchChoice(answer, choices); ok {
			return chosen, nil
		}

		fmt.Fprintf(p.out, " %s\n\n", p.styles.Error.Render(fmt.Sprintf("Value %q is invalid", answer)))
	}
}

// Confirm treats any answer starting with y as yes and an empty answer as def
func (p *LinePrompter) Confirm(question string, def bool) (bool, error) {
	hint := "yes"
	if !def {
		hint = "no"
	}

	fmt.Fprintf(p.out, " %s (yes/no) [%s]:\n > ", p.styles.Question.Render(question), p.styles.Comment.Render(hint))

	answer, err := p.readLine()
	if err != nil {
		return false, err
	}

	if answer == "" {
		return def, nil
	}

	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		fmt.Fprintln(p.out)
		return "", ErrCancelled
	}

	return strings.TrimSpace(line), nil
}

// matchChoice resolves an answer given as index or value
func matchChoice(answer string, choices []string) (string, bool) {
	if i, ok := utils.ChoiceIndex(answer); ok {
		if i >= 0 && i < len(choices) {
			return choices[i], true
		}

		return "", false
	}

	for _, c := range choices {
		if c == answer {
			return c, true
		}
	}

	return "", false
}
