package cleaner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirmer asks the user before snapshots are deleted or moved.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// TerminalConfirmer prompts on an interactive terminal. When its input is
// not a terminal, nobody can answer, so it agrees without asking.
type TerminalConfirmer struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalConfirmer prompts on stdout and reads the answer from stdin.
func NewTerminalConfirmer() *TerminalConfirmer {
	return &TerminalConfirmer{In: os.Stdin, Out: os.Stdout}
}

func (c *TerminalConfirmer) Confirm(question string) (bool, error) {
	if !term.IsTerminal(int(c.In.Fd())) {
		return true, nil
	}
	return ask(c.In, c.Out, question)
}

func ask(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
