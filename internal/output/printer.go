// Package output writes the console report of a cleanup pass.
package output

import (
	"fmt"
	"io"
	"os"
)

// Printer sends progress to the terminal and failures to the diagnostic stream.
type Printer struct {
	terminal  io.Writer
	diagnosis io.Writer
}

// NewPrinter returns a Printer; nil writers default to stdout and stderr.
func NewPrinter(terminal, diagnosis io.Writer) *Printer {
	if terminal == nil {
		terminal = os.Stdout
	}
	if diagnosis == nil {
		diagnosis = os.Stderr
	}
	return &Printer{terminal: terminal, diagnosis: diagnosis}
}

func (p *Printer) Out(format string, values ...any) {
	fmt.Fprintf(p.terminal, format, values...)
}

func (p *Printer) Err(format string, values ...any) {
	fmt.Fprintf(p.diagnosis, format, values...)
}
