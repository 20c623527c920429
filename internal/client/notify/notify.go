// Package notify delivers short user-facing status messages, the CLI
// equivalent of toasts ("Note created", "Login successful!").
package notify

import (
	"fmt"
	"io"
)

// Kind classifies a notification for presentation.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

// Notifier is the capability handed to command handlers so they can report
// outcomes without knowing how messages are rendered.
type Notifier interface {
	Notify(kind Kind, msg string)
}

// Writer renders notifications as plain lines on an io.Writer, prefixing
// errors so they stand out in a scrollback.
type Writer struct {
	Out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{Out: out}
}

func (w *Writer) Notify(kind Kind, msg string) {
	switch kind {
	case KindError:
		fmt.Fprintln(w.Out, "Error:", msg)
	default:
		fmt.Fprintln(w.Out, msg)
	}
}

// Func adapts a function to the Notifier interface, handy in tests.
type Func func(kind Kind, msg string)

func (f Func) Notify(kind Kind, msg string) { f(kind, msg) }
