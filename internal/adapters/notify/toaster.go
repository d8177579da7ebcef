// Package notify renders mutation feedback as one-line toasts.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/depot/internal/ui/output"
	"go.trai.ch/depot/internal/ui/style"
)

// Toaster implements ports.Notifier for the terminal.
type Toaster struct {
	mu      sync.Mutex
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	quiet   bool
}

// NewToaster creates a Toaster writing to w (stderr when nil).
func NewToaster(w io.Writer) *Toaster {
	if w == nil {
		w = os.Stderr
	}
	r := output.NewRenderer(w)
	return &Toaster{
		w:       w,
		success: r.NewStyle().Foreground(style.Green),
		failure: r.NewStyle().Bold(true).Foreground(style.Red),
	}
}

// SetQuiet suppresses success toasts. Errors are always shown.
func (t *Toaster) SetQuiet(quiet bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.quiet = quiet
}

// Success shows msg with a check mark.
func (t *Toaster) Success(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.quiet {
		return
	}
	_, _ = fmt.Fprintln(t.w, t.success.Render(style.Check+" "+msg))
}

// Error shows msg with a cross.
func (t *Toaster) Error(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.w, t.failure.Render(style.Cross+" "+msg))
}
