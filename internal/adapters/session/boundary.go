// Package session implements the login boundary for the command line: when
// the backend ends the session the user is told to log in again.
package session

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/depot/internal/ui/output"
	"go.trai.ch/depot/internal/ui/style"
)

// LoginCommand is the command that starts a new session.
const LoginCommand = "depot login"

// Boundary implements ports.LoginBoundary.
type Boundary struct {
	mu       sync.Mutex
	w        io.Writer
	renderer *lipgloss.Renderer
	reasons  []string
}

// NewBoundary creates a Boundary writing to w (stderr when nil).
func NewBoundary(w io.Writer) *Boundary {
	if w == nil {
		w = os.Stderr
	}
	return &Boundary{
		w:        w,
		renderer: output.NewRenderer(w),
	}
}

// RequireLogin tells the user the session ended and how to start a new one.
func (b *Boundary) RequireLogin(reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reasons = append(b.reasons, reason)

	head := b.renderer.NewStyle().Bold(true).Foreground(style.Yellow).Render(style.Warning + " " + reason)
	hint := b.renderer.NewStyle().Foreground(style.Slate).Render("  run `" + LoginCommand + "` to sign in again")
	_, _ = fmt.Fprintln(b.w, head)
	_, _ = fmt.Fprintln(b.w, hint)
}

// Reasons returns every reason passed to RequireLogin, oldest first.
func (b *Boundary) Reasons() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.reasons...)
}
