package console

import (
	"fmt"
	"sync"

	"golang.org/x/term"
)

// RawMode restores the terminal to its original state when released.
type RawMode struct {
	fd    int
	state *term.State

	mu       sync.Mutex
	restored bool
}

// MakeRaw puts the terminal on fd into raw mode and returns a guard
// that undoes it.
func MakeRaw(fd int) (*RawMode, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	return &RawMode{fd: fd, state: state}, nil
}

// IsTerminal reports whether fd is attached to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Restore returns the terminal to its pre-raw state. Safe to call more
// than once; only the first call restores.
func (m *RawMode) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.restored {
		return nil
	}
	m.restored = true
	if err := term.Restore(m.fd, m.state); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}
