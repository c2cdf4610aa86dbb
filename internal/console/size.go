package console

import (
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/termput/termput/internal/log"
)

// WindowSize returns the terminal dimensions of fd in character cells.
func WindowSize(fd int) (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("query window size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// NotifyResize invokes fn with the new dimensions of fd every time the
// terminal is resized. The returned function stops the notifications.
func NotifyResize(fd int, fn func(cols, rows int)) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ch:
				cols, rows, err := WindowSize(fd)
				if err != nil {
					log.Warn("resize query failed: %v", err)
					continue
				}
				fn(cols, rows)
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
