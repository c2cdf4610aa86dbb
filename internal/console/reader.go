package console

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/termput/termput/internal/input/key"
	"github.com/termput/termput/internal/input/vt100"
	"github.com/termput/termput/internal/log"
)

// DefaultEscTimeout is how long the reader waits for the rest of an
// escape sequence before flushing a lone ESC.
const DefaultEscTimeout = 50 * time.Millisecond

// Reader decodes key events from a terminal file descriptor. A Reader
// owns its parser; run at most one Reader per descriptor.
type Reader struct {
	fd         int
	parser     *vt100.Parser
	escTimeout time.Duration
	onKey      func(key.Event)
}

// NewReader creates a reader for the terminal on fd.
func NewReader(fd int) *Reader {
	return &Reader{
		fd:         fd,
		parser:     vt100.NewParser(),
		escTimeout: DefaultEscTimeout,
	}
}

// SetEscTimeout overrides the idle flush timeout. Configure before Run.
func (r *Reader) SetEscTimeout(d time.Duration) {
	if d > 0 {
		r.escTimeout = d
	}
}

// OnKey sets the callback invoked for every decoded event. Configure
// before Run; the callback runs on Run's goroutine.
func (r *Reader) OnKey(fn func(key.Event)) {
	r.onKey = fn
}

// Run polls the descriptor until the context is cancelled or the
// terminal reaches EOF. Incoming bytes are fed to the parser; when the
// terminal goes idle with a partial sequence pending, the parser is
// flushed so the pending bytes resolve.
func (r *Reader) Run(ctx context.Context) error {
	log.Debug("console reader starting on fd %d", r.fd)
	defer log.Debug("console reader stopped")

	buf := make([]byte, 1024)
	timeoutMs := int(r.escTimeout / time.Millisecond)
	if timeoutMs < 1 {
		timeoutMs = 1
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, timeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("poll terminal: %w", err)
		}

		if n == 0 {
			// Idle. Resolve any partial sequence the parser holds.
			if r.parser.State() != vt100.StateNormal {
				r.emit(r.parser.Flush())
			}
			continue
		}

		if fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 && fds[0].Revents&unix.POLLIN == 0 {
			r.emit(r.parser.Flush())
			return nil
		}

		nr, err := unix.Read(r.fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return fmt.Errorf("read terminal: %w", err)
		}
		if nr == 0 {
			r.emit(r.parser.Flush())
			return nil
		}

		r.emit(r.parser.Feed(buf[:nr]))
	}
}

func (r *Reader) emit(events []key.Event) {
	if r.onKey == nil {
		return
	}
	for _, ev := range events {
		r.onKey(ev)
	}
}
