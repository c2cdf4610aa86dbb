package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/termput/termput/internal/input/key"
	"github.com/termput/termput/internal/input/vt100"
)

// ErrUnknownParser is returned when a handle does not name a live parser.
var ErrUnknownParser = fmt.Errorf("unknown parser handle")

// Handle identifies one parser held by a Registry. Handles start at 1;
// zero is never issued, so callers can use it as "no parser".
type Handle uint32

// Registry owns a set of parsers addressed by handle. It is safe for
// concurrent use; each individual parser is still fed from one stream at
// a time, which the registry enforces by holding its lock across calls.
type Registry struct {
	mu      sync.Mutex
	parsers map[Handle]*vt100.Parser
	nextID  Handle
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		parsers: make(map[Handle]*vt100.Parser),
		nextID:  1,
	}
}

// Create allocates a new parser and returns its handle.
func (r *Registry) Create() Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.nextID
	r.nextID++
	r.parsers[h] = vt100.NewParser()
	return h
}

// Feed passes data to the parser named by h.
func (r *Registry) Feed(h Handle, data []byte) ([]key.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.parsers[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownParser, h)
	}
	return p.Feed(data), nil
}

// Flush resolves pending input on the parser named by h.
func (r *Registry) Flush(h Handle) ([]key.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.parsers[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownParser, h)
	}
	return p.Flush(), nil
}

// Reset clears the parser named by h back to its initial state.
func (r *Registry) Reset(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.parsers[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownParser, h)
	}
	p.Reset()
	return nil
}

// State returns the current state of the parser named by h.
func (r *Registry) State(h Handle) (vt100.ParserState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.parsers[h]
	if !ok {
		return vt100.StateNormal, fmt.Errorf("%w: %d", ErrUnknownParser, h)
	}
	return p.State(), nil
}

// Destroy releases the parser named by h. Destroying an unknown handle
// returns ErrUnknownParser; handles are never reused.
func (r *Registry) Destroy(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.parsers[h]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownParser, h)
	}
	delete(r.parsers, h)
	return nil
}

// Len returns the number of live parsers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.parsers)
}

// Handles returns the live handles in ascending order.
func (r *Registry) Handles() []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Handle, 0, len(r.parsers))
	for h := range r.parsers {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
