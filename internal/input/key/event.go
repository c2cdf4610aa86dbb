package key

import (
	"fmt"
)

// Event represents a single decoded key press.
//
// Raw holds exactly the bytes consumed to produce the event. Text is set
// only when those bytes carry displayable content: a printable character or
// a bracketed paste payload that decoded as valid UTF-8.
//
// Events are immutable once constructed; the constructors copy the raw
// bytes so later reuse of the caller's buffer cannot alias into an event.
type Event struct {
	// Key is the decoded key symbol.
	Key Key

	// Raw contains the bytes consumed for this event.
	Raw []byte

	// Text is the decoded UTF-8 text, if any.
	Text string
}

// NewEvent creates an event without text content.
func NewEvent(k Key, raw []byte) Event {
	return Event{Key: k, Raw: append([]byte(nil), raw...)}
}

// NewTextEvent creates an event carrying decoded text.
func NewTextEvent(k Key, raw []byte, text string) Event {
	return Event{Key: k, Raw: append([]byte(nil), raw...), Text: text}
}

// HasText returns true if the event carries decoded text.
func (e Event) HasText() bool {
	return e.Text != ""
}

// Equal reports whether two events are identical.
func (e Event) Equal(other Event) bool {
	if e.Key != other.Key || e.Text != other.Text {
		return false
	}
	if len(e.Raw) != len(other.Raw) {
		return false
	}
	for i := range e.Raw {
		if e.Raw[i] != other.Raw[i] {
			return false
		}
	}
	return true
}

// String returns a debug representation such as "Up <1b5b41>" or
// `NotDefined "a"`.
func (e Event) String() string {
	if e.HasText() {
		return fmt.Sprintf("%s %q", e.Key, e.Text)
	}
	return fmt.Sprintf("%s <%x>", e.Key, e.Raw)
}
