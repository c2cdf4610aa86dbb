package key

import (
	"bytes"
	"testing"
)

func TestNewEventCopiesRaw(t *testing.T) {
	raw := []byte{0x1b, 0x5b, 0x41}
	e := NewEvent(KeyUp, raw)

	raw[0] = 0x00
	if !bytes.Equal(e.Raw, []byte{0x1b, 0x5b, 0x41}) {
		t.Errorf("event raw changed with caller's buffer: %x", e.Raw)
	}
}

func TestNewTextEvent(t *testing.T) {
	e := NewTextEvent(KeyNotDefined, []byte{'a'}, "a")
	if e.Key != KeyNotDefined {
		t.Errorf("key = %v, want NotDefined", e.Key)
	}
	if e.Text != "a" {
		t.Errorf("text = %q, want %q", e.Text, "a")
	}
	if !e.HasText() {
		t.Error("HasText() = false, want true")
	}
}

func TestHasText(t *testing.T) {
	if NewEvent(KeyUp, []byte("\x1b[A")).HasText() {
		t.Error("textless event HasText() = true, want false")
	}
	if !NewTextEvent(KeyBracketedPaste, []byte("hi"), "hi").HasText() {
		t.Error("paste event HasText() = false, want true")
	}
}

func TestEventEqual(t *testing.T) {
	a := NewEvent(KeyUp, []byte("\x1b[A"))
	b := NewEvent(KeyUp, []byte("\x1b[A"))
	if !a.Equal(b) {
		t.Errorf("%v not equal to identical %v", a, b)
	}

	tests := []struct {
		name  string
		other Event
	}{
		{"different key", NewEvent(KeyDown, []byte("\x1b[A"))},
		{"different raw", NewEvent(KeyUp, []byte("\x1b[B"))},
		{"shorter raw", NewEvent(KeyUp, []byte("\x1b["))},
		{"with text", NewTextEvent(KeyUp, []byte("\x1b[A"), "x")},
	}
	for _, tt := range tests {
		if a.Equal(tt.other) {
			t.Errorf("%s: %v equal to %v, want not equal", tt.name, a, tt.other)
		}
	}
}

func TestEventString(t *testing.T) {
	e := NewEvent(KeyUp, []byte{0x1b, 0x5b, 0x41})
	if got, want := e.String(), "Up <1b5b41>"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	e = NewTextEvent(KeyNotDefined, []byte{'a'}, "a")
	if got, want := e.String(), `NotDefined "a"`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
