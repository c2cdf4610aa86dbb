package buffer

import (
	"errors"
	"testing"

	"github.com/termput/termput/internal/input/key"
)

func TestNewBuffer(t *testing.T) {
	b := New()
	if b.Text() != "" || b.CursorPosition() != 0 {
		t.Errorf("New() = %q at %d, want empty at 0", b.Text(), b.CursorPosition())
	}
	if b.WorkingLineCount() != 1 || b.WorkingIndex() != 0 {
		t.Errorf("working lines = %d at index %d, want 1 at 0", b.WorkingLineCount(), b.WorkingIndex())
	}
}

func TestSetText(t *testing.T) {
	b := New()
	b.SetText("hello world")
	if b.Text() != "hello world" {
		t.Errorf("Text() = %q, want %q", b.Text(), "hello world")
	}
	if b.CursorPosition() != 0 {
		t.Errorf("cursor = %d, want 0", b.CursorPosition())
	}

	// Shrinking the text clamps the cursor.
	b.SetCursorPosition(11)
	b.SetText("hi")
	if b.CursorPosition() != 2 {
		t.Errorf("cursor after shrink = %d, want 2", b.CursorPosition())
	}
}

func TestSetCursorPosition(t *testing.T) {
	b := New()
	b.SetText("hello")

	b.SetCursorPosition(3)
	if b.CursorPosition() != 3 {
		t.Errorf("cursor = %d, want 3", b.CursorPosition())
	}

	b.SetCursorPosition(10)
	if b.CursorPosition() != 5 {
		t.Errorf("cursor = %d, want clamped 5", b.CursorPosition())
	}

	b.SetCursorPosition(-1)
	if b.CursorPosition() != 0 {
		t.Errorf("cursor = %d, want clamped 0", b.CursorPosition())
	}
}

func TestUnicodeCursorBounds(t *testing.T) {
	b := New()
	b.SetText("こんにちは")

	b.SetCursorPosition(3)
	if b.CursorPosition() != 3 {
		t.Errorf("cursor = %d, want 3", b.CursorPosition())
	}
	b.SetCursorPosition(10)
	if b.CursorPosition() != 5 {
		t.Errorf("cursor = %d, want rune-clamped 5", b.CursorPosition())
	}
}

func TestInsertText(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursorPosition(5)

	b.InsertText(" beautiful", false, true)
	if b.Text() != "hello beautiful world" {
		t.Errorf("Text() = %q, want %q", b.Text(), "hello beautiful world")
	}
	if b.CursorPosition() != 15 {
		t.Errorf("cursor = %d, want 15", b.CursorPosition())
	}
}

func TestInsertTextNoCursorMove(t *testing.T) {
	b := New()
	b.SetText("world")
	b.InsertText("hello ", false, false)
	if b.Text() != "hello world" {
		t.Errorf("Text() = %q, want %q", b.Text(), "hello world")
	}
	if b.CursorPosition() != 0 {
		t.Errorf("cursor = %d, want 0", b.CursorPosition())
	}
}

func TestInsertTextOverwrite(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursorPosition(6)

	b.InsertText("WORLD", true, true)
	if b.Text() != "hello WORLD" {
		t.Errorf("Text() = %q, want %q", b.Text(), "hello WORLD")
	}
	if b.CursorPosition() != 11 {
		t.Errorf("cursor = %d, want 11", b.CursorPosition())
	}

	// Overwrite running past the end extends the text.
	b.InsertText("!!", true, true)
	if b.Text() != "hello WORLD!!" {
		t.Errorf("Text() = %q, want %q", b.Text(), "hello WORLD!!")
	}
}

func TestDeleteBeforeCursor(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursorPosition(5)

	deleted := b.DeleteBeforeCursor(2)
	if deleted != "lo" {
		t.Errorf("deleted = %q, want %q", deleted, "lo")
	}
	if b.Text() != "hel world" {
		t.Errorf("Text() = %q, want %q", b.Text(), "hel world")
	}
	if b.CursorPosition() != 3 {
		t.Errorf("cursor = %d, want 3", b.CursorPosition())
	}

	// More than available deletes to the start.
	deleted = b.DeleteBeforeCursor(10)
	if deleted != "hel" {
		t.Errorf("deleted = %q, want %q", deleted, "hel")
	}
	if b.Text() != " world" || b.CursorPosition() != 0 {
		t.Errorf("Text() = %q at %d, want %q at 0", b.Text(), b.CursorPosition(), " world")
	}

	if got := b.DeleteBeforeCursor(1); got != "" {
		t.Errorf("delete at start = %q, want empty", got)
	}
}

func TestDelete(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursorPosition(5)

	deleted := b.Delete(2)
	if deleted != " w" {
		t.Errorf("deleted = %q, want %q", deleted, " w")
	}
	if b.Text() != "helloorld" {
		t.Errorf("Text() = %q, want %q", b.Text(), "helloorld")
	}
	if b.CursorPosition() != 5 {
		t.Errorf("cursor = %d, want 5", b.CursorPosition())
	}

	deleted = b.Delete(100)
	if deleted != "orld" {
		t.Errorf("deleted = %q, want %q", deleted, "orld")
	}
	if b.Text() != "hello" {
		t.Errorf("Text() = %q, want %q", b.Text(), "hello")
	}
}

func TestNewLine(t *testing.T) {
	b := New()
	b.SetText("hello")
	b.SetCursorPosition(5)
	b.NewLine(false)
	if b.Text() != "hello\n" {
		t.Errorf("Text() = %q, want %q", b.Text(), "hello\n")
	}
	if b.CursorPosition() != 6 {
		t.Errorf("cursor = %d, want 6", b.CursorPosition())
	}
}

func TestNewLineCopyMargin(t *testing.T) {
	b := New()
	b.SetText("    indented line")
	b.SetCursorPosition(16)
	b.NewLine(true)
	if b.Text() != "    indented lin\n    e" {
		t.Errorf("Text() = %q, want %q", b.Text(), "    indented lin\n    e")
	}
	if b.CursorPosition() != 21 {
		t.Errorf("cursor = %d, want 21", b.CursorPosition())
	}
}

func TestJoinNextLine(t *testing.T) {
	b := New()
	b.SetText("first line\nsecond line")
	b.SetCursorPosition(5)

	b.JoinNextLine(" ")
	if b.Text() != "first line second line" {
		t.Errorf("Text() = %q, want %q", b.Text(), "first line second line")
	}
	if b.CursorPosition() != 5 {
		t.Errorf("cursor = %d, want unchanged 5", b.CursorPosition())
	}

	// Leading whitespace on the next line is trimmed.
	b.SetText("one\n    two")
	b.SetCursorPosition(0)
	b.JoinNextLine(" ")
	if b.Text() != "one two" {
		t.Errorf("Text() = %q, want %q", b.Text(), "one two")
	}

	// No next line: nothing happens.
	b.SetText("only line")
	b.JoinNextLine(" ")
	if b.Text() != "only line" {
		t.Errorf("Text() = %q, want unchanged", b.Text())
	}
}

func TestSwapCharactersBeforeCursor(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursorPosition(5)

	b.SwapCharactersBeforeCursor()
	if b.Text() != "helol world" {
		t.Errorf("Text() = %q, want %q", b.Text(), "helol world")
	}
	if b.CursorPosition() != 5 {
		t.Errorf("cursor = %d, want unchanged 5", b.CursorPosition())
	}

	// Fewer than two characters before the cursor: no change.
	b.SetText("ab")
	b.SetCursorPosition(1)
	b.SwapCharactersBeforeCursor()
	if b.Text() != "ab" {
		t.Errorf("Text() = %q, want unchanged", b.Text())
	}
}

func TestCursorHorizontalMovement(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursorPosition(5)

	b.CursorLeft(2)
	if b.CursorPosition() != 3 {
		t.Errorf("cursor = %d, want 3", b.CursorPosition())
	}
	b.CursorLeft(10)
	if b.CursorPosition() != 0 {
		t.Errorf("cursor = %d, want 0", b.CursorPosition())
	}

	b.CursorRight(2)
	if b.CursorPosition() != 2 {
		t.Errorf("cursor = %d, want 2", b.CursorPosition())
	}
	b.CursorRight(100)
	if b.CursorPosition() != 11 {
		t.Errorf("cursor = %d, want 11", b.CursorPosition())
	}
}

func TestCursorMovementStaysOnLine(t *testing.T) {
	b := New()
	b.SetText("line1\nline2")
	b.SetCursorPosition(8)

	b.CursorLeft(10)
	if b.CursorPosition() != 6 {
		t.Errorf("cursor = %d, want line start 6", b.CursorPosition())
	}
	b.CursorRight(10)
	if b.CursorPosition() != 11 {
		t.Errorf("cursor = %d, want line end 11", b.CursorPosition())
	}
}

func TestCursorVerticalMovement(t *testing.T) {
	b := New()
	b.SetText("line1\nline2\nline3")
	b.SetCursorPosition(8) // "li|ne2"

	b.CursorUp(1)
	if b.CursorPosition() != 2 {
		t.Errorf("cursor after up = %d, want 2", b.CursorPosition())
	}
	b.CursorDown(1)
	if b.CursorPosition() != 8 {
		t.Errorf("cursor after down = %d, want 8", b.CursorPosition())
	}

	// At the edges nothing moves.
	b.SetCursorPosition(2)
	b.CursorUp(1)
	if b.CursorPosition() != 2 {
		t.Errorf("cursor = %d, want unchanged on first line", b.CursorPosition())
	}
	b.SetCursorPosition(14)
	b.CursorDown(1)
	if b.CursorPosition() != 14 {
		t.Errorf("cursor = %d, want unchanged on last line", b.CursorPosition())
	}
}

func TestPreferredColumnAcrossShortLine(t *testing.T) {
	b := New()
	b.SetText("long line one\nhi\nlong line two")
	b.SetCursorPosition(10) // column 10 on the first line

	// Moving through the short middle line keeps the column.
	b.CursorDown(1)
	if got := b.Document().CursorPositionCol(); got != 2 {
		t.Errorf("col on short line = %d, want clamped 2", got)
	}
	b.CursorDown(1)
	if got := b.Document().CursorPositionCol(); got != 10 {
		t.Errorf("col after short line = %d, want restored 10", got)
	}
}

func TestWorkingLines(t *testing.T) {
	b := New()
	b.SetText("first")

	b.AddWorkingLine("second", false)
	if b.WorkingLineCount() != 2 || b.WorkingIndex() != 0 || b.Text() != "first" {
		t.Errorf("after add: count=%d index=%d text=%q", b.WorkingLineCount(), b.WorkingIndex(), b.Text())
	}

	b.AddWorkingLine("third", true)
	if b.WorkingIndex() != 2 || b.Text() != "third" || b.CursorPosition() != 0 {
		t.Errorf("after switch: index=%d text=%q cursor=%d", b.WorkingIndex(), b.Text(), b.CursorPosition())
	}

	if err := b.SetWorkingIndex(1); err != nil {
		t.Fatalf("SetWorkingIndex(1) error: %v", err)
	}
	if b.Text() != "second" || b.CursorPosition() != 0 {
		t.Errorf("after SetWorkingIndex: text=%q cursor=%d", b.Text(), b.CursorPosition())
	}

	if err := b.SetWorkingIndex(5); !errors.Is(err, ErrInvalidWorkingIndex) {
		t.Errorf("SetWorkingIndex(5) error = %v, want ErrInvalidWorkingIndex", err)
	}
}

func TestDocumentSnapshot(t *testing.T) {
	b := New()
	b.SetText("hello")
	b.SetCursorPosition(3)

	d := b.Document()
	if d.Text() != "hello" || d.CursorPosition() != 3 {
		t.Errorf("snapshot = %q at %d, want %q at 3", d.Text(), d.CursorPosition(), "hello")
	}

	// The snapshot is immutable; mutating the buffer yields a new one.
	b.SetText("world")
	if d.Text() != "hello" {
		t.Errorf("old snapshot changed to %q", d.Text())
	}
	if got := b.Document().Text(); got != "world" {
		t.Errorf("new snapshot = %q, want %q", got, "world")
	}
}

func TestDisplayCursorPosition(t *testing.T) {
	b := New()
	b.SetText("日本語")
	b.SetCursorPosition(2)
	if got := b.DisplayCursorPosition(); got != 4 {
		t.Errorf("DisplayCursorPosition() = %d, want 4", got)
	}
}

func TestApplyKeyMovement(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursorPosition(5)

	b.ApplyKey(key.NewEvent(key.KeyLeft, nil))
	if b.CursorPosition() != 4 {
		t.Errorf("cursor = %d, want 4", b.CursorPosition())
	}
	b.ApplyKey(key.NewEvent(key.KeyRight, nil))
	if b.CursorPosition() != 5 {
		t.Errorf("cursor = %d, want 5", b.CursorPosition())
	}
	b.ApplyKey(key.NewEvent(key.KeyHome, nil))
	if b.CursorPosition() != 0 {
		t.Errorf("cursor = %d, want 0", b.CursorPosition())
	}
	b.ApplyKey(key.NewEvent(key.KeyEnd, nil))
	if b.CursorPosition() != 11 {
		t.Errorf("cursor = %d, want 11", b.CursorPosition())
	}
	if b.LastKeyStroke() != key.KeyEnd {
		t.Errorf("LastKeyStroke() = %v, want End", b.LastKeyStroke())
	}
}

func TestApplyKeyEditing(t *testing.T) {
	b := New()
	b.SetText("hello")
	b.SetCursorPosition(5)

	b.ApplyKey(key.NewEvent(key.KeyBackspace, nil))
	if b.Text() != "hell" {
		t.Errorf("Text() = %q, want %q", b.Text(), "hell")
	}

	b.SetCursorPosition(0)
	b.ApplyKey(key.NewEvent(key.KeyDelete, nil))
	if b.Text() != "ell" {
		t.Errorf("Text() = %q, want %q", b.Text(), "ell")
	}

	b.ApplyKey(key.NewTextEvent(key.KeyNotDefined, []byte("h"), "h"))
	if b.Text() != "hell" || b.CursorPosition() != 1 {
		t.Errorf("Text() = %q at %d, want %q at 1", b.Text(), b.CursorPosition(), "hell")
	}

	b.SetCursorPosition(4)
	b.ApplyKey(key.NewEvent(key.KeyEnter, nil))
	if b.Text() != "hell\n" || b.CursorPosition() != 5 {
		t.Errorf("Text() = %q at %d, want %q at 5", b.Text(), b.CursorPosition(), "hell\n")
	}
}

func TestApplyKeyKillLine(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursorPosition(5)

	b.ApplyKey(key.NewEvent(key.KeyControlK, nil))
	if b.Text() != "hello" {
		t.Errorf("Ctrl-K: Text() = %q, want %q", b.Text(), "hello")
	}

	b.SetText("hello world")
	b.SetCursorPosition(5)
	b.ApplyKey(key.NewEvent(key.KeyControlU, nil))
	if b.Text() != " world" || b.CursorPosition() != 0 {
		t.Errorf("Ctrl-U: Text() = %q at %d, want %q at 0", b.Text(), b.CursorPosition(), " world")
	}
}

func TestApplyKeyDeleteWord(t *testing.T) {
	b := New()
	b.SetText("hello big world")
	b.SetCursorPosition(15)

	b.ApplyKey(key.NewEvent(key.KeyControlW, nil))
	if b.Text() != "hello big" {
		t.Errorf("Ctrl-W: Text() = %q, want %q", b.Text(), "hello big")
	}
	b.ApplyKey(key.NewEvent(key.KeyControlW, nil))
	if b.Text() != "hello" {
		t.Errorf("Ctrl-W again: Text() = %q, want %q", b.Text(), "hello")
	}
}

func TestApplyKeyTranspose(t *testing.T) {
	b := New()
	b.SetText("hello")
	b.SetCursorPosition(5)
	b.ApplyKey(key.NewEvent(key.KeyControlT, nil))
	if b.Text() != "helol" {
		t.Errorf("Ctrl-T: Text() = %q, want %q", b.Text(), "helol")
	}
}
