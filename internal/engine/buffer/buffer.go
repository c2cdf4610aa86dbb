package buffer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/termput/termput/internal/engine/document"
	"github.com/termput/termput/internal/input/key"
)

// ErrInvalidWorkingIndex is returned when a working line index is out
// of range.
var ErrInvalidWorkingIndex = errors.New("working index out of range")

// Buffer is a mutable editing buffer. The zero value is not usable;
// call New.
type Buffer struct {
	workingLines []string
	workingIndex int
	cursor       int
	lastKey      key.Key

	// preferredColumn keeps vertical movement aligned; reset whenever
	// the cursor is positioned explicitly.
	preferredColumn int

	doc *document.Document // invalidated on every mutation
}

// New creates an empty buffer with a single working line.
func New() *Buffer {
	return &Buffer{
		workingLines:    []string{""},
		preferredColumn: document.NoPreferredColumn,
	}
}

// Text returns the text of the current working line.
func (b *Buffer) Text() string {
	return b.workingLines[b.workingIndex]
}

// CursorPosition returns the cursor as a rune index into Text.
func (b *Buffer) CursorPosition() int {
	return b.cursor
}

// WorkingIndex returns the index of the current working line.
func (b *Buffer) WorkingIndex() int {
	return b.workingIndex
}

// WorkingLineCount returns the number of working lines.
func (b *Buffer) WorkingLineCount() int {
	return len(b.workingLines)
}

// LastKeyStroke returns the most recent key recorded via ApplyKey or
// SetLastKeyStroke.
func (b *Buffer) LastKeyStroke() key.Key {
	return b.lastKey
}

// Document returns an immutable snapshot of the current text and
// cursor. The snapshot is cached until the next mutation.
func (b *Buffer) Document() *document.Document {
	if b.doc == nil {
		b.doc = document.WithTextAndKey(b.Text(), b.cursor, b.lastKey)
	}
	return b.doc
}

// DisplayCursorPosition returns the terminal column of the cursor.
func (b *Buffer) DisplayCursorPosition() int {
	return b.Document().DisplayCursorPosition()
}

func (b *Buffer) invalidate() {
	b.doc = nil
}

func (b *Buffer) runeLen() int {
	return len([]rune(b.Text()))
}

// SetText replaces the current working line. The cursor is clamped
// into the new text.
func (b *Buffer) SetText(text string) {
	b.workingLines[b.workingIndex] = text
	if n := b.runeLen(); b.cursor > n {
		b.cursor = n
		b.preferredColumn = document.NoPreferredColumn
	}
	b.invalidate()
}

// SetCursorPosition moves the cursor, clamping into [0, len]. An
// explicit move resets the preferred column.
func (b *Buffer) SetCursorPosition(pos int) {
	if pos < 0 {
		pos = 0
	}
	if n := b.runeLen(); pos > n {
		pos = n
	}
	if pos != b.cursor {
		b.cursor = pos
		b.preferredColumn = document.NoPreferredColumn
		b.invalidate()
	}
}

// SetLastKeyStroke records the key that produced the next mutation.
func (b *Buffer) SetLastKeyStroke(k key.Key) {
	b.lastKey = k
	b.invalidate()
}

// SetWorkingIndex switches to another working line. The cursor resets
// to the start of that line.
func (b *Buffer) SetWorkingIndex(index int) error {
	if index < 0 || index >= len(b.workingLines) {
		return fmt.Errorf("%w: %d (have %d lines)", ErrInvalidWorkingIndex, index, len(b.workingLines))
	}
	b.workingIndex = index
	b.cursor = 0
	b.preferredColumn = document.NoPreferredColumn
	b.invalidate()
	return nil
}

// AddWorkingLine appends a working line, optionally switching to it.
func (b *Buffer) AddWorkingLine(text string, switchTo bool) {
	b.workingLines = append(b.workingLines, text)
	if switchTo {
		b.workingIndex = len(b.workingLines) - 1
		b.cursor = 0
		b.preferredColumn = document.NoPreferredColumn
		b.invalidate()
	}
}

// InsertText inserts text at the cursor. With overwrite it replaces
// existing runes instead of shifting them. With moveCursor the cursor
// lands after the inserted text.
func (b *Buffer) InsertText(text string, overwrite, moveCursor bool) {
	runes := []rune(b.Text())
	pos := b.cursor
	if pos > len(runes) {
		pos = len(runes)
	}
	insert := []rune(text)

	var result []rune
	if overwrite {
		end := pos + len(insert)
		if end > len(runes) {
			end = len(runes)
		}
		result = append(result, runes[:pos]...)
		result = append(result, insert...)
		result = append(result, runes[end:]...)
	} else {
		result = append(result, runes[:pos]...)
		result = append(result, insert...)
		result = append(result, runes[pos:]...)
	}

	b.workingLines[b.workingIndex] = string(result)
	if moveCursor {
		b.cursor = pos + len(insert)
	} else {
		b.cursor = pos
	}
	b.invalidate()
}

// DeleteBeforeCursor removes up to count runes before the cursor and
// returns the removed text.
func (b *Buffer) DeleteBeforeCursor(count int) string {
	if count <= 0 {
		return ""
	}
	runes := []rune(b.Text())
	pos := b.cursor
	if pos > len(runes) {
		pos = len(runes)
	}
	if count > pos {
		count = pos
	}
	if count == 0 {
		return ""
	}

	start := pos - count
	deleted := string(runes[start:pos])
	b.workingLines[b.workingIndex] = string(runes[:start]) + string(runes[pos:])
	b.cursor = start
	b.invalidate()
	return deleted
}

// Delete removes up to count runes at the cursor and returns the
// removed text. The cursor does not move.
func (b *Buffer) Delete(count int) string {
	if count <= 0 {
		return ""
	}
	runes := []rune(b.Text())
	pos := b.cursor
	if pos > len(runes) {
		pos = len(runes)
	}
	if remaining := len(runes) - pos; count > remaining {
		count = remaining
	}
	if count == 0 {
		return ""
	}

	end := pos + count
	deleted := string(runes[pos:end])
	b.workingLines[b.workingIndex] = string(runes[:pos]) + string(runes[end:])
	b.cursor = pos
	b.invalidate()
	return deleted
}

// NewLine inserts a newline at the cursor. With copyMargin the new
// line starts with the current line's leading whitespace.
func (b *Buffer) NewLine(copyMargin bool) {
	if copyMargin {
		b.InsertText("\n"+b.Document().LeadingWhitespaceInCurrentLine(), false, true)
		return
	}
	b.InsertText("\n", false, true)
}

// JoinNextLine merges the current line with the following one,
// replacing the newline with separator and trimming the next line's
// leading whitespace. Without a next line it does nothing. The cursor
// does not move.
func (b *Buffer) JoinNextLine(separator string) {
	runes := []rune(b.Text())
	newline := -1
	for i := b.cursor; i < len(runes); i++ {
		if runes[i] == '\n' {
			newline = i
			break
		}
	}
	if newline < 0 {
		return
	}

	after := strings.TrimLeft(string(runes[newline+1:]), " \t\n\r")
	b.workingLines[b.workingIndex] = string(runes[:newline]) + separator + after
	b.invalidate()
}

// SwapCharactersBeforeCursor exchanges the two runes immediately
// before the cursor. With fewer than two it does nothing.
func (b *Buffer) SwapCharactersBeforeCursor() {
	if b.cursor < 2 {
		return
	}
	runes := []rune(b.Text())
	if b.cursor > len(runes) {
		return
	}
	runes[b.cursor-2], runes[b.cursor-1] = runes[b.cursor-1], runes[b.cursor-2]
	b.workingLines[b.workingIndex] = string(runes)
	b.invalidate()
}

// CursorLeft moves the cursor left by count runes within the current
// line.
func (b *Buffer) CursorLeft(count int) {
	if count <= 0 {
		return
	}
	if off := b.Document().CursorLeftOffset(count); off < 0 {
		b.cursor += off
		b.invalidate()
	}
}

// CursorRight moves the cursor right by count runes within the current
// line.
func (b *Buffer) CursorRight(count int) {
	if count <= 0 {
		return
	}
	if off := b.Document().CursorRightOffset(count); off > 0 {
		b.cursor += off
		b.invalidate()
	}
}

// CursorUp moves the cursor up by count lines, keeping the preferred
// column across moves.
func (b *Buffer) CursorUp(count int) {
	if count <= 0 {
		return
	}
	if b.preferredColumn == document.NoPreferredColumn {
		b.preferredColumn = b.Document().CursorPositionCol()
	}
	if off := b.Document().CursorUpOffset(count, b.preferredColumn); off < 0 {
		b.cursor += off
		b.invalidate()
	}
}

// CursorDown moves the cursor down by count lines, keeping the
// preferred column across moves.
func (b *Buffer) CursorDown(count int) {
	if count <= 0 {
		return
	}
	if b.preferredColumn == document.NoPreferredColumn {
		b.preferredColumn = b.Document().CursorPositionCol()
	}
	if off := b.Document().CursorDownOffset(count, b.preferredColumn); off > 0 {
		b.cursor += off
		b.invalidate()
	}
}

// ApplyKey performs the default editing action for a decoded key
// event: arrows and navigation keys move the cursor, editing keys
// mutate text, and events carrying text insert it.
func (b *Buffer) ApplyKey(ev key.Event) {
	b.lastKey = ev.Key
	b.invalidate()

	switch ev.Key {
	case key.KeyLeft, key.KeyControlB:
		b.CursorLeft(1)
	case key.KeyRight, key.KeyControlF:
		b.CursorRight(1)
	case key.KeyUp, key.KeyControlP:
		b.CursorUp(1)
	case key.KeyDown, key.KeyControlN:
		b.CursorDown(1)
	case key.KeyHome, key.KeyControlA:
		b.SetCursorPosition(b.cursor + b.Document().CursorLeftOffset(b.cursor))
	case key.KeyEnd, key.KeyControlE:
		b.SetCursorPosition(b.Document().EndOfLinePosition())
	case key.KeyBackspace, key.KeyControlH:
		b.DeleteBeforeCursor(1)
	case key.KeyDelete, key.KeyControlD:
		b.Delete(1)
	case key.KeyControlK:
		d := b.Document()
		b.Delete(len([]rune(d.CurrentLineAfterCursor())))
	case key.KeyControlU:
		d := b.Document()
		b.DeleteBeforeCursor(len([]rune(d.CurrentLineBeforeCursor())))
	case key.KeyControlW:
		if n := b.Document().FindStartOfPreviousWordWithSpace(); n > 0 {
			b.DeleteBeforeCursor(n)
		}
	case key.KeyControlT:
		b.SwapCharactersBeforeCursor()
	case key.KeyEnter:
		b.NewLine(false)
	case key.KeyTab:
		b.InsertText("\t", false, true)
	default:
		if ev.HasText() {
			b.InsertText(ev.Text, false, true)
		}
	}
}
