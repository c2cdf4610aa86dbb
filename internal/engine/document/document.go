package document

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/termput/termput/internal/input/key"
)

// NoPreferredColumn disables preferred-column tracking in vertical cursor
// movement calculations.
const NoPreferredColumn = -1

// Document is immutable text plus a cursor position in rune indexes.
type Document struct {
	text    string
	runes   []rune
	cursor  int
	lastKey key.Key
}

// New creates an empty document.
func New() *Document {
	return WithText("", 0)
}

// WithText creates a document; the cursor is clamped into [0, len].
func WithText(text string, cursor int) *Document {
	return WithTextAndKey(text, cursor, key.KeyNotDefined)
}

// WithTextAndKey creates a document carrying the key stroke that produced
// it.
func WithTextAndKey(text string, cursor int, lastKey key.Key) *Document {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	return &Document{text: text, runes: runes, cursor: cursor, lastKey: lastKey}
}

// Text returns the document text.
func (d *Document) Text() string {
	return d.text
}

// CursorPosition returns the cursor as a rune index.
func (d *Document) CursorPosition() int {
	return d.cursor
}

// LastKeyStroke returns the key that produced this document state.
func (d *Document) LastKeyStroke() key.Key {
	return d.lastKey
}

// TextBeforeCursor returns the text before the cursor.
func (d *Document) TextBeforeCursor() string {
	return string(d.runes[:d.cursor])
}

// TextAfterCursor returns the text from the cursor to the end.
func (d *Document) TextAfterCursor() string {
	return string(d.runes[d.cursor:])
}

// DisplayCursorPosition returns the terminal column of the cursor,
// counting wide characters by their display width and grapheme clusters
// as single units.
func (d *Document) DisplayCursorPosition() int {
	return displayWidth(d.TextBeforeCursor())
}

// displayWidth measures terminal columns per grapheme cluster.
func displayWidth(s string) int {
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		width += runewidth.StringWidth(g.Str())
	}
	return width
}

// CharRelativeToCursor returns the rune at cursor+offset. The second
// result is false when the position is out of bounds.
func (d *Document) CharRelativeToCursor(offset int) (rune, bool) {
	pos := d.cursor + offset
	if pos < 0 || pos >= len(d.runes) {
		return 0, false
	}
	return d.runes[pos], true
}

// Word operations. Words are runs of non-whitespace by default; the
// UntilSeparator variants treat any rune in separators as the boundary
// instead.

// WordBeforeCursor returns the word ending at or spanning the cursor.
func (d *Document) WordBeforeCursor() string {
	return d.wordBefore(false, "")
}

// WordAfterCursor returns the word starting at or spanning the cursor.
func (d *Document) WordAfterCursor() string {
	return d.wordAfter(false, "")
}

// WordBeforeCursorWithSpace is WordBeforeCursor including trailing
// whitespace.
func (d *Document) WordBeforeCursorWithSpace() string {
	return d.wordBefore(true, "")
}

// WordAfterCursorWithSpace is WordAfterCursor including leading
// whitespace.
func (d *Document) WordAfterCursorWithSpace() string {
	return d.wordAfter(true, "")
}

// WordBeforeCursorUntilSeparator is WordBeforeCursor with custom
// separators.
func (d *Document) WordBeforeCursorUntilSeparator(separators string) string {
	return d.wordBefore(false, separators)
}

// WordAfterCursorUntilSeparator is WordAfterCursor with custom
// separators.
func (d *Document) WordAfterCursorUntilSeparator(separators string) string {
	return d.wordAfter(false, separators)
}

// WordBeforeCursorUntilSeparatorWithSpace includes trailing separators.
func (d *Document) WordBeforeCursorUntilSeparatorWithSpace(separators string) string {
	return d.wordBefore(true, separators)
}

// WordAfterCursorUntilSeparatorWithSpace includes leading separators.
func (d *Document) WordAfterCursorUntilSeparatorWithSpace(separators string) string {
	return d.wordAfter(true, separators)
}

func separatorFunc(separators string) func(rune) bool {
	if separators == "" {
		return func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
	}
	return func(r rune) bool { return strings.ContainsRune(separators, r) }
}

func (d *Document) wordBefore(includeSpace bool, separators string) string {
	if len(d.runes) == 0 || d.cursor == 0 {
		return ""
	}
	isSep := separatorFunc(separators)

	var start, end int
	if includeSpace {
		pos := d.cursor
		for pos > 0 && isSep(d.runes[pos-1]) {
			pos--
		}
		for pos > 0 && !isSep(d.runes[pos-1]) {
			pos--
		}
		start, end = pos, d.cursor
	} else {
		if isSep(d.runes[d.cursor-1]) {
			return ""
		}
		start = d.cursor
		for start > 0 && !isSep(d.runes[start-1]) {
			start--
		}
		// With custom separators, whitespace that is not itself a
		// separator never belongs to the word.
		if separators != "" {
			for start < d.cursor && isWhitespace(d.runes[start]) {
				start++
			}
		}
		end = d.cursor
		if d.cursor < len(d.runes) && !isSep(d.runes[d.cursor]) {
			end = d.cursor + 1
		}
	}

	if start >= end {
		return ""
	}
	return string(d.runes[start:end])
}

func (d *Document) wordAfter(includeSpace bool, separators string) string {
	if len(d.runes) == 0 {
		return ""
	}
	isSep := separatorFunc(separators)

	var start, end int
	if includeSpace {
		start = d.cursor
		pos := d.cursor
		for pos < len(d.runes) && isSep(d.runes[pos]) {
			pos++
		}
		for pos < len(d.runes) && !isSep(d.runes[pos]) {
			pos++
		}
		end = pos
	} else {
		if d.cursor < len(d.runes) && isSep(d.runes[d.cursor]) {
			return ""
		}
		start = d.cursor
		end = start
		for end < len(d.runes) && !isSep(d.runes[end]) {
			end++
		}
	}

	if start >= end {
		return ""
	}
	return string(d.runes[start:end])
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// FindStartOfPreviousWord returns how many runes to move left to reach
// the start of the previous word.
func (d *Document) FindStartOfPreviousWord() int {
	return d.boundaryBefore(false, "")
}

// FindEndOfCurrentWord returns how many runes to move right to reach the
// end of the current word.
func (d *Document) FindEndOfCurrentWord() int {
	return d.boundaryAfter(false, "")
}

// FindStartOfPreviousWordWithSpace includes trailing whitespace in the
// distance.
func (d *Document) FindStartOfPreviousWordWithSpace() int {
	return d.boundaryBefore(true, "")
}

// FindEndOfCurrentWordWithSpace includes leading whitespace in the
// distance.
func (d *Document) FindEndOfCurrentWordWithSpace() int {
	return d.boundaryAfter(true, "")
}

// FindStartOfPreviousWordUntilSeparator uses custom separators.
func (d *Document) FindStartOfPreviousWordUntilSeparator(separators string) int {
	return d.boundaryBefore(false, separators)
}

// FindEndOfCurrentWordUntilSeparator uses custom separators.
func (d *Document) FindEndOfCurrentWordUntilSeparator(separators string) int {
	return d.boundaryAfter(false, separators)
}

func (d *Document) boundaryBefore(includeSpace bool, separators string) int {
	before := d.runes[:d.cursor]
	if len(before) == 0 {
		return 0
	}
	isSep := separatorFunc(separators)

	pos := len(before)
	if !includeSpace {
		for pos > 0 && isSep(before[pos-1]) {
			pos--
		}
		if pos == 0 {
			return 0
		}
	}
	for pos > 0 && !isSep(before[pos-1]) {
		pos--
	}
	if includeSpace {
		for pos > 0 && isSep(before[pos-1]) {
			pos--
		}
	}
	return len(before) - pos
}

func (d *Document) boundaryAfter(includeSpace bool, separators string) int {
	after := d.runes[d.cursor:]
	if len(after) == 0 {
		return 0
	}
	isSep := separatorFunc(separators)

	pos := 0
	if !includeSpace {
		for pos < len(after) && isSep(after[pos]) {
			pos++
		}
		if pos >= len(after) {
			return 0
		}
	}
	for pos < len(after) && !isSep(after[pos]) {
		pos++
	}
	if includeSpace {
		for pos < len(after) && isSep(after[pos]) {
			pos++
		}
	}
	return pos
}

// Line operations.

// CurrentLineBeforeCursor returns the current line up to the cursor.
func (d *Document) CurrentLineBeforeCursor() string {
	start, _ := d.lineStartForIndex(d.cursor)
	return string(d.runes[start:d.cursor])
}

// CurrentLineAfterCursor returns the current line from the cursor to its
// end, excluding the newline.
func (d *Document) CurrentLineAfterCursor() string {
	end := d.cursor
	for end < len(d.runes) && d.runes[end] != '\n' {
		end++
	}
	return string(d.runes[d.cursor:end])
}

// CurrentLine returns the whole line the cursor is on.
func (d *Document) CurrentLine() string {
	return d.CurrentLineBeforeCursor() + d.CurrentLineAfterCursor()
}

// Lines splits the document into lines. An empty document has one empty
// line; a trailing newline produces a final empty line.
func (d *Document) Lines() []string {
	return strings.Split(d.text, "\n")
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return strings.Count(d.text, "\n") + 1
}

// lineStartIndexes returns the rune index at which each line starts.
func (d *Document) lineStartIndexes() []int {
	indexes := []int{0}
	for i, r := range d.runes {
		if r == '\n' {
			indexes = append(indexes, i+1)
		}
	}
	return indexes
}

// lineStartForIndex returns the line start rune index and 0-based row
// containing the given rune index.
func (d *Document) lineStartForIndex(index int) (start, row int) {
	starts := d.lineStartIndexes()
	for i, s := range starts {
		if s > index {
			break
		}
		start, row = s, i
	}
	return start, row
}

// CursorPositionRow returns the 0-based row of the cursor.
func (d *Document) CursorPositionRow() int {
	_, row := d.lineStartForIndex(d.cursor)
	return row
}

// CursorPositionCol returns the 0-based column of the cursor within its
// line.
func (d *Document) CursorPositionCol() int {
	start, _ := d.lineStartForIndex(d.cursor)
	return d.cursor - start
}

// TranslateIndexToPosition converts a rune index to (row, col), clamping
// the index to the document.
func (d *Document) TranslateIndexToPosition(index int) (row, col int) {
	if index > len(d.runes) {
		index = len(d.runes)
	}
	if index < 0 {
		index = 0
	}
	start, row := d.lineStartForIndex(index)
	return row, index - start
}

// TranslateRowColToIndex converts (row, col) to a rune index, clamping
// out-of-range coordinates to the nearest valid position.
func (d *Document) TranslateRowColToIndex(row, col int) int {
	starts := d.lineStartIndexes()
	if row < 0 {
		row = 0
	}
	if row >= len(starts) {
		return len(d.runes)
	}

	start := starts[row]
	end := len(d.runes)
	if row+1 < len(starts) {
		end = starts[row+1] - 1
	}
	if col < 0 {
		col = 0
	}
	if col > end-start {
		col = end - start
	}
	return start + col
}

// Cursor movement calculations. Each returns a relative rune offset from
// the current cursor; horizontal moves never cross line boundaries.

// CursorLeftOffset returns the (non-positive) offset for moving left by
// count runes within the current line.
func (d *Document) CursorLeftOffset(count int) int {
	if count < 0 {
		return 0
	}
	start, _ := d.lineStartForIndex(d.cursor)
	available := d.cursor - start
	if count > available {
		count = available
	}
	return -count
}

// CursorRightOffset returns the (non-negative) offset for moving right by
// count runes within the current line.
func (d *Document) CursorRightOffset(count int) int {
	if count < 0 {
		return 0
	}
	available := len([]rune(d.CurrentLineAfterCursor()))
	if count > available {
		count = available
	}
	return count
}

// CursorUpOffset returns the offset for moving up count lines. The
// preferred column keeps the horizontal position stable across short
// lines; pass NoPreferredColumn to use the current column.
func (d *Document) CursorUpOffset(count int, preferredColumn int) int {
	if count <= 0 {
		return 0
	}
	row := d.CursorPositionRow()
	if row == 0 {
		return 0
	}

	targetRow := row - count
	if targetRow < 0 {
		targetRow = 0
	}
	col := d.CursorPositionCol()
	if preferredColumn != NoPreferredColumn {
		col = preferredColumn
	}
	return d.TranslateRowColToIndex(targetRow, col) - d.cursor
}

// CursorDownOffset returns the offset for moving down count lines.
func (d *Document) CursorDownOffset(count int, preferredColumn int) int {
	if count <= 0 {
		return 0
	}
	row := d.CursorPositionRow()
	last := d.LineCount() - 1
	if row >= last {
		return 0
	}

	targetRow := row + count
	if targetRow > last {
		targetRow = last
	}
	col := d.CursorPositionCol()
	if preferredColumn != NoPreferredColumn {
		col = preferredColumn
	}
	return d.TranslateRowColToIndex(targetRow, col) - d.cursor
}

// OnLastLine reports whether the cursor is on the last line.
func (d *Document) OnLastLine() bool {
	return d.CursorPositionRow() >= d.LineCount()-1
}

// EndOfLinePosition returns the rune index of the end of the current
// line, before its newline if one follows.
func (d *Document) EndOfLinePosition() int {
	end := d.cursor
	for end < len(d.runes) && d.runes[end] != '\n' {
		end++
	}
	return end
}

// LeadingWhitespaceInCurrentLine returns the spaces and tabs at the
// start of the current line.
func (d *Document) LeadingWhitespaceInCurrentLine() string {
	start, _ := d.lineStartForIndex(d.cursor)
	end := start
	for end < len(d.runes) && (d.runes[end] == ' ' || d.runes[end] == '\t') {
		end++
	}
	return string(d.runes[start:end])
}
