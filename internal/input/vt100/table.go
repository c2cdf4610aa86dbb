package vt100

import (
	"github.com/termput/termput/internal/input/key"
)

// installDefaults loads the standard sequence table, quirks included:
// the "\x1b0H" and "\x1b0F" Home/End variants, the four-byte "\x1bOPA"
// F1 entry, and the F12 entry with a stray trailing 0x08 all look like
// data-entry artifacts, but they are kept as-is rather than guessed at
// without captures from real terminals.
func (m *Matcher) installDefaults() {
	ins := func(seq string, k key.Key) { m.Insert([]byte(seq), k) }

	// Control characters (single byte).
	ins("\x1b", key.KeyEscape)
	ins("\x00", key.KeyControlSpace)
	ins("\x01", key.KeyControlA)
	ins("\x02", key.KeyControlB)
	ins("\x03", key.KeyControlC)
	ins("\x04", key.KeyControlD)
	ins("\x05", key.KeyControlE)
	ins("\x06", key.KeyControlF)
	ins("\x07", key.KeyControlG)
	ins("\x08", key.KeyControlH)
	ins("\x09", key.KeyTab)
	ins("\x0a", key.KeyEnter)
	ins("\x0b", key.KeyControlK)
	ins("\x0c", key.KeyControlL)
	ins("\x0d", key.KeyControlM)
	ins("\x0e", key.KeyControlN)
	ins("\x0f", key.KeyControlO)
	ins("\x10", key.KeyControlP)
	ins("\x11", key.KeyControlQ)
	ins("\x12", key.KeyControlR)
	ins("\x13", key.KeyControlS)
	ins("\x14", key.KeyControlT)
	ins("\x15", key.KeyControlU)
	ins("\x16", key.KeyControlV)
	ins("\x17", key.KeyControlW)
	ins("\x18", key.KeyControlX)
	ins("\x19", key.KeyControlY)
	ins("\x1a", key.KeyControlZ)
	ins("\x1c", key.KeyControlBackslash)
	ins("\x1d", key.KeyControlSquareClose)
	ins("\x1e", key.KeyControlCircumflex)
	ins("\x1f", key.KeyControlUnderscore)
	ins("\x7f", key.KeyBackspace)

	// Arrow keys, CSI form.
	ins("\x1b[A", key.KeyUp)
	ins("\x1b[B", key.KeyDown)
	ins("\x1b[C", key.KeyRight)
	ins("\x1b[D", key.KeyLeft)

	// Arrow keys, SS3 form (application cursor mode).
	ins("\x1bOA", key.KeyUp)
	ins("\x1bOB", key.KeyDown)
	ins("\x1bOC", key.KeyRight)
	ins("\x1bOD", key.KeyLeft)

	// Home and End, terminal-specific variants.
	ins("\x1b[H", key.KeyHome)
	ins("\x1b0H", key.KeyHome)
	ins("\x1b[F", key.KeyEnd) // overwritten to Ignore below
	ins("\x1b0F", key.KeyEnd)
	ins("\x1b[1~", key.KeyHome)
	ins("\x1b[4~", key.KeyEnd)
	ins("\x1b[7~", key.KeyHome)
	ins("\x1b[8~", key.KeyEnd)

	// Delete.
	ins("\x1b[3~", key.KeyDelete)
	ins("\x1b[3;2~", key.KeyShiftDelete)
	ins("\x1b[3;5~", key.KeyControlDelete)

	// Paging.
	ins("\x1b[5~", key.KeyPageUp)
	ins("\x1b[6~", key.KeyPageDown)

	// Insert and BackTab.
	ins("\x1b[2~", key.KeyInsert)
	ins("\x1b[Z", key.KeyBackTab)

	// Function keys F1-F4, SS3 form (VT100).
	ins("\x1bOP", key.KeyF1)
	ins("\x1bOQ", key.KeyF2)
	ins("\x1bOR", key.KeyF3)
	ins("\x1bOS", key.KeyF4)

	// Function keys F1-F5, Linux console form.
	ins("\x1bOPA", key.KeyF1)
	ins("\x1b[[B", key.KeyF2)
	ins("\x1b[[C", key.KeyF3)
	ins("\x1b[[D", key.KeyF4)
	ins("\x1b[[E", key.KeyF5)

	// Function keys F1-F4, rxvt form.
	ins("\x1b[11~", key.KeyF1)
	ins("\x1b[12~", key.KeyF2)
	ins("\x1b[13~", key.KeyF3)
	ins("\x1b[14~", key.KeyF4)

	// Function keys F5-F12.
	ins("\x1b[15~", key.KeyF5)
	ins("\x1b[17~", key.KeyF6)
	ins("\x1b[18~", key.KeyF7)
	ins("\x1b[19~", key.KeyF8)
	ins("\x1b[20~", key.KeyF9)
	ins("\x1b[21~", key.KeyF10)
	ins("\x1b[23~", key.KeyF11)
	ins("\x1b[24~\x08", key.KeyF12)

	// Function keys F13-F20.
	ins("\x1b[25~", key.KeyF13)
	ins("\x1b[26~", key.KeyF14)
	ins("\x1b[28~", key.KeyF15)
	ins("\x1b[29~", key.KeyF16)
	ins("\x1b[31~", key.KeyF17)
	ins("\x1b[32~", key.KeyF18)
	ins("\x1b[33~", key.KeyF19)
	ins("\x1b[34~", key.KeyF20)

	// Function keys F13-F24, xterm modified form.
	ins("\x1b[1;2P", key.KeyF13)
	ins("\x1b[1;2Q", key.KeyF14)
	ins("\x1b[1;2R", key.KeyF16)
	ins("\x1b[15;2~", key.KeyF17)
	ins("\x1b[17;2~", key.KeyF18)
	ins("\x1b[18;2~", key.KeyF19)
	ins("\x1b[19;2~", key.KeyF20)
	ins("\x1b[20;2~", key.KeyF21)
	ins("\x1b[21;2~", key.KeyF22)
	ins("\x1b[23;2~", key.KeyF23)
	ins("\x1b[24;2~", key.KeyF24)

	// Control + arrows.
	ins("\x1b[1;5A", key.KeyControlUp)
	ins("\x1b[1;5B", key.KeyControlDown)
	ins("\x1b[1;5C", key.KeyControlRight)
	ins("\x1b[1;5D", key.KeyControlLeft)

	// Control + arrows, short form.
	ins("\x1b[5A", key.KeyControlUp)
	ins("\x1b[5B", key.KeyControlDown)
	ins("\x1b[5C", key.KeyControlRight)
	ins("\x1b[5D", key.KeyControlLeft)

	// Control + arrows, rxvt form.
	ins("\x1b[Oc", key.KeyControlRight)
	ins("\x1b[Od", key.KeyControlLeft)

	// Shift + arrows.
	ins("\x1b[1;2A", key.KeyShiftUp)
	ins("\x1b[1;2B", key.KeyShiftDown)
	ins("\x1b[1;2C", key.KeyShiftRight)
	ins("\x1b[1;2D", key.KeyShiftLeft)

	// Terminal-specific sequences that should be silently dropped.
	ins("\x1b[E", key.KeyIgnore) // xterm
	ins("\x1b[F", key.KeyIgnore) // Linux console
}
