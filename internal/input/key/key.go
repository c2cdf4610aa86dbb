package key

import (
	"fmt"
	"strings"
)

// Key identifies a logical key decoded from terminal input.
//
// The zero value is KeyNotDefined so that an uninitialized Event reads as
// "unrecognized input" rather than a real key.
type Key uint16

const (
	// KeyNotDefined marks a byte or sequence with no table entry.
	KeyNotDefined Key = iota

	// KeyEscape is a bare ESC (0x1B).
	KeyEscape

	// Control characters (Ctrl+A through Ctrl+Z). Tab, Enter and Backspace
	// below are the conventional aliases for Ctrl+I, Ctrl+J and 0x7F.
	KeyControlA
	KeyControlB
	KeyControlC
	KeyControlD
	KeyControlE
	KeyControlF
	KeyControlG
	KeyControlH
	KeyControlI
	KeyControlJ
	KeyControlK
	KeyControlL
	KeyControlM
	KeyControlN
	KeyControlO
	KeyControlP
	KeyControlQ
	KeyControlR
	KeyControlS
	KeyControlT
	KeyControlU
	KeyControlV
	KeyControlW
	KeyControlX
	KeyControlY
	KeyControlZ

	// Remaining C0 controls.
	KeyControlSpace
	KeyControlBackslash
	KeyControlSquareClose
	KeyControlCircumflex
	KeyControlUnderscore

	// Arrow keys.
	KeyUp
	KeyDown
	KeyRight
	KeyLeft

	// Shift + arrow keys.
	KeyShiftUp
	KeyShiftDown
	KeyShiftRight
	KeyShiftLeft

	// Control + arrow keys.
	KeyControlUp
	KeyControlDown
	KeyControlRight
	KeyControlLeft

	// Navigation and editing keys.
	KeyHome
	KeyEnd
	KeyDelete
	KeyShiftDelete
	KeyControlDelete
	KeyPageUp
	KeyPageDown
	KeyBackTab
	KeyInsert
	KeyBackspace

	// Aliases for common keys.
	KeyTab
	KeyEnter

	// Function keys F1-F24.
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	// KeyAny matches any key in key binding patterns. It is never produced
	// by the parser.
	KeyAny

	// Special sequences.

	// KeyCPRResponse is a Cursor Position Report (ESC[row;colR).
	KeyCPRResponse
	// KeyVt100MouseEvent is an X10 or SGR mouse report.
	KeyVt100MouseEvent
	// KeyWindowsMouseEvent is a Windows console mouse report.
	KeyWindowsMouseEvent
	// KeyBracketedPaste is a bracketed paste payload.
	KeyBracketedPaste

	// KeyIgnore marks a recognized sequence that should be silently dropped.
	KeyIgnore
)

// keyNames maps each Key to its canonical name.
var keyNames = map[Key]string{
	KeyNotDefined:         "NotDefined",
	KeyEscape:             "Escape",
	KeyControlA:           "Ctrl-A",
	KeyControlB:           "Ctrl-B",
	KeyControlC:           "Ctrl-C",
	KeyControlD:           "Ctrl-D",
	KeyControlE:           "Ctrl-E",
	KeyControlF:           "Ctrl-F",
	KeyControlG:           "Ctrl-G",
	KeyControlH:           "Ctrl-H",
	KeyControlI:           "Ctrl-I",
	KeyControlJ:           "Ctrl-J",
	KeyControlK:           "Ctrl-K",
	KeyControlL:           "Ctrl-L",
	KeyControlM:           "Ctrl-M",
	KeyControlN:           "Ctrl-N",
	KeyControlO:           "Ctrl-O",
	KeyControlP:           "Ctrl-P",
	KeyControlQ:           "Ctrl-Q",
	KeyControlR:           "Ctrl-R",
	KeyControlS:           "Ctrl-S",
	KeyControlT:           "Ctrl-T",
	KeyControlU:           "Ctrl-U",
	KeyControlV:           "Ctrl-V",
	KeyControlW:           "Ctrl-W",
	KeyControlX:           "Ctrl-X",
	KeyControlY:           "Ctrl-Y",
	KeyControlZ:           "Ctrl-Z",
	KeyControlSpace:       "Ctrl-Space",
	KeyControlBackslash:   "Ctrl-Backslash",
	KeyControlSquareClose: "Ctrl-]",
	KeyControlCircumflex:  "Ctrl-^",
	KeyControlUnderscore:  "Ctrl-_",
	KeyUp:                 "Up",
	KeyDown:               "Down",
	KeyRight:              "Right",
	KeyLeft:               "Left",
	KeyShiftUp:            "Shift-Up",
	KeyShiftDown:          "Shift-Down",
	KeyShiftRight:         "Shift-Right",
	KeyShiftLeft:          "Shift-Left",
	KeyControlUp:          "Ctrl-Up",
	KeyControlDown:        "Ctrl-Down",
	KeyControlRight:       "Ctrl-Right",
	KeyControlLeft:        "Ctrl-Left",
	KeyHome:               "Home",
	KeyEnd:                "End",
	KeyDelete:             "Delete",
	KeyShiftDelete:        "Shift-Delete",
	KeyControlDelete:      "Ctrl-Delete",
	KeyPageUp:             "PageUp",
	KeyPageDown:           "PageDown",
	KeyBackTab:            "BackTab",
	KeyInsert:             "Insert",
	KeyBackspace:          "Backspace",
	KeyTab:                "Tab",
	KeyEnter:              "Enter",
	KeyF1:                 "F1",
	KeyF2:                 "F2",
	KeyF3:                 "F3",
	KeyF4:                 "F4",
	KeyF5:                 "F5",
	KeyF6:                 "F6",
	KeyF7:                 "F7",
	KeyF8:                 "F8",
	KeyF9:                 "F9",
	KeyF10:                "F10",
	KeyF11:                "F11",
	KeyF12:                "F12",
	KeyF13:                "F13",
	KeyF14:                "F14",
	KeyF15:                "F15",
	KeyF16:                "F16",
	KeyF17:                "F17",
	KeyF18:                "F18",
	KeyF19:                "F19",
	KeyF20:                "F20",
	KeyF21:                "F21",
	KeyF22:                "F22",
	KeyF23:                "F23",
	KeyF24:                "F24",
	KeyAny:                "Any",
	KeyCPRResponse:        "CPRResponse",
	KeyVt100MouseEvent:    "Vt100MouseEvent",
	KeyWindowsMouseEvent:  "WindowsMouseEvent",
	KeyBracketedPaste:     "BracketedPaste",
	KeyIgnore:             "Ignore",
}

// keyNameMap maps lowercase names (plus a few aliases) to Key values.
var keyNameMap = map[string]Key{}

func init() {
	for k, name := range keyNames {
		keyNameMap[strings.ToLower(name)] = k
	}
	// Aliases used by keymap files.
	keyNameMap["esc"] = KeyEscape
	keyNameMap["return"] = KeyEnter
	keyNameMap["cr"] = KeyEnter
	keyNameMap["bs"] = KeyBackspace
	keyNameMap["del"] = KeyDelete
	keyNameMap["ins"] = KeyInsert
	keyNameMap["pgup"] = KeyPageUp
	keyNameMap["pgdn"] = KeyPageDown
	keyNameMap["shift-tab"] = KeyBackTab
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// FromName returns the Key for a given name (case-insensitive).
// The second result is false if the name is not recognized.
func FromName(name string) (Key, bool) {
	k, ok := keyNameMap[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// IsControl returns true for the C0 control character keys.
func (k Key) IsControl() bool {
	return (k >= KeyControlA && k <= KeyControlUnderscore) || k == KeyEscape
}

// IsFunctionKey returns true if this is a function key (F1-F24).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF24
}

// IsArrowKey returns true if this is a plain arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyLeft
}

// IsNavigationKey returns true for arrows, Home/End and paging keys.
func (k Key) IsNavigationKey() bool {
	return k.IsArrowKey() || k == KeyHome || k == KeyEnd || k == KeyPageUp || k == KeyPageDown
}

// IsSentinel returns true for the values that describe the parse outcome
// rather than a physical key.
func (k Key) IsSentinel() bool {
	switch k {
	case KeyNotDefined, KeyIgnore, KeyAny, KeyCPRResponse,
		KeyVt100MouseEvent, KeyWindowsMouseEvent, KeyBracketedPaste:
		return true
	}
	return false
}
