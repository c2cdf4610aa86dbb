package keymap

// Default returns the built-in line editing bindings. Action identifiers
// match the editing operations the engine packages expose.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			// Cursor movement
			{Keys: "Left", Action: "cursor.left", Description: "Move cursor left", Category: "Movement"},
			{Keys: "Right", Action: "cursor.right", Description: "Move cursor right", Category: "Movement"},
			{Keys: "Up", Action: "cursor.up", Description: "Move cursor up", Category: "Movement"},
			{Keys: "Down", Action: "cursor.down", Description: "Move cursor down", Category: "Movement"},
			{Keys: "Home", Action: "cursor.lineStart", Description: "Move to line start", Category: "Movement"},
			{Keys: "End", Action: "cursor.lineEnd", Description: "Move to line end", Category: "Movement"},
			{Keys: "Ctrl-A", Action: "cursor.lineStart", Description: "Move to line start", Category: "Movement"},
			{Keys: "Ctrl-E", Action: "cursor.lineEnd", Description: "Move to line end", Category: "Movement"},
			{Keys: "Ctrl-B", Action: "cursor.left", Description: "Move cursor left", Category: "Movement"},
			{Keys: "Ctrl-F", Action: "cursor.right", Description: "Move cursor right", Category: "Movement"},

			// Editing
			{Keys: "Backspace", Action: "edit.deleteBackward", Description: "Delete char before cursor", Category: "Editing"},
			{Keys: "Delete", Action: "edit.deleteForward", Description: "Delete char under cursor", Category: "Editing"},
			{Keys: "Ctrl-H", Action: "edit.deleteBackward", Description: "Delete char before cursor", Category: "Editing"},
			{Keys: "Ctrl-D", Action: "edit.deleteForward", Description: "Delete char under cursor", Category: "Editing"},
			{Keys: "Ctrl-K", Action: "edit.killLineForward", Description: "Delete to end of line", Category: "Editing"},
			{Keys: "Ctrl-U", Action: "edit.killLineBackward", Description: "Delete to start of line", Category: "Editing"},
			{Keys: "Ctrl-W", Action: "edit.deleteWordBackward", Description: "Delete word before cursor", Category: "Editing"},
			{Keys: "Ctrl-T", Action: "edit.transpose", Description: "Swap the two chars before cursor", Category: "Editing"},
			{Keys: "Enter", Action: "edit.newline", Description: "Insert newline", Category: "Editing"},
			{Keys: "BracketedPaste", Action: "edit.paste", Description: "Insert pasted text", Category: "Editing"},

			// Session
			{Keys: "Ctrl-C", Action: "session.interrupt", Description: "Interrupt", Category: "Session"},
			{Keys: "Ctrl-L", Action: "session.clear", Description: "Clear screen", Category: "Session"},

			// Fallback: insert whatever text the event carries.
			{Keys: "Any", Action: "edit.insert", Description: "Insert typed text", Category: "Editing", Priority: -1},
		},
	}
}
