package keymap

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/termput/termput/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key spec that triggers this binding.
	// Formats: "Ctrl-S", "Up", "a", "\x1b[Z", "Any"
	Keys string

	// Action is the action identifier to execute.
	// Examples: "cursor.down", "file.save", "edit.insert"
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// Description provides documentation for the binding.
	Description string

	// Priority determines precedence when multiple bindings match.
	// Higher priority wins. Default is 0.
	Priority int

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given key spec and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithPriority sets the priority for this binding.
func (b Binding) WithPriority(priority int) Binding {
	b.Priority = priority
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// target is the compiled form of a binding's key spec.
type target struct {
	// kind selects which of the fields below is set.
	kind targetKind

	key  key.Key
	char string
	seq  []byte
}

type targetKind int

const (
	targetKey targetKind = iota
	targetChar
	targetSeq
	targetAny
)

// parseKeys compiles a key spec into a target. Resolution order: the
// catch-all "Any", decoded key names, raw byte sequences (anything
// containing an escape or a control byte), then single printable
// characters.
func parseKeys(spec string) (target, error) {
	if spec == "" {
		return target{}, fmt.Errorf("empty key spec")
	}

	if k, ok := key.FromName(spec); ok {
		if k == key.KeyAny {
			return target{kind: targetAny}, nil
		}
		return target{kind: targetKey, key: k}, nil
	}

	if strings.Contains(spec, `\`) || hasControlByte(spec) {
		seq, err := decodeEscapes(spec)
		if err != nil {
			return target{}, err
		}
		if len(seq) == 0 {
			return target{}, fmt.Errorf("key spec %q decodes to nothing", spec)
		}
		return target{kind: targetSeq, seq: seq}, nil
	}

	if r, size := utf8.DecodeRuneInString(spec); size == len(spec) && unicode.IsPrint(r) {
		return target{kind: targetChar, char: spec}, nil
	}

	return target{}, fmt.Errorf("unrecognized key spec %q", spec)
}

func hasControlByte(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return true
		}
	}
	return false
}

// decodeEscapes expands \xNN, \e and \\ escapes into raw bytes. Other
// bytes pass through unchanged.
func decodeEscapes(spec string) ([]byte, error) {
	out := make([]byte, 0, len(spec))
	for i := 0; i < len(spec); i++ {
		if spec[i] != '\\' {
			out = append(out, spec[i])
			continue
		}
		if i+1 >= len(spec) {
			return nil, fmt.Errorf("key spec %q: trailing backslash", spec)
		}
		i++
		switch spec[i] {
		case '\\':
			out = append(out, '\\')
		case 'e':
			out = append(out, 0x1b)
		case 'x':
			if i+2 >= len(spec) {
				return nil, fmt.Errorf("key spec %q: truncated hex escape", spec)
			}
			n, err := strconv.ParseUint(spec[i+1:i+3], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("key spec %q: invalid hex escape: %w", spec, err)
			}
			out = append(out, byte(n))
			i += 2
		default:
			return nil, fmt.Errorf("key spec %q: unknown escape \\%c", spec, spec[i])
		}
	}
	return out, nil
}
