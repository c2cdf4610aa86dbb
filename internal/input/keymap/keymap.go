package keymap

import (
	"fmt"

	"github.com/termput/termput/internal/input/key"
	"github.com/termput/termput/internal/input/vt100"
)

// Keymap holds key bindings for one layer (defaults, user, plugin).
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Priority determines precedence when multiple keymaps match.
	// Higher priority wins. Default is 0.
	Priority int

	// Source indicates where this keymap was defined.
	// Examples: "default", "user", "plugin:surround"
	Source string
}

// New creates a new keymap with the given name.
func New(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{
		Keys:   keys,
		Action: action,
	})
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks that all bindings in the keymap are well formed.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Action == "" {
			return fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		if _, err := parseKeys(b.Keys); err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
	}
	return nil
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Priority: k.Priority,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		clone.Bindings[i] = b
		if b.Args != nil {
			clone.Bindings[i].Args = make(map[string]any, len(b.Args))
			for name, v := range b.Args {
				clone.Bindings[i].Args[name] = v
			}
		}
	}
	return clone
}

// Compiled is a keymap with its bindings indexed for per-event lookup.
type Compiled struct {
	*Keymap

	byKey  map[key.Key][]*Binding
	byChar map[string][]*Binding
	any    []*Binding

	// seqMatcher recognizes raw byte sequence specs. The trie payload is
	// not a real key: it is the index of the owning binding in seqBindings.
	seqMatcher  *vt100.Matcher
	seqBindings []*Binding
}

// Compile indexes all bindings in the keymap.
func (k *Keymap) Compile() (*Compiled, error) {
	c := &Compiled{
		Keymap: k,
		byKey:  make(map[key.Key][]*Binding),
		byChar: make(map[string][]*Binding),
	}

	for i := range k.Bindings {
		b := &k.Bindings[i]
		tgt, err := parseKeys(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d: %w", i, err)
		}
		switch tgt.kind {
		case targetKey:
			c.byKey[tgt.key] = append(c.byKey[tgt.key], b)
		case targetChar:
			c.byChar[tgt.char] = append(c.byChar[tgt.char], b)
		case targetAny:
			c.any = append(c.any, b)
		case targetSeq:
			if c.seqMatcher == nil {
				c.seqMatcher = vt100.NewEmptyMatcher()
			}
			c.seqMatcher.Insert(tgt.seq, key.Key(len(c.seqBindings)))
			c.seqBindings = append(c.seqBindings, b)
		}
	}
	return c, nil
}

// Resolve returns the binding matching the event, or nil. Raw sequence
// matches beat decoded key matches, which beat character matches, which
// beat catch-alls.
func (c *Compiled) Resolve(e key.Event) *Binding {
	if c.seqMatcher != nil && len(e.Raw) > 0 {
		if idx, res := c.seqMatcher.Match(e.Raw); res == vt100.MatchExact {
			return c.seqBindings[int(idx)]
		}
	}
	if e.Key != key.KeyNotDefined {
		if b := best(c.byKey[e.Key]); b != nil {
			return b
		}
	}
	if e.HasText() {
		if b := best(c.byChar[e.Text]); b != nil {
			return b
		}
	}
	return best(c.any)
}

// best picks the highest-priority binding; ties go to the earliest.
func best(bindings []*Binding) *Binding {
	var winner *Binding
	for _, b := range bindings {
		if winner == nil || b.Priority > winner.Priority {
			winner = b
		}
	}
	return winner
}
