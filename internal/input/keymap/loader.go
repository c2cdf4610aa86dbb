package keymap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidKeymap is returned for files that are not valid keymap JSON.
var ErrInvalidKeymap = fmt.Errorf("invalid keymap document")

// Loader loads keymaps from JSON configuration files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads a keymap from a JSON file.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}

	km, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Name == "" {
		km.Name = filepath.Base(path)
	}
	if km.Source == "" {
		km.Source = path
	}
	return km, nil
}

// LoadBytes parses a keymap from JSON.
func LoadBytes(data []byte) (*Keymap, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidKeymap
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidKeymap)
	}

	km := New(doc.Get("name").String())
	km.Priority = int(doc.Get("priority").Int())
	km.Source = doc.Get("source").String()

	doc.Get("bindings").ForEach(func(_, b gjson.Result) bool {
		binding := Binding{
			Keys:        b.Get("keys").String(),
			Action:      b.Get("action").String(),
			Description: b.Get("description").String(),
			Priority:    int(b.Get("priority").Int()),
			Category:    b.Get("category").String(),
		}
		if args := b.Get("args"); args.IsObject() {
			if m, ok := args.Value().(map[string]any); ok {
				binding.Args = m
			}
		}
		km.Bindings = append(km.Bindings, binding)
		return true
	})

	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}

// LoadAll loads all keymaps from the search paths. Unreadable or invalid
// files are skipped.
func (l *Loader) LoadAll() []*Keymap {
	keymaps := make([]*Keymap, 0)

	for _, dir := range l.searchPaths {
		matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
		if err != nil {
			continue
		}
		for _, path := range matches {
			km, err := l.LoadFile(path)
			if err != nil {
				continue
			}
			keymaps = append(keymaps, km)
		}
	}
	return keymaps
}

// LoadAndRegister loads all keymaps and registers them.
func (l *Loader) LoadAndRegister(registry *Registry) error {
	for _, km := range l.LoadAll() {
		if err := registry.Register(km); err != nil {
			return fmt.Errorf("registering keymap %q: %w", km.Name, err)
		}
	}
	return nil
}

// Encode serializes the keymap to JSON.
func (k *Keymap) Encode() ([]byte, error) {
	doc := "{}"
	var err error

	if doc, err = sjson.Set(doc, "name", k.Name); err != nil {
		return nil, fmt.Errorf("encoding keymap: %w", err)
	}
	if k.Priority != 0 {
		if doc, err = sjson.Set(doc, "priority", k.Priority); err != nil {
			return nil, fmt.Errorf("encoding keymap: %w", err)
		}
	}
	if k.Source != "" {
		if doc, err = sjson.Set(doc, "source", k.Source); err != nil {
			return nil, fmt.Errorf("encoding keymap: %w", err)
		}
	}

	for i, b := range k.Bindings {
		prefix := fmt.Sprintf("bindings.%d.", i)
		if doc, err = sjson.Set(doc, prefix+"keys", b.Keys); err != nil {
			return nil, fmt.Errorf("encoding binding %d: %w", i, err)
		}
		if doc, err = sjson.Set(doc, prefix+"action", b.Action); err != nil {
			return nil, fmt.Errorf("encoding binding %d: %w", i, err)
		}
		if b.Description != "" {
			if doc, err = sjson.Set(doc, prefix+"description", b.Description); err != nil {
				return nil, fmt.Errorf("encoding binding %d: %w", i, err)
			}
		}
		if b.Priority != 0 {
			if doc, err = sjson.Set(doc, prefix+"priority", b.Priority); err != nil {
				return nil, fmt.Errorf("encoding binding %d: %w", i, err)
			}
		}
		if b.Category != "" {
			if doc, err = sjson.Set(doc, prefix+"category", b.Category); err != nil {
				return nil, fmt.Errorf("encoding binding %d: %w", i, err)
			}
		}
		for name, v := range b.Args {
			if doc, err = sjson.Set(doc, prefix+"args."+name, v); err != nil {
				return nil, fmt.Errorf("encoding binding %d args: %w", i, err)
			}
		}
	}
	return []byte(doc), nil
}

// SaveFile writes the keymap to a JSON file.
func (k *Keymap) SaveFile(path string) error {
	data, err := k.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}
