package vt100

import (
	"github.com/termput/termput/internal/input/key"
)

// MatchResult classifies a byte sequence against the matcher's table.
type MatchResult int

const (
	// MatchNone means the sequence cannot extend to any known entry.
	MatchNone MatchResult = iota

	// MatchPrefix means the sequence is a strict prefix of at least one
	// longer entry but is not itself complete.
	MatchPrefix

	// MatchExact means the sequence is a complete table entry. A sequence
	// can be exact and still have longer extensions (ESC alone is exact
	// even though ESC[ sequences extend it); MatchExact wins in that case.
	MatchExact
)

// String returns the name of the match result.
func (r MatchResult) String() string {
	switch r {
	case MatchNone:
		return "NoMatch"
	case MatchPrefix:
		return "Prefix"
	case MatchExact:
		return "Exact"
	default:
		return "MatchResult(?)"
	}
}

// trieNode is one node of the sequence trie. A node may hold a terminal
// key and have children at the same time.
type trieNode struct {
	key      key.Key
	terminal bool
	children map[byte]*trieNode
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[byte]*trieNode)}
}

// Matcher maps byte sequences to logical keys via a prefix trie.
//
// Matching is pure and total: every byte slice yields exactly one of
// MatchExact, MatchPrefix or MatchNone, and no query mutates the trie.
// Insert is the only mutating operation; callers that share a Matcher
// must finish inserting before querying from other goroutines.
type Matcher struct {
	root *trieNode
}

// NewMatcher creates a matcher loaded with the standard sequence table.
func NewMatcher() *Matcher {
	m := NewEmptyMatcher()
	m.installDefaults()
	return m
}

// NewEmptyMatcher creates a matcher with no entries. Used by callers that
// recognize only their own sequences, such as keymap registries.
func NewEmptyMatcher() *Matcher {
	return &Matcher{root: newTrieNode()}
}

// Insert registers seq as a complete sequence for k, overwriting any key
// previously stored at that exact sequence. Existing prefix and extension
// entries are unaffected.
func (m *Matcher) Insert(seq []byte, k key.Key) {
	node := m.root
	for _, b := range seq {
		child, ok := node.children[b]
		if !ok {
			child = newTrieNode()
			node.children[b] = child
		}
		node = child
	}
	node.key = k
	node.terminal = true
}

// Match walks the trie over seq and classifies it. The returned key is
// meaningful only when the result is MatchExact. Empty input is MatchNone.
func (m *Matcher) Match(seq []byte) (key.Key, MatchResult) {
	if len(seq) == 0 {
		return key.KeyNotDefined, MatchNone
	}
	node := m.findNode(seq)
	if node == nil {
		return key.KeyNotDefined, MatchNone
	}
	if node.terminal {
		return node.key, MatchExact
	}
	return key.KeyNotDefined, MatchPrefix
}

// FindLongest scans seq from the start and returns the longest complete
// entry found, along with the number of bytes it consumes. Later, longer
// matches overwrite earlier ones; the walk stops at the first byte with no
// matching child. ok is false when no complete entry starts at index 0.
func (m *Matcher) FindLongest(seq []byte) (k key.Key, consumed int, ok bool) {
	node := m.root
	for i, b := range seq {
		child, found := node.children[b]
		if !found {
			break
		}
		node = child
		if node.terminal {
			k = node.key
			consumed = i + 1
			ok = true
		}
	}
	return k, consumed, ok
}

func (m *Matcher) findNode(seq []byte) *trieNode {
	node := m.root
	for _, b := range seq {
		child, ok := node.children[b]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}
