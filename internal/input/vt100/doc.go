// Package vt100 decodes raw terminal input bytes into key events.
//
// Two tightly coupled pieces live here:
//
//   - Matcher: an immutable-after-construction prefix trie mapping known
//     byte sequences to key symbols, answering exact/prefix/no-match queries
//     and longest-prefix scans
//   - Parser: an incremental state machine built on a Matcher that turns an
//     arbitrarily fragmented byte stream into an ordered key event stream
//
// The parser handles escape sequences split across reads, ambiguous prefixes
// (a lone ESC is Escape only once no continuation arrives), X10 and SGR mouse
// reports, cursor position reports, and bracketed paste framing. It never
// fails: malformed input degrades to NotDefined events carrying the raw
// bytes, and the state machine always returns to its normal state.
//
// A Parser must be owned by exactly one input stream. Feed, Flush and Reset
// perform no I/O, never block, and are not safe for concurrent use.
package vt100
