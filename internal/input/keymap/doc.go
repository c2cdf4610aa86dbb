// Package keymap maps decoded key events to named actions.
//
// A Keymap is a named collection of bindings from a key spec to an action
// identifier ("Ctrl-S" -> "file.save"). Specs name decoded keys the way
// the key package does, match literal printable characters, or give raw
// byte sequences with hex escapes for terminals that send nonstandard
// input.
//
// # Binding Precedence
//
// When multiple bindings match an event, precedence is determined by:
//  1. Raw byte sequence matches (most specific)
//  2. Decoded key matches
//  3. Character matches
//  4. "Any" catch-all bindings
//
// Within each group the highest Priority wins; ties go to the binding
// registered first.
//
// # Key Specs
//
//	"Ctrl-S"      - decoded key by name
//	"Up"          - decoded key by name
//	"a"           - literal printable character
//	"\x1b[Z"      - raw byte sequence (hex escapes)
//	"Any"         - catch-all
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	registry.Register(keymap.Default())
//	registry.Handle("file.save", saveHandler)
//
//	for _, ev := range parser.Feed(data) {
//	    registry.Dispatch(ev)
//	}
//
// Keymap files are JSON, read with gjson and written with sjson.
package keymap
