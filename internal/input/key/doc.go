// Package key defines the logical key symbols and key events produced by
// terminal input parsing.
//
// The fundamental types are:
//
//   - Key: a closed enumeration of logical key symbols (control characters,
//     navigation keys, function keys, and sentinel values such as KeyNotDefined)
//   - Event: a single decoded key press carrying the raw bytes that produced
//     it and, for printable input, the decoded text
//
// A Key names what the terminal sent, not what it means to an application.
// Several distinct byte sequences may decode to the same Key; the raw bytes
// are preserved on the Event for consumers that care about the wire form.
package key
