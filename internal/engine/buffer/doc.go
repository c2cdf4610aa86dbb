// Package buffer provides a mutable editing buffer over immutable
// document snapshots.
//
// A Buffer holds a set of working lines (entries being edited, one of
// which is current) and a rune-indexed cursor. Editing operations
// mutate the current working line; Document returns an immutable
// snapshot for text analysis, cached until the buffer changes.
// Vertical cursor movement tracks a preferred column so repeated
// up/down keeps the horizontal position stable across short lines.
//
// ApplyKey maps decoded key events onto editing operations, giving
// hosts a default line-editing behavior without a keymap.
package buffer
