// Package console provides the Unix terminal backend: raw-mode
// control, window size queries, resize notification, and a polling
// reader that turns terminal bytes into decoded key events.
//
// Reader owns a vt100.Parser and a terminal file descriptor. Run polls
// the descriptor, feeds incoming bytes to the parser, and invokes the
// OnKey callback for every decoded event. When the terminal goes idle
// while the parser still holds a partial sequence, the parser is
// flushed; this is what resolves a lone ESC press into an Escape
// event instead of waiting forever for the rest of a sequence.
package console
