// Package lua embeds a sandboxed Lua interpreter for scripting input
// behavior.
//
// Scripts see a single `termput` module:
//
//	termput.on("file.save", function(event) ... end)
//	termput.bind("Ctrl-S", "file.save")
//	termput.log("loaded")
//
// Handlers registered with on() run when the engine dispatches the named
// action; the event argument is a table with `key`, `text` and `raw`
// fields. Bindings declared with bind() are collected into a keymap the
// host registers alongside its other layers.
//
// The sandbox opens only the base, table, string and math libraries.
// There is no io, no os, and no loading code from disk inside a script;
// errors raised in Lua come back as Go errors, never panics.
//
// gopher-lua's LState is not goroutine-safe. The Engine serializes all
// access behind a mutex; callers may share one Engine across goroutines.
package lua
